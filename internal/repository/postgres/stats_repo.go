package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"concursos/internal/domain"
	"concursos/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const examStatsQuery = `SELECT
	COUNT(*) AS total_exams,
	COUNT(CASE WHEN status = 'queued' THEN 1 END) AS exams_queued,
	COUNT(CASE WHEN status = 'processing' THEN 1 END) AS exams_processing,
	COUNT(CASE WHEN status = 'completed' THEN 1 END) AS exams_completed,
	COUNT(CASE WHEN status = 'failed' THEN 1 END) AS exams_failed,
	COUNT(CASE WHEN document_status = 'ok' THEN 1 END) AS docs_ok,
	COUNT(CASE WHEN document_status = 'partial' THEN 1 END) AS docs_partial,
	COUNT(CASE WHEN document_status = 'no_table_found' THEN 1 END) AS docs_no_table,
	COUNT(CASE WHEN document_status = 'likely_scanned' THEN 1 END) AS docs_likely_scanned,
	COUNT(CASE WHEN document_status = 'parse_error' THEN 1 END) AS docs_parse_error
FROM exams`

const positionStatsQuery = `SELECT
	COUNT(*) AS total_positions,
	COALESCE(SUM(vacancies), 0) AS total_vacancies,
	COUNT(DISTINCT NULLIF(city, '')) AS distinct_cities
FROM positions`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.ExtractionStats, error) {
	var stats domain.ExtractionStats
	if err := r.db.GetContext(ctx, &stats, examStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats exams: %w", err)
	}

	var posStats struct {
		TotalPositions int `db:"total_positions"`
		TotalVacancies int `db:"total_vacancies"`
		DistinctCities int `db:"distinct_cities"`
	}
	if err := r.db.GetContext(ctx, &posStats, positionStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats positions: %w", err)
	}
	stats.TotalPositions = posStats.TotalPositions
	stats.TotalVacancies = posStats.TotalVacancies
	stats.DistinctCities = posStats.DistinctCities

	return &stats, nil
}
