package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"concursos/internal/domain"
	"concursos/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) Create(ctx context.Context, run *domain.CrawlRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	run.Status = domain.RunStatusRunning
	run.StartedAt = time.Now().UTC()

	// The guarded insert rejects a second run while one is still running.
	query := `INSERT INTO crawl_runs (id, status, exams_found, exams_queued, error, started_at)
		SELECT $1, $2, 0, 0, '', $3
		WHERE NOT EXISTS (SELECT 1 FROM crawl_runs WHERE status = $4)`

	result, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.StartedAt, domain.RunStatusRunning)
	if err != nil {
		return fmt.Errorf("runRepo.Create: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRunAlreadyActive
	}
	return nil
}

func (r *runRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CrawlRun, error) {
	var run domain.CrawlRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM crawl_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("runRepo.GetByID: %w", err)
	}
	return &run, nil
}

func (r *runRepo) List(ctx context.Context, offset, limit int) ([]domain.CrawlRun, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM crawl_runs"); err != nil {
		return nil, 0, fmt.Errorf("runRepo.List count: %w", err)
	}

	var runs []domain.CrawlRun
	err := r.db.SelectContext(ctx, &runs,
		"SELECT * FROM crawl_runs ORDER BY started_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("runRepo.List: %w", err)
	}
	return runs, total, nil
}

func (r *runRepo) Finish(ctx context.Context, run *domain.CrawlRun) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	result, err := r.db.ExecContext(ctx,
		`UPDATE crawl_runs SET status = $1, exams_found = $2, exams_queued = $3,
			error = $4, finished_at = $5
		 WHERE id = $6`,
		run.Status, run.ExamsFound, run.ExamsQueued, run.Error, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("runRepo.Finish: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}
