package service

import (
	"context"
	"fmt"

	"concursos/internal/domain"
	"concursos/internal/port"
)

// StatsService exposes aggregate crawl and extraction statistics.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.ExtractionStats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.ExtractionStats, error) {
	stats, err := s.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsService.GetStats: %w", err)
	}
	return stats, nil
}
