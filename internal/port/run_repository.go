package port

import (
	"context"

	"github.com/google/uuid"

	"concursos/internal/domain"
)

// RunRepository defines the contract for crawl run persistence. At most one
// run may be active at a time; Create enforces that at the data layer.
type RunRepository interface {
	Create(ctx context.Context, run *domain.CrawlRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CrawlRun, error)
	List(ctx context.Context, offset, limit int) ([]domain.CrawlRun, int, error)
	Finish(ctx context.Context, run *domain.CrawlRun) error
}

// StatsRepository defines the contract for aggregate statistics queries.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.ExtractionStats, error)
}
