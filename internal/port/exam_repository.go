package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"concursos/internal/domain"
)

// ExamFilter narrows exam listings.
type ExamFilter struct {
	Status         domain.ExamStatus
	DocumentStatus domain.DocumentStatus
	State          string
	City           string
}

// ExamRepository defines the contract for exam persistence. Exams are keyed
// externally by the portal's numeric identifier; Upsert keeps re-crawls
// idempotent.
type ExamRepository interface {
	// Upsert inserts the exam or refreshes its listing fields when the
	// portal ID is already known. It reports whether a new row was created.
	Upsert(ctx context.Context, exam *domain.Exam) (created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error)
	GetByPortalID(ctx context.Context, portalID string) (*domain.Exam, error)
	List(ctx context.Context, filter ExamFilter, offset, limit int) ([]domain.Exam, int, error)

	// ClaimQueued atomically claims up to limit queued exams for
	// processing, so concurrent workers never pick the same exam twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Exam, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, docStatus domain.DocumentStatus, extractedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, extractErr string, maxRetries int) error
	SetBulletin(ctx context.Context, id uuid.UUID, bulletinURL, s3Bucket, s3Key string) error
	Requeue(ctx context.Context, id uuid.UUID) error
}

// PositionFilter narrows position listings.
type PositionFilter struct {
	City      string
	RoleQuery string
	State     string
}

// PositionRepository defines the contract for position record persistence.
type PositionRepository interface {
	// ReplaceForExam atomically swaps an exam's records for a fresh
	// extraction result. Reprocessing a bulletin never duplicates rows.
	ReplaceForExam(ctx context.Context, examID string, records []domain.PositionRecord) error
	ListByExam(ctx context.Context, examID string) ([]domain.PositionRecord, error)
	List(ctx context.Context, filter PositionFilter, offset, limit int) ([]domain.PositionRecord, int, error)
	ListAll(ctx context.Context) ([]domain.PositionRecord, error)
}
