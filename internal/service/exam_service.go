package service

import (
	"context"

	"concursos/internal/domain"
	"concursos/internal/port"
)

// ExamService exposes read access to exams and their extracted positions.
type ExamService interface {
	Get(ctx context.Context, portalID string) (*domain.Exam, error)
	List(ctx context.Context, filter port.ExamFilter, offset, limit int) ([]domain.Exam, int, error)
	Positions(ctx context.Context, portalID string) ([]domain.PositionRecord, error)
	SearchPositions(ctx context.Context, filter port.PositionFilter, offset, limit int) ([]domain.PositionRecord, int, error)
	BulletinURL(ctx context.Context, portalID string) (string, error)
}

type examService struct {
	examRepo     port.ExamRepository
	positionRepo port.PositionRepository
	storage      port.ObjectStorage
	presignTTL   int64
}

// NewExamService creates a new ExamService implementation.
func NewExamService(
	examRepo port.ExamRepository,
	positionRepo port.PositionRepository,
	storage port.ObjectStorage,
	presignTTL int64,
) ExamService {
	return &examService{
		examRepo:     examRepo,
		positionRepo: positionRepo,
		storage:      storage,
		presignTTL:   presignTTL,
	}
}

func (s *examService) Get(ctx context.Context, portalID string) (*domain.Exam, error) {
	return s.examRepo.GetByPortalID(ctx, portalID)
}

func (s *examService) List(ctx context.Context, filter port.ExamFilter, offset, limit int) ([]domain.Exam, int, error) {
	return s.examRepo.List(ctx, filter, offset, limit)
}

func (s *examService) Positions(ctx context.Context, portalID string) ([]domain.PositionRecord, error) {
	if _, err := s.examRepo.GetByPortalID(ctx, portalID); err != nil {
		return nil, err
	}
	return s.positionRepo.ListByExam(ctx, portalID)
}

// SearchPositions lists positions across all exams with optional city, state
// and role filters.
func (s *examService) SearchPositions(ctx context.Context, filter port.PositionFilter, offset, limit int) ([]domain.PositionRecord, int, error) {
	return s.positionRepo.List(ctx, filter, offset, limit)
}

// BulletinURL returns a presigned link to the archived bulletin PDF.
func (s *examService) BulletinURL(ctx context.Context, portalID string) (string, error) {
	exam, err := s.examRepo.GetByPortalID(ctx, portalID)
	if err != nil {
		return "", err
	}
	if exam.S3Key == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, exam.S3Bucket, exam.S3Key, s.presignTTL)
}
