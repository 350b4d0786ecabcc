package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"concursos/internal/domain"
	"concursos/internal/port"
)

// MockExamRepo is a mock implementation of port.ExamRepository.
type MockExamRepo struct {
	mock.Mock
}

func (m *MockExamRepo) Upsert(ctx context.Context, exam *domain.Exam) (bool, error) {
	args := m.Called(ctx, exam)
	return args.Bool(0), args.Error(1)
}

func (m *MockExamRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}

func (m *MockExamRepo) GetByPortalID(ctx context.Context, portalID string) (*domain.Exam, error) {
	args := m.Called(ctx, portalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}

func (m *MockExamRepo) List(ctx context.Context, filter port.ExamFilter, offset, limit int) ([]domain.Exam, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Exam), args.Int(1), args.Error(2)
}

func (m *MockExamRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Exam, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exam), args.Error(1)
}

func (m *MockExamRepo) MarkCompleted(ctx context.Context, id uuid.UUID, docStatus domain.DocumentStatus, extractedAt time.Time) error {
	args := m.Called(ctx, id, docStatus, extractedAt)
	return args.Error(0)
}

func (m *MockExamRepo) MarkFailed(ctx context.Context, id uuid.UUID, extractErr string, maxRetries int) error {
	args := m.Called(ctx, id, extractErr, maxRetries)
	return args.Error(0)
}

func (m *MockExamRepo) SetBulletin(ctx context.Context, id uuid.UUID, bulletinURL, s3Bucket, s3Key string) error {
	args := m.Called(ctx, id, bulletinURL, s3Bucket, s3Key)
	return args.Error(0)
}

func (m *MockExamRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
