package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"concursos/internal/domain"
	"concursos/internal/port"
)

// MockPositionRepo is a mock implementation of port.PositionRepository.
type MockPositionRepo struct {
	mock.Mock
}

func (m *MockPositionRepo) ReplaceForExam(ctx context.Context, examID string, records []domain.PositionRecord) error {
	args := m.Called(ctx, examID, records)
	return args.Error(0)
}

func (m *MockPositionRepo) ListByExam(ctx context.Context, examID string) ([]domain.PositionRecord, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PositionRecord), args.Error(1)
}

func (m *MockPositionRepo) List(ctx context.Context, filter port.PositionFilter, offset, limit int) ([]domain.PositionRecord, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PositionRecord), args.Int(1), args.Error(2)
}

func (m *MockPositionRepo) ListAll(ctx context.Context) ([]domain.PositionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PositionRecord), args.Error(1)
}
