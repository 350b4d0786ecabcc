// Package servicemocks holds testify mocks for the service-layer interfaces.
// They live apart from package mocks so the service package's own tests can
// import mocks without creating an import cycle.
package servicemocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"concursos/internal/domain"
	"concursos/internal/port"
	"concursos/internal/service"
)

// MockExamService is a mock implementation of service.ExamService.
type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) Get(ctx context.Context, portalID string) (*domain.Exam, error) {
	args := m.Called(ctx, portalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}

func (m *MockExamService) List(ctx context.Context, filter port.ExamFilter, offset, limit int) ([]domain.Exam, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Exam), args.Int(1), args.Error(2)
}

func (m *MockExamService) Positions(ctx context.Context, portalID string) ([]domain.PositionRecord, error) {
	args := m.Called(ctx, portalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PositionRecord), args.Error(1)
}

func (m *MockExamService) SearchPositions(ctx context.Context, filter port.PositionFilter, offset, limit int) ([]domain.PositionRecord, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PositionRecord), args.Int(1), args.Error(2)
}

func (m *MockExamService) BulletinURL(ctx context.Context, portalID string) (string, error) {
	args := m.Called(ctx, portalID)
	return args.String(0), args.Error(1)
}

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) ProcessExam(ctx context.Context, exam *domain.Exam, maxRetries int) {
	m.Called(ctx, exam, maxRetries)
}

func (m *MockExtractService) Reprocess(ctx context.Context, examID string) (*domain.Exam, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}

// MockCrawlService is a mock implementation of service.CrawlService.
type MockCrawlService struct {
	mock.Mock
}

func (m *MockCrawlService) Run(ctx context.Context) (*domain.CrawlRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrawlRun), args.Error(1)
}

func (m *MockCrawlService) TriggerRun(ctx context.Context) (*domain.CrawlRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrawlRun), args.Error(1)
}

func (m *MockCrawlService) GetRun(ctx context.Context, id uuid.UUID) (*domain.CrawlRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrawlRun), args.Error(1)
}

func (m *MockCrawlService) ListRuns(ctx context.Context, offset, limit int) ([]domain.CrawlRun, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CrawlRun), args.Int(1), args.Error(2)
}

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, format domain.ExportFormat) (string, string, []byte, error) {
	args := m.Called(ctx, format)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).([]byte), args.Error(3)
}

func (m *MockExportService) WriteFiles(ctx context.Context, dir string, formats []domain.ExportFormat) ([]string, error) {
	args := m.Called(ctx, dir, formats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockStatsService is a mock implementation of service.StatsService.
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*domain.ExtractionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionStats), args.Error(1)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, input service.LoginInput) (*service.Token, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Token), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}
