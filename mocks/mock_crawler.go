package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"concursos/internal/domain"
)

// MockPortalCrawler is a mock implementation of port.PortalCrawler.
type MockPortalCrawler struct {
	mock.Mock
}

func (m *MockPortalCrawler) DiscoverListings(ctx context.Context) ([]domain.ExamListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExamListing), args.Error(1)
}

func (m *MockPortalCrawler) ResolveBulletin(ctx context.Context, listing domain.ExamListing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}

// MockBulletinFetcher is a mock implementation of port.BulletinFetcher.
type MockBulletinFetcher struct {
	mock.Mock
}

func (m *MockBulletinFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDocumentProcessor is a mock implementation of port.DocumentProcessor.
type MockDocumentProcessor struct {
	mock.Mock
}

func (m *MockDocumentProcessor) ProcessDocument(examID string, pdfBytes []byte) domain.ExtractionOutcome {
	args := m.Called(examID, pdfBytes)
	return args.Get(0).(domain.ExtractionOutcome)
}

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRunSummary(ctx context.Context, toEmail string, run *domain.CrawlRun) error {
	args := m.Called(ctx, toEmail, run)
	return args.Error(0)
}
