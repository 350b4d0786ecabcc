package port

import (
	"context"

	"concursos/internal/domain"
)

// PortalCrawler discovers open exams on the portal's public listing.
type PortalCrawler interface {
	// DiscoverListings scrapes the open-exams index and returns one entry
	// per exam, deduplicated by portal ID.
	DiscoverListings(ctx context.Context) ([]domain.ExamListing, error)
	// ResolveBulletin visits one exam's detail page and returns the
	// absolute URL of its bulletin PDF, or "" when none is linked.
	ResolveBulletin(ctx context.Context, listing domain.ExamListing) (string, error)
}

// BulletinFetcher downloads a bulletin PDF with retry and size limits.
type BulletinFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DocumentProcessor runs the extraction pipeline over one bulletin. It
// always produces an outcome; document-level failures are encoded in the
// outcome's status rather than returned as errors.
type DocumentProcessor interface {
	ProcessDocument(examID string, pdfBytes []byte) domain.ExtractionOutcome
}
