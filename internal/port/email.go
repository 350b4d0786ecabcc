package port

import (
	"context"

	"concursos/internal/domain"
)

// EmailSender defines the contract for operational notifications.
type EmailSender interface {
	// SendRunSummary notifies the operator that a crawl run finished,
	// including how many exams were found and queued.
	SendRunSummary(ctx context.Context, toEmail string, run *domain.CrawlRun) error
}
