package noop

import (
	"context"
	"log"

	"concursos/internal/domain"
	"concursos/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs run summaries to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRunSummary(_ context.Context, toEmail string, run *domain.CrawlRun) error {
	log.Printf("[NOOP EMAIL] Run summary for %s: run=%s status=%s found=%d queued=%d",
		toEmail, run.ID, run.Status, run.ExamsFound, run.ExamsQueued)
	return nil
}
