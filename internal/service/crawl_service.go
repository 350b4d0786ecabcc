package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"concursos/internal/domain"
	"concursos/internal/extract"
	"concursos/internal/port"
)

// CrawlService orchestrates one pass over the portal: discover open exams,
// archive each new exam's bulletin PDF and queue it for extraction.
type CrawlService interface {
	// Run executes a crawl synchronously and returns the finished run.
	// At most one run may be active; a concurrent call returns
	// domain.ErrRunAlreadyActive.
	Run(ctx context.Context) (*domain.CrawlRun, error)

	// TriggerRun starts a crawl in the background and returns the run
	// record immediately.
	TriggerRun(ctx context.Context) (*domain.CrawlRun, error)

	GetRun(ctx context.Context, id uuid.UUID) (*domain.CrawlRun, error)
	ListRuns(ctx context.Context, offset, limit int) ([]domain.CrawlRun, int, error)
}

type crawlService struct {
	runRepo  port.RunRepository
	examRepo port.ExamRepository
	crawler  port.PortalCrawler
	fetcher  port.BulletinFetcher
	storage  port.ObjectStorage
	email    port.EmailSender
	bucket   string
	notifyTo string
}

// NewCrawlService creates a new CrawlService implementation.
func NewCrawlService(
	runRepo port.RunRepository,
	examRepo port.ExamRepository,
	crawler port.PortalCrawler,
	fetcher port.BulletinFetcher,
	storage port.ObjectStorage,
	email port.EmailSender,
	bucket string,
	notifyTo string,
) CrawlService {
	return &crawlService{
		runRepo:  runRepo,
		examRepo: examRepo,
		crawler:  crawler,
		fetcher:  fetcher,
		storage:  storage,
		email:    email,
		bucket:   bucket,
		notifyTo: notifyTo,
	}
}

func (s *crawlService) Run(ctx context.Context) (*domain.CrawlRun, error) {
	run := &domain.CrawlRun{}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	if err := s.crawl(ctx, run); err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = domain.RunStatusCompleted
	}

	if err := s.runRepo.Finish(ctx, run); err != nil {
		log.Printf("crawlService: run %s: Finish error: %v", run.ID, err)
	}
	s.notify(ctx, run)

	if run.Status == domain.RunStatusFailed {
		return run, fmt.Errorf("crawl run %s failed: %s", run.ID, run.Error)
	}
	return run, nil
}

func (s *crawlService) TriggerRun(ctx context.Context) (*domain.CrawlRun, error) {
	run := &domain.CrawlRun{}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	// The caller gets a snapshot; the goroutine owns run from here on.
	snapshot := *run

	go func() {
		// Detached from the request context: the crawl outlives the
		// HTTP request that triggered it.
		bgCtx := context.Background()

		if err := s.crawl(bgCtx, run); err != nil {
			run.Status = domain.RunStatusFailed
			run.Error = err.Error()
		} else {
			run.Status = domain.RunStatusCompleted
		}
		if err := s.runRepo.Finish(bgCtx, run); err != nil {
			log.Printf("crawlService: run %s: Finish error: %v", run.ID, err)
		}
		s.notify(bgCtx, run)
	}()

	return &snapshot, nil
}

func (s *crawlService) GetRun(ctx context.Context, id uuid.UUID) (*domain.CrawlRun, error) {
	return s.runRepo.GetByID(ctx, id)
}

func (s *crawlService) ListRuns(ctx context.Context, offset, limit int) ([]domain.CrawlRun, int, error) {
	return s.runRepo.List(ctx, offset, limit)
}

// crawl walks the portal listing. Per-exam failures are logged and skipped;
// only a failure to read the listing itself fails the run.
func (s *crawlService) crawl(ctx context.Context, run *domain.CrawlRun) error {
	listings, err := s.crawler.DiscoverListings(ctx)
	if err != nil {
		return fmt.Errorf("discovering listings: %w", err)
	}
	run.ExamsFound = len(listings)

	for _, listing := range listings {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.processListing(ctx, listing) {
			run.ExamsQueued++
		}
	}

	log.Printf("crawlService: run %s: %d exams found, %d queued", run.ID, run.ExamsFound, run.ExamsQueued)
	return nil
}

// processListing upserts one exam and, when its bulletin is not archived
// yet, downloads and queues it. It reports whether the exam was queued.
func (s *crawlService) processListing(ctx context.Context, listing domain.ExamListing) bool {
	city, state := extract.CaptionCity(listing.Name)

	exam := &domain.Exam{
		PortalID: listing.PortalID,
		Name:     listing.Name,
		URL:      listing.URL,
		City:     city,
		State:    state,
		Status:   domain.ExamStatusDiscovered,
	}
	created, err := s.examRepo.Upsert(ctx, exam)
	if err != nil {
		log.Printf("crawlService: exam %s: upsert error: %v", listing.PortalID, err)
		return false
	}
	if !created {
		stored, err := s.examRepo.GetByPortalID(ctx, listing.PortalID)
		if err != nil {
			log.Printf("crawlService: exam %s: lookup error: %v", listing.PortalID, err)
			return false
		}
		if stored.S3Key != "" {
			return false // bulletin already archived on a previous run
		}
		exam.ID = stored.ID
	}

	bulletinURL, err := s.crawler.ResolveBulletin(ctx, listing)
	if err != nil {
		log.Printf("crawlService: exam %s: resolving bulletin: %v", listing.PortalID, err)
		return false
	}
	if bulletinURL == "" {
		log.Printf("crawlService: exam %s: no bulletin linked yet", listing.PortalID)
		return false
	}

	pdfBytes, err := s.fetcher.Fetch(ctx, bulletinURL)
	if err != nil {
		log.Printf("crawlService: exam %s: fetching bulletin: %v", listing.PortalID, err)
		return false
	}

	key := fmt.Sprintf("bulletins/%s.pdf", listing.PortalID)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(pdfBytes),
		ContentType: "application/pdf",
		Size:        int64(len(pdfBytes)),
	})
	if err != nil {
		log.Printf("crawlService: exam %s: uploading bulletin: %v", listing.PortalID, err)
		return false
	}

	if err := s.examRepo.SetBulletin(ctx, exam.ID, bulletinURL, s.bucket, key); err != nil {
		log.Printf("crawlService: exam %s: queueing: %v", listing.PortalID, err)
		return false
	}
	return true
}

func (s *crawlService) notify(ctx context.Context, run *domain.CrawlRun) {
	if s.email == nil || s.notifyTo == "" {
		return
	}
	if err := s.email.SendRunSummary(ctx, s.notifyTo, run); err != nil {
		log.Printf("crawlService: run %s: summary email: %v", run.ID, err)
	}
}
