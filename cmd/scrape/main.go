// Command scrape runs one full pass end to end: crawl the portal listing,
// extract every queued bulletin, then write export files to the configured
// directory.
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"concursos/internal/config"
	"concursos/internal/crawler"
	"concursos/internal/email/noop"
	"concursos/internal/extract"
	"concursos/internal/fetch"
	"concursos/internal/repository/postgres"
	"concursos/internal/service"
	s3storage "concursos/internal/storage/s3"
)

// Claim batch size for the drain loop.
const drainBatchSize = 4

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	examRepo := postgres.NewExamRepo(db)
	positionRepo := postgres.NewPositionRepo(db)
	runRepo := postgres.NewRunRepo(db)

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	portalCrawler, err := crawler.New(&cfg.Crawler)
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %w", err)
	}
	fetcher := fetch.New(&cfg.Fetcher, cfg.Crawler.UserAgent)

	crawlSvc := service.NewCrawlService(runRepo, examRepo, portalCrawler, fetcher, s3Client, noop.NewNoopSender(), cfg.S3.Bucket, "")
	extractSvc := service.NewExtractService(examRepo, positionRepo, s3Client, extract.NewDefaultExtractor())
	exportSvc := service.NewExportService(positionRepo, cfg.Export.BaseName)

	crawlRun, err := crawlSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	log.Printf("crawl run %s: %d exams found, %d queued", crawlRun.ID, crawlRun.ExamsFound, crawlRun.ExamsQueued)

	// Drain the extraction queue sequentially.
	processed := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		exams, err := examRepo.ClaimQueued(ctx, drainBatchSize)
		if err != nil {
			return fmt.Errorf("failed to claim queued exams: %w", err)
		}
		if len(exams) == 0 {
			break
		}

		for i := range exams {
			extractSvc.ProcessExam(ctx, &exams[i], cfg.Queue.MaxRetries)
			processed++
		}
	}
	log.Printf("processed %d bulletins", processed)

	formats, err := service.ParseFormats(cfg.Export.Formats)
	if err != nil {
		return fmt.Errorf("invalid export formats: %w", err)
	}

	files, err := exportSvc.WriteFiles(ctx, cfg.Export.Dir, formats)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	for _, f := range files {
		log.Printf("wrote %s", f)
	}

	return nil
}
