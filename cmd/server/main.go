package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"concursos/internal/config"
	"concursos/internal/crawler"
	"concursos/internal/email/noop"
	"concursos/internal/email/ses"
	"concursos/internal/extract"
	"concursos/internal/fetch"
	"concursos/internal/handler"
	"concursos/internal/port"
	"concursos/internal/repository/postgres"
	"concursos/internal/router"
	"concursos/internal/service"
	s3storage "concursos/internal/storage/s3"
)

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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	examRepo := postgres.NewExamRepo(db)
	positionRepo := postgres.NewPositionRepo(db)
	runRepo := postgres.NewRunRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize portal collaborators
	portalCrawler, err := crawler.New(&cfg.Crawler)
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %w", err)
	}
	fetcher := fetch.New(&cfg.Fetcher, cfg.Crawler.UserAgent)

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Admin, cfg.JWT)
	examSvc := service.NewExamService(examRepo, positionRepo, s3Client, cfg.S3.PresignExpiry)
	extractSvc := service.NewExtractService(examRepo, positionRepo, s3Client, extract.NewDefaultExtractor())
	crawlSvc := service.NewCrawlService(runRepo, examRepo, portalCrawler, fetcher, s3Client, emailSender, cfg.S3.Bucket, cfg.Email.ToAddress)
	exportSvc := service.NewExportService(positionRepo, cfg.Export.BaseName)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	examH := handler.NewExamHandler(examSvc, extractSvc)
	positionH := handler.NewPositionHandler(examSvc)
	runH := handler.NewRunHandler(crawlSvc)
	exportH := handler.NewExportHandler(exportSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, examH, positionH, runH, exportH, statsH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background extraction worker
	worker := service.NewExtractQueueWorker(examRepo, extractSvc, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	go worker.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
