package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"concursos/internal/domain"
	"concursos/internal/port"
)

// ExtractService runs the extraction pipeline over claimed exams and
// persists the result.
type ExtractService interface {
	// ProcessExam downloads the exam's archived bulletin, extracts
	// position records and persists them. Pipeline-level problems never
	// fail the exam: they are encoded in the document status. Only
	// infrastructure errors (storage, database) count against the retry
	// budget.
	ProcessExam(ctx context.Context, exam *domain.Exam, maxRetries int)

	// Reprocess requeues a completed or failed exam for a fresh pass.
	Reprocess(ctx context.Context, examID string) (*domain.Exam, error)
}

type extractService struct {
	examRepo     port.ExamRepository
	positionRepo port.PositionRepository
	storage      port.ObjectStorage
	processor    port.DocumentProcessor
}

// NewExtractService creates a new ExtractService implementation.
func NewExtractService(
	examRepo port.ExamRepository,
	positionRepo port.PositionRepository,
	storage port.ObjectStorage,
	processor port.DocumentProcessor,
) ExtractService {
	return &extractService{
		examRepo:     examRepo,
		positionRepo: positionRepo,
		storage:      storage,
		processor:    processor,
	}
}

func (s *extractService) ProcessExam(ctx context.Context, exam *domain.Exam, maxRetries int) {
	if exam.S3Key == "" {
		s.fail(ctx, exam, "no bulletin archived for exam", maxRetries)
		return
	}

	pdfBytes, err := s.storage.Download(ctx, exam.S3Bucket, exam.S3Key)
	if err != nil {
		s.fail(ctx, exam, fmt.Sprintf("downloading bulletin: %v", err), maxRetries)
		return
	}

	outcome := s.processor.ProcessDocument(exam.PortalID, pdfBytes)
	log.Printf("extractService: exam %s extracted: status=%s records=%d warnings=%d",
		exam.PortalID, outcome.Status, len(outcome.Records), len(outcome.Warnings))

	if err := s.positionRepo.ReplaceForExam(ctx, exam.PortalID, outcome.Records); err != nil {
		s.fail(ctx, exam, fmt.Sprintf("persisting records: %v", err), maxRetries)
		return
	}

	if err := s.examRepo.MarkCompleted(ctx, exam.ID, outcome.Status, time.Now().UTC()); err != nil {
		log.Printf("extractService: exam %s: MarkCompleted error: %v", exam.PortalID, err)
	}
}

func (s *extractService) Reprocess(ctx context.Context, examID string) (*domain.Exam, error) {
	exam, err := s.examRepo.GetByPortalID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status == domain.ExamStatusQueued || exam.Status == domain.ExamStatusProcessing {
		return exam, nil
	}
	if err := s.examRepo.Requeue(ctx, exam.ID); err != nil {
		return nil, err
	}
	exam.Status = domain.ExamStatusQueued
	return exam, nil
}

func (s *extractService) fail(ctx context.Context, exam *domain.Exam, msg string, maxRetries int) {
	log.Printf("extractService: exam %s failed: %s", exam.PortalID, msg)
	if err := s.examRepo.MarkFailed(ctx, exam.ID, msg, maxRetries); err != nil {
		log.Printf("extractService: exam %s: MarkFailed error: %v", exam.PortalID, err)
	}
}
