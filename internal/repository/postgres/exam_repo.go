package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"concursos/internal/domain"
	"concursos/internal/port"
)

type examRepo struct {
	db *sqlx.DB
}

// NewExamRepo creates a new PostgreSQL-backed ExamRepository.
func NewExamRepo(db *sqlx.DB) port.ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Upsert(ctx context.Context, exam *domain.Exam) (bool, error) {
	now := time.Now().UTC()
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}
	exam.CreatedAt = now
	exam.UpdatedAt = now

	// xmax = 0 distinguishes a fresh insert from a conflict update.
	query := `INSERT INTO exams
		(id, portal_id, name, url, city, state, bulletin_url, s3_bucket, s3_key,
		 status, document_status, extract_error, extract_attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, '', 0, $12, $13)
		ON CONFLICT (portal_id) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0) AS inserted`

	var row struct {
		ID        uuid.UUID `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		Inserted  bool      `db:"inserted"`
	}
	err := r.db.GetContext(ctx, &row, query,
		exam.ID, exam.PortalID, exam.Name, exam.URL, exam.City, exam.State,
		exam.BulletinURL, exam.S3Bucket, exam.S3Key,
		exam.Status, exam.DocumentStatus, exam.CreatedAt, exam.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("examRepo.Upsert: %w", err)
	}
	exam.ID = row.ID
	exam.CreatedAt = row.CreatedAt
	return row.Inserted, nil
}

func (r *examRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	var exam domain.Exam
	err := r.db.GetContext(ctx, &exam, "SELECT * FROM exams WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExamNotFound
		}
		return nil, fmt.Errorf("examRepo.GetByID: %w", err)
	}
	return &exam, nil
}

func (r *examRepo) GetByPortalID(ctx context.Context, portalID string) (*domain.Exam, error) {
	var exam domain.Exam
	err := r.db.GetContext(ctx, &exam, "SELECT * FROM exams WHERE portal_id = $1", portalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExamNotFound
		}
		return nil, fmt.Errorf("examRepo.GetByPortalID: %w", err)
	}
	return &exam, nil
}

func (r *examRepo) List(ctx context.Context, filter port.ExamFilter, offset, limit int) ([]domain.Exam, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	n := 0
	addArg := func(clause string, val any) {
		n++
		where += fmt.Sprintf(" AND %s = $%d", clause, n)
		args = append(args, val)
	}
	if filter.Status != "" {
		addArg("status", filter.Status)
	}
	if filter.DocumentStatus != "" {
		addArg("document_status", filter.DocumentStatus)
	}
	if filter.State != "" {
		addArg("state", filter.State)
	}
	if filter.City != "" {
		n++
		where += fmt.Sprintf(" AND city ILIKE $%d", n)
		args = append(args, "%"+filter.City+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM exams "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("examRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM exams %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, n+1, n+2)
	args = append(args, limit, offset)

	var exams []domain.Exam
	if err := r.db.SelectContext(ctx, &exams, query, args...); err != nil {
		return nil, 0, fmt.Errorf("examRepo.List: %w", err)
	}
	return exams, total, nil
}

func (r *examRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Exam, error) {
	// SKIP LOCKED keeps concurrent workers from claiming the same exam.
	query := `UPDATE exams SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM exams WHERE status = $3
			ORDER BY created_at ASC LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var exams []domain.Exam
	err := r.db.SelectContext(ctx, &exams, query,
		domain.ExamStatusProcessing, time.Now().UTC(), domain.ExamStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("examRepo.ClaimQueued: %w", err)
	}
	return exams, nil
}

func (r *examRepo) MarkCompleted(ctx context.Context, id uuid.UUID, docStatus domain.DocumentStatus, extractedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE exams SET status = $1, document_status = $2, extract_error = '',
			extracted_at = $3, updated_at = $4
		 WHERE id = $5`,
		domain.ExamStatusCompleted, docStatus, extractedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("examRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExamNotFound
	}
	return nil
}

func (r *examRepo) MarkFailed(ctx context.Context, id uuid.UUID, extractErr string, maxRetries int) error {
	// A failed attempt goes back to the queue until the retry budget is
	// exhausted, then the exam is parked as failed.
	result, err := r.db.ExecContext(ctx,
		`UPDATE exams SET
			extract_attempts = extract_attempts + 1,
			status = CASE WHEN extract_attempts + 1 >= $1 THEN $2 ELSE $3 END,
			extract_error = $4,
			updated_at = $5
		 WHERE id = $6`,
		maxRetries, domain.ExamStatusFailed, domain.ExamStatusQueued,
		extractErr, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("examRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExamNotFound
	}
	return nil
}

func (r *examRepo) SetBulletin(ctx context.Context, id uuid.UUID, bulletinURL, s3Bucket, s3Key string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE exams SET bulletin_url = $1, s3_bucket = $2, s3_key = $3,
			status = $4, updated_at = $5
		 WHERE id = $6`,
		bulletinURL, s3Bucket, s3Key, domain.ExamStatusQueued, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("examRepo.SetBulletin: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExamNotFound
	}
	return nil
}

func (r *examRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE exams SET status = $1, extract_error = '', extract_attempts = 0,
			updated_at = $2
		 WHERE id = $3`,
		domain.ExamStatusQueued, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("examRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExamNotFound
	}
	return nil
}
