package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"concursos/internal/domain"
	"concursos/internal/port"
)

type positionRepo struct {
	db *sqlx.DB
}

// NewPositionRepo creates a new PostgreSQL-backed PositionRepository.
func NewPositionRepo(db *sqlx.DB) port.PositionRepository {
	return &positionRepo{db: db}
}

const insertPositionQuery = `INSERT INTO positions
	(id, exam_id, city, role, requirement, salary, raw_salary, weekly_hours,
	 vacancies, raw_vacancies, to_be_determined, reserve_register, page, row_num)
	VALUES (:id, :exam_id, :city, :role, :requirement, :salary, :raw_salary, :weekly_hours,
	 :vacancies, :raw_vacancies, :to_be_determined, :reserve_register, :page, :row_num)`

func (r *positionRepo) ReplaceForExam(ctx context.Context, examID string, records []domain.PositionRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("positionRepo.ReplaceForExam begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM positions WHERE exam_id = $1", examID); err != nil {
		return fmt.Errorf("positionRepo.ReplaceForExam delete: %w", err)
	}

	for i := range records {
		// The pipeline leaves IDs zeroed so reprocessing stays
		// deterministic; identifiers are assigned only at insert.
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
		if _, err := tx.NamedExecContext(ctx, insertPositionQuery, records[i]); err != nil {
			return fmt.Errorf("positionRepo.ReplaceForExam insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("positionRepo.ReplaceForExam commit: %w", err)
	}
	return nil
}

func (r *positionRepo) ListByExam(ctx context.Context, examID string) ([]domain.PositionRecord, error) {
	var positions []domain.PositionRecord
	err := r.db.SelectContext(ctx, &positions,
		`SELECT * FROM positions WHERE exam_id = $1 ORDER BY page, row_num`, examID)
	if err != nil {
		return nil, fmt.Errorf("positionRepo.ListByExam: %w", err)
	}
	return positions, nil
}

func (r *positionRepo) List(ctx context.Context, filter port.PositionFilter, offset, limit int) ([]domain.PositionRecord, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	n := 0
	if filter.City != "" {
		n++
		where += fmt.Sprintf(" AND p.city ILIKE $%d", n)
		args = append(args, "%"+filter.City+"%")
	}
	if filter.RoleQuery != "" {
		n++
		where += fmt.Sprintf(" AND p.role ILIKE $%d", n)
		args = append(args, "%"+filter.RoleQuery+"%")
	}
	if filter.State != "" {
		n++
		where += fmt.Sprintf(" AND e.state = $%d", n)
		args = append(args, filter.State)
	}

	from := "FROM positions p JOIN exams e ON e.portal_id = p.exam_id"

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+from+" "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("positionRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT p.* %s %s ORDER BY p.exam_id, p.page, p.row_num LIMIT $%d OFFSET $%d",
		from, where, n+1, n+2)
	args = append(args, limit, offset)

	var positions []domain.PositionRecord
	if err := r.db.SelectContext(ctx, &positions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("positionRepo.List: %w", err)
	}
	return positions, total, nil
}

func (r *positionRepo) ListAll(ctx context.Context) ([]domain.PositionRecord, error) {
	var positions []domain.PositionRecord
	err := r.db.SelectContext(ctx, &positions,
		"SELECT * FROM positions ORDER BY exam_id, page, row_num")
	if err != nil {
		return nil, fmt.Errorf("positionRepo.ListAll: %w", err)
	}
	return positions, nil
}
