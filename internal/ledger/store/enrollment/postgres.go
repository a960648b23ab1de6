package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"academy/internal/ledger/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// PostgresStore persists the enrollment ledger in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed enrollment ledger.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create commits a new ledger record. The primary key on
// (course_key, student_id) guarantees a pair is recorded at most once even
// under concurrent commits; the unique violation surfaces as ErrAlreadyUsed.
func (s *PostgresStore) Create(ctx context.Context, record *models.Enrollment) error {
	if record == nil {
		return fmt.Errorf("enrollment is required")
	}
	query := `
		INSERT INTO enrollments (course_key, student_id, enrolled_at, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	var completedAt sql.NullTime
	if record.Completed {
		completedAt = sql.NullTime{Time: record.CompletedAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(record.CourseKey),
		uuid.UUID(record.StudentID),
		record.EnrolledAt,
		record.Completed,
		completedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("enrollment already recorded: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Find retrieves a ledger record.
func (s *PostgresStore) Find(ctx context.Context, key models.EnrollmentKey) (*models.Enrollment, error) {
	query := selectEnrollment + ` WHERE course_key = $1 AND student_id = $2`
	record, err := scanEnrollment(s.db.QueryRowContext(ctx, query, uuid.UUID(key.CourseKey), uuid.UUID(key.StudentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return record, nil
}

// Exists reports whether a ledger record exists for the pair.
func (s *PostgresStore) Exists(ctx context.Context, key models.EnrollmentKey) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_key = $1 AND student_id = $2)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, uuid.UUID(key.CourseKey), uuid.UUID(key.StudentID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return exists, nil
}

// ListByCourse returns the course's roster ordered by enrollment time.
func (s *PostgresStore) ListByCourse(ctx context.Context, courseKey id.CourseKey) ([]*models.Enrollment, error) {
	query := selectEnrollment + ` WHERE course_key = $1 ORDER BY enrolled_at`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(courseKey))
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var out []*models.Enrollment
	for rows.Next() {
		record, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return out, nil
}

// Execute atomically validates and mutates a ledger record. The row is
// locked with FOR UPDATE for the duration of both callbacks.
func (s *PostgresStore) Execute(ctx context.Context, key models.EnrollmentKey, validate func(*models.Enrollment) error, mutate func(*models.Enrollment)) (*models.Enrollment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin enrollment tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := selectEnrollment + ` WHERE course_key = $1 AND student_id = $2 FOR UPDATE`
	record, err := scanEnrollment(tx.QueryRowContext(ctx, query, uuid.UUID(key.CourseKey), uuid.UUID(key.StudentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock enrollment: %w", err)
	}

	if validate != nil {
		if err := validate(record); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(record)
	}

	update := `
		UPDATE enrollments
		SET completed = $3, completed_at = $4
		WHERE course_key = $1 AND student_id = $2
	`
	var completedAt sql.NullTime
	if record.Completed {
		completedAt = sql.NullTime{Time: record.CompletedAt, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, update,
		uuid.UUID(record.CourseKey),
		uuid.UUID(record.StudentID),
		record.Completed,
		completedAt,
	); err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit enrollment tx: %w", err)
	}
	return record, nil
}

const selectEnrollment = `
	SELECT course_key, student_id, enrolled_at, completed, completed_at
	FROM enrollments
`

type enrollmentRow interface {
	Scan(dest ...any) error
}

func scanEnrollment(row enrollmentRow) (*models.Enrollment, error) {
	var record models.Enrollment
	var courseKey, studentID uuid.UUID
	var completedAt sql.NullTime
	if err := row.Scan(
		&courseKey,
		&studentID,
		&record.EnrolledAt,
		&record.Completed,
		&completedAt,
	); err != nil {
		return nil, err
	}
	record.CourseKey = id.CourseKey(courseKey)
	record.StudentID = id.AccountID(studentID)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
