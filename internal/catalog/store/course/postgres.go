package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"academy/internal/catalog/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// PostgresStore persists courses in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed course store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create persists a new course record. A unique index on
// (institution_id, course_id) backstops the counter allocation.
func (s *PostgresStore) Create(ctx context.Context, course *models.Course) error {
	if course == nil {
		return fmt.Errorf("course is required")
	}
	query := `
		INSERT INTO courses (key, course_id, institution_id, name, description, start_date, end_date, tuition_fee, enrollment_count, capacity, mint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(course.Key),
		uint64(course.ID),
		uuid.UUID(course.InstitutionID),
		course.Name,
		course.Description,
		course.StartDate,
		course.EndDate,
		course.TuitionFee,
		course.EnrollmentCount,
		course.Capacity,
		uuid.UUID(course.Mint),
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("course already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByKey retrieves a course by its key.
func (s *PostgresStore) FindByKey(ctx context.Context, key id.CourseKey) (*models.Course, error) {
	query := selectCourse + ` WHERE key = $1`
	course, err := scanCourse(s.db.QueryRowContext(ctx, query, uuid.UUID(key)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find course by key: %w", err)
	}
	return course, nil
}

// ListByInstitution returns the institution's catalog ordered by course number.
func (s *PostgresStore) ListByInstitution(ctx context.Context, institutionID id.InstitutionID) ([]*models.Course, error) {
	query := selectCourse + ` WHERE institution_id = $1 ORDER BY course_id`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(institutionID))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}

// Execute atomically validates and mutates a course record. The row is
// locked with FOR UPDATE for the duration of both callbacks, so the capacity
// check and the enrollment counter increment share one unit of work.
func (s *PostgresStore) Execute(ctx context.Context, key id.CourseKey, validate func(*models.Course) error, mutate func(*models.Course)) (*models.Course, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin course tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := selectCourse + ` WHERE key = $1 FOR UPDATE`
	course, err := scanCourse(tx.QueryRowContext(ctx, query, uuid.UUID(key)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock course: %w", err)
	}

	if validate != nil {
		if err := validate(course); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(course)
	}

	update := `
		UPDATE courses
		SET enrollment_count = $2, updated_at = $3
		WHERE key = $1
	`
	if _, err := tx.ExecContext(ctx, update,
		uuid.UUID(course.Key),
		course.EnrollmentCount,
		course.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit course tx: %w", err)
	}
	return course, nil
}

const selectCourse = `
	SELECT key, course_id, institution_id, name, description, start_date, end_date, tuition_fee, enrollment_count, capacity, mint, created_at, updated_at
	FROM courses
`

type courseRow interface {
	Scan(dest ...any) error
}

func scanCourse(row courseRow) (*models.Course, error) {
	var course models.Course
	var key, institutionID, mint uuid.UUID
	var courseID uint64
	if err := row.Scan(
		&key,
		&courseID,
		&institutionID,
		&course.Name,
		&course.Description,
		&course.StartDate,
		&course.EndDate,
		&course.TuitionFee,
		&course.EnrollmentCount,
		&course.Capacity,
		&mint,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	course.Key = id.CourseKey(key)
	course.ID = id.CourseID(courseID)
	course.InstitutionID = id.InstitutionID(institutionID)
	course.Mint = id.MintID(mint)
	return &course, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
