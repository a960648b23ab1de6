package institution

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"academy/internal/registry/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// PostgresStore persists institutions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed institution store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create persists a new institution record.
func (s *PostgresStore) Create(ctx context.Context, inst *models.Institution) error {
	if inst == nil {
		return fmt.Errorf("institution is required")
	}
	query := `
		INSERT INTO institutions (id, name, admin_id, credential_mint, course_count, student_count, enrollment_fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(inst.ID),
		inst.Name,
		uuid.UUID(inst.AdminID),
		uuid.UUID(inst.CredentialMint),
		inst.CourseCount,
		inst.StudentCount,
		inst.EnrollmentFee,
		inst.CreatedAt,
		inst.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("institution already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create institution: %w", err)
	}
	return nil
}

// FindByID retrieves an institution by its ID.
func (s *PostgresStore) FindByID(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error) {
	query := selectInstitution + ` WHERE id = $1`
	inst, err := scanInstitution(s.db.QueryRowContext(ctx, query, uuid.UUID(institutionID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find institution by id: %w", err)
	}
	return inst, nil
}

// Execute atomically validates and mutates an institution record. The row is
// locked with FOR UPDATE for the duration of both callbacks, so counter
// reads and writes in one call can never interleave with another
// operation's.
func (s *PostgresStore) Execute(ctx context.Context, institutionID id.InstitutionID, validate func(*models.Institution) error, mutate func(*models.Institution)) (*models.Institution, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin institution tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := selectInstitution + ` WHERE id = $1 FOR UPDATE`
	inst, err := scanInstitution(tx.QueryRowContext(ctx, query, uuid.UUID(institutionID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock institution: %w", err)
	}

	if validate != nil {
		if err := validate(inst); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(inst)
	}

	update := `
		UPDATE institutions
		SET course_count = $2, student_count = $3, updated_at = $4
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, update,
		uuid.UUID(inst.ID),
		inst.CourseCount,
		inst.StudentCount,
		inst.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update institution: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit institution tx: %w", err)
	}
	return inst, nil
}

const selectInstitution = `
	SELECT id, name, admin_id, credential_mint, course_count, student_count, enrollment_fee, created_at, updated_at
	FROM institutions
`

type institutionRow interface {
	Scan(dest ...any) error
}

func scanInstitution(row institutionRow) (*models.Institution, error) {
	var inst models.Institution
	var institutionID, adminID, mint uuid.UUID
	if err := row.Scan(
		&institutionID,
		&inst.Name,
		&adminID,
		&mint,
		&inst.CourseCount,
		&inst.StudentCount,
		&inst.EnrollmentFee,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inst.ID = id.InstitutionID(institutionID)
	inst.AdminID = id.AccountID(adminID)
	inst.CredentialMint = id.MintID(mint)
	return &inst, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
