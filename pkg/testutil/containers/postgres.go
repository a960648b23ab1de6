//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"academy/migrations"
	id "academy/pkg/domain"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new Postgres container with migrations applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("academy_test"),
		postgres.WithUsername("academy"),
		postgres.WithPassword("academy_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	pc := &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}

	if err := pc.runMigrations(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Note: We don't register t.Cleanup here because the container is managed
	// by the singleton Manager and shared across test suites. Ryuk (testcontainers'
	// cleanup sidecar) handles container cleanup when the test process exits.

	return pc
}

// runMigrations executes all *.up.sql migrations from the embedded migrations.FS.
func (p *PostgresContainer) runMigrations(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if _, err := p.DB.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}
	}

	return nil
}

// TruncateTables clears all data from the specified tables.
// Use between tests to ensure isolation without restarting the container.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		_, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+pq.QuoteIdentifier(table)+" CASCADE")
		if err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateAll truncates the module tables for full test isolation.
// Order matters due to FK constraints; CASCADE handles dependencies.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	return p.TruncateTables(ctx, "enrollments", "courses", "institutions")
}

// Exec runs a SQL statement and returns the result.
func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

// QueryRow runs a SQL query expected to return a single row.
func (p *PostgresContainer) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return p.DB.QueryRowContext(ctx, query, args...)
}

// CreateTestInstitution inserts an institution row and returns its ID with
// the admin and mint it was created under. Fails the test on error.
func (p *PostgresContainer) CreateTestInstitution(ctx context.Context, t testing.TB, fee uint64) (id.InstitutionID, id.AccountID, id.MintID) {
	t.Helper()
	institutionID := id.InstitutionID(uuid.New())
	adminID := id.AccountID(uuid.New())
	mint := id.MintID(uuid.New())
	_, err := p.Exec(ctx, `
		INSERT INTO institutions (id, name, admin_id, credential_mint, course_count, student_count, enrollment_fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5, NOW(), NOW())
	`, uuid.UUID(institutionID), "Test Institution "+uuid.NewString(), uuid.UUID(adminID), uuid.UUID(mint), fee)
	if err != nil {
		t.Fatalf("CreateTestInstitution: %v", err)
	}
	return institutionID, adminID, mint
}

// CreateTestCourse inserts a course row for the institution and returns its key.
// Fails the test on error.
func (p *PostgresContainer) CreateTestCourse(ctx context.Context, t testing.TB, institutionID id.InstitutionID, courseID uint64, tuition uint64) id.CourseKey {
	t.Helper()
	key := id.CourseKey(uuid.New())
	_, err := p.Exec(ctx, `
		INSERT INTO courses (key, course_id, institution_id, name, description, start_date, end_date, tuition_fee, enrollment_count, capacity, mint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', NOW(), NOW() + INTERVAL '90 days', $5, 0, 0, $6, NOW(), NOW())
	`, uuid.UUID(key), courseID, uuid.UUID(institutionID), "Test Course "+uuid.NewString(), tuition, uuid.New())
	if err != nil {
		t.Fatalf("CreateTestCourse: %v", err)
	}
	return key
}
