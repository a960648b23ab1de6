// Package service implements the enrollment engine: the transactional core
// that turns a student's payment into a permanent, unique enrollment record.
//
// The engine holds no locks of its own. Atomicity lives at the edges: the
// value transfer service moves funds atomically, the stores' Execute
// callbacks guard counters, and the ledger refuses to overwrite a record.
// The engine's job is ordering: every precondition is checked before funds
// move, and funds always move before the record is created, so a crash
// between the two is the only inconsistency window.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"

	catalogmodels "academy/internal/catalog/models"
	enginemetrics "academy/internal/engine/metrics"
	"academy/internal/engine/tracer"
	"academy/internal/events"
	ledgermodels "academy/internal/ledger/models"
	registrymodels "academy/internal/registry/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/requestcontext"
)

// Stage labels for metrics.
const (
	stageInstitution = "institution"
	stageCourse      = "course"
)

// ValueTransfer is the slice of the value transfer service the engine needs.
// Transfer is atomic: it either fully debits and credits or has no effect.
type ValueTransfer interface {
	Balance(ctx context.Context, account id.AccountID) (uint64, error)
	Transfer(ctx context.Context, from, to id.AccountID, amount uint64) error
}

// CredentialService is the slice of the credential issuance service the
// engine needs. MintOne issues at most one unit per call.
type CredentialService interface {
	MintAuthority(ctx context.Context, mint id.MintID) (id.AccountID, error)
	MintOne(ctx context.Context, mint id.MintID, authority, holder id.AccountID) error
	Holding(ctx context.Context, mint id.MintID, holder id.AccountID) (uint64, error)
}

// InstitutionStore is the slice of the registry store the engine needs.
type InstitutionStore interface {
	FindByID(ctx context.Context, institutionID id.InstitutionID) (*registrymodels.Institution, error)
	Execute(ctx context.Context, institutionID id.InstitutionID, validate func(*registrymodels.Institution) error, mutate func(*registrymodels.Institution)) (*registrymodels.Institution, error)
}

// CourseStore is the slice of the catalog store the engine needs.
type CourseStore interface {
	FindByKey(ctx context.Context, key id.CourseKey) (*catalogmodels.Course, error)
	Execute(ctx context.Context, key id.CourseKey, validate func(*catalogmodels.Course) error, mutate func(*catalogmodels.Course)) (*catalogmodels.Course, error)
}

// EnrollmentLedger persists enrollment records. Create must refuse to
// overwrite an existing record for the same (course, student) pair.
type EnrollmentLedger interface {
	Create(ctx context.Context, record *ledgermodels.Enrollment) error
	Find(ctx context.Context, key ledgermodels.EnrollmentKey) (*ledgermodels.Enrollment, error)
	Exists(ctx context.Context, key ledgermodels.EnrollmentKey) (bool, error)
	ListByCourse(ctx context.Context, courseKey id.CourseKey) ([]*ledgermodels.Enrollment, error)
	Execute(ctx context.Context, key ledgermodels.EnrollmentKey, validate func(*ledgermodels.Enrollment) error, mutate func(*ledgermodels.Enrollment)) (*ledgermodels.Enrollment, error)
}

// Engine orchestrates the two enrollment stages and completion marking.
type Engine struct {
	institutions InstitutionStore
	courses      CourseStore
	ledger       EnrollmentLedger
	treasury     ValueTransfer
	credentials  CredentialService
	publisher    events.Publisher
	logger       *slog.Logger
	metrics      *enginemetrics.Metrics
	tracer       tracer.Tracer
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a logger for event emission failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPublisher sets the enrollment event publisher.
func WithPublisher(publisher events.Publisher) Option {
	return func(e *Engine) { e.publisher = publisher }
}

// WithMetrics sets the engine metrics.
func WithMetrics(m *enginemetrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer sets the engine tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// New constructs the enrollment engine.
func New(institutions InstitutionStore, courses CourseStore, ledger EnrollmentLedger, treasury ValueTransfer, credentials CredentialService, opts ...Option) *Engine {
	e := &Engine{
		institutions: institutions,
		courses:      courses,
		ledger:       ledger,
		treasury:     treasury,
		credentials:  credentials,
		tracer:       tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetEnrollment fetches one ledger record.
func (e *Engine) GetEnrollment(ctx context.Context, courseKey id.CourseKey, studentID id.AccountID) (*ledgermodels.Enrollment, error) {
	if courseKey.IsNil() || studentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "course key and student ID are required")
	}
	record, err := e.ledger.Find(ctx, ledgermodels.EnrollmentKey{CourseKey: courseKey, StudentID: studentID})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "enrollment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load enrollment")
	}
	return record, nil
}

// ListRoster returns all ledger records for a course.
func (e *Engine) ListRoster(ctx context.Context, courseKey id.CourseKey) ([]*ledgermodels.Enrollment, error) {
	if courseKey.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "course key is required")
	}
	records, err := e.ledger.ListByCourse(ctx, courseKey)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enrollments")
	}
	return records, nil
}

// loadInstitution translates store sentinels once.
func (e *Engine) loadInstitution(ctx context.Context, institutionID id.InstitutionID) (*registrymodels.Institution, error) {
	inst, err := e.institutions.FindByID(ctx, institutionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	return inst, nil
}

// loadCourse translates store sentinels once.
func (e *Engine) loadCourse(ctx context.Context, key id.CourseKey) (*catalogmodels.Course, error) {
	course, err := e.courses.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load course")
	}
	return course, nil
}

// emit publishes an event; failures are logged, never fatal to the operation.
func (e *Engine) emit(ctx context.Context, event events.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, event); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to emit enrollment event",
			"error", err,
			"action", event.Action,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// reject records a rejection and returns the error unchanged.
func (e *Engine) reject(stage string, span tracer.Span, err error) error {
	var dErr *dErrors.Error
	if errors.As(err, &dErr) {
		e.metrics.IncrementRejections(stage, string(dErr.Code))
		span.SetAttributes(tracer.String(tracer.AttrFailureCode, string(dErr.Code)))
	} else {
		e.metrics.IncrementRejections(stage, string(dErrors.CodeInternal))
	}
	return err
}
