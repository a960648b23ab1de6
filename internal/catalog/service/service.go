package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	catalogmetrics "academy/internal/catalog/metrics"
	"academy/internal/catalog/models"
	"academy/internal/events"
	registrymodels "academy/internal/registry/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/requestcontext"
)

// CourseStore persists course records. Execute holds the record's lock
// (mutex or FOR UPDATE) across both callbacks.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	FindByKey(ctx context.Context, key id.CourseKey) (*models.Course, error)
	ListByInstitution(ctx context.Context, institutionID id.InstitutionID) ([]*models.Course, error)
	Execute(ctx context.Context, key id.CourseKey, validate func(*models.Course) error, mutate func(*models.Course)) (*models.Course, error)
}

// InstitutionStore is the slice of the registry store the catalog needs:
// pre-checking admin authority and allocating course numbers under the
// institution's lock.
type InstitutionStore interface {
	FindByID(ctx context.Context, institutionID id.InstitutionID) (*registrymodels.Institution, error)
	Execute(ctx context.Context, institutionID id.InstitutionID, validate func(*registrymodels.Institution) error, mutate func(*registrymodels.Institution)) (*registrymodels.Institution, error)
}

// MintCreator mints the per-course completion credential.
type MintCreator interface {
	CreateMint(ctx context.Context, authority id.AccountID) (id.MintID, error)
}

// CatalogService manages the institution's course catalog.
type CatalogService struct {
	courses         CourseStore
	institutions    InstitutionStore
	mints           MintCreator
	publisher       events.Publisher
	logger          *slog.Logger
	metrics         *catalogmetrics.Metrics
	defaultCapacity uint64
}

// Option configures the CatalogService.
type Option func(*CatalogService)

// WithLogger sets a logger for event emission failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *CatalogService) { s.logger = logger }
}

// WithPublisher sets the enrollment event publisher.
func WithPublisher(publisher events.Publisher) Option {
	return func(s *CatalogService) { s.publisher = publisher }
}

// WithMetrics sets the catalog metrics.
func WithMetrics(m *catalogmetrics.Metrics) Option {
	return func(s *CatalogService) { s.metrics = m }
}

// WithDefaultCapacity sets the capacity bound stamped onto new courses.
// Zero leaves courses unbounded.
func WithDefaultCapacity(capacity uint64) Option {
	return func(s *CatalogService) { s.defaultCapacity = capacity }
}

// New constructs a CatalogService.
func New(courses CourseStore, institutions InstitutionStore, mints MintCreator, opts ...Option) *CatalogService {
	s := &CatalogService{courses: courses, institutions: institutions, mints: mints}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCourse registers a course under the institution. Only the
// institution's admin may register courses. The course number is allocated
// from the institution's counter under the registry lock, so concurrent
// registrations get distinct, monotonically increasing numbers.
func (s *CatalogService) CreateCourse(ctx context.Context, institutionID id.InstitutionID, actorID id.AccountID, data models.CourseData) (*models.Course, error) {
	if institutionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "institution ID is required")
	}
	data.Name = strings.TrimSpace(data.Name)

	// Authority and input checks run before the mint call; a rejected
	// registration must not leave an orphan mint at the issuance service.
	inst, err := s.institutions.FindByID(ctx, institutionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	if !inst.IsAdmin(actorID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the institution admin can register courses")
	}
	if err := data.Validate(); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	mint, err := s.mints.CreateMint(ctx, actorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create course credential mint")
	}

	var course *models.Course
	_, err = s.institutions.Execute(ctx, institutionID,
		func(inst *registrymodels.Institution) error {
			// Re-checked under the institution lock.
			if !inst.IsAdmin(actorID) {
				return dErrors.New(dErrors.CodeForbidden, "only the institution admin can register courses")
			}
			now := requestcontext.Now(ctx)
			built, buildErr := models.NewCourse(id.CourseKey(uuid.New()), inst.NextCourseID(), inst.ID, data, s.defaultCapacity, mint, now)
			if buildErr != nil {
				if dErrors.HasCode(buildErr, dErrors.CodeInvariantViolation) {
					return dErrors.New(dErrors.CodeValidation, buildErr.Error())
				}
				return buildErr
			}
			course = built
			return nil
		},
		func(inst *registrymodels.Institution) {
			inst.ApplyCourseCreated(requestcontext.Now(ctx))
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		var dErr *dErrors.Error
		if errors.As(err, &dErr) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate course number")
	}

	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "course already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create course")
	}

	s.emit(ctx, events.Event{
		Action:        events.ActionCourseCreated,
		InstitutionID: institutionID,
		ActorID:       actorID,
		CourseKey:     course.Key.String(),
		CourseID:      course.ID.String(),
	})
	s.metrics.IncrementCoursesCreated()

	return course, nil
}

// GetCourse fetches a course record.
func (s *CatalogService) GetCourse(ctx context.Context, key id.CourseKey) (*models.Course, error) {
	if key.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "course key is required")
	}
	course, err := s.courses.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load course")
	}
	return course, nil
}

// ListCourses returns the institution's catalog ordered by course number.
func (s *CatalogService) ListCourses(ctx context.Context, institutionID id.InstitutionID) ([]*models.Course, error) {
	if institutionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "institution ID is required")
	}
	courses, err := s.courses.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list courses")
	}
	return courses, nil
}

// emit publishes an event; failures are logged, never fatal to the operation.
func (s *CatalogService) emit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit catalog event",
			"error", err,
			"action", event.Action,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
