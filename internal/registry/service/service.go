package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"academy/internal/events"
	registrymetrics "academy/internal/registry/metrics"
	"academy/internal/registry/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/requestcontext"
)

// InstitutionStore persists institution records. Execute holds the record's
// lock (mutex or FOR UPDATE) across both callbacks.
type InstitutionStore interface {
	Create(ctx context.Context, inst *models.Institution) error
	FindByID(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error)
	Execute(ctx context.Context, institutionID id.InstitutionID, validate func(*models.Institution) error, mutate func(*models.Institution)) (*models.Institution, error)
}

// MintCreator is the slice of the credential issuance service the registry
// needs: minting the institution-wide credential gate at initialization.
type MintCreator interface {
	CreateMint(ctx context.Context, authority id.AccountID) (id.MintID, error)
}

// RegistryService orchestrates institution lifecycle management.
type RegistryService struct {
	institutions InstitutionStore
	mints        MintCreator
	publisher    events.Publisher
	logger       *slog.Logger
	metrics      *registrymetrics.Metrics
}

// Option configures the RegistryService.
type Option func(*RegistryService)

// WithLogger sets a logger for event emission failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *RegistryService) { s.logger = logger }
}

// WithPublisher sets the enrollment event publisher.
func WithPublisher(publisher events.Publisher) Option {
	return func(s *RegistryService) { s.publisher = publisher }
}

// WithMetrics sets the registry metrics.
func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(s *RegistryService) { s.metrics = m }
}

// New constructs a RegistryService.
func New(institutions InstitutionStore, mints MintCreator, opts ...Option) *RegistryService {
	s := &RegistryService{institutions: institutions, mints: mints}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize creates the institution record and its credential mint. The
// authenticated admin becomes the controlling administrator and the mint's
// issuing authority.
func (s *RegistryService) Initialize(ctx context.Context, name string, adminID id.AccountID, fee uint64) (*models.Institution, error) {
	name = strings.TrimSpace(name)
	if adminID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "admin identity is required")
	}
	// Reject bad input before the mint call; a failed initialization must not
	// leave an orphan mint at the issuance service.
	if err := models.ValidateProfile(name, fee); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	mint, err := s.mints.CreateMint(ctx, adminID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create credential mint")
	}

	inst, err := models.NewInstitution(id.InstitutionID(uuid.New()), name, adminID, mint, fee, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.institutions.Create(ctx, inst); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "institution already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create institution")
	}

	s.emit(ctx, events.Event{
		Action:        events.ActionInstitutionInitialized,
		InstitutionID: inst.ID,
		ActorID:       adminID,
	})
	s.metrics.IncrementInstitutionsCreated()

	return inst, nil
}

// Get fetches an institution record.
func (s *RegistryService) Get(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error) {
	if institutionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "institution ID is required")
	}
	inst, err := s.institutions.FindByID(ctx, institutionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	return inst, nil
}

// emit publishes an event; failures are logged, never fatal to the operation.
func (s *RegistryService) emit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit registry event",
			"error", err,
			"action", event.Action,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
