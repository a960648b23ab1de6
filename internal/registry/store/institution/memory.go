package institution

import (
	"context"
	"sync"

	"academy/internal/registry/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// ErrNotFound is returned when an institution is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores institutions in memory for the demo environment.
type InMemory struct {
	mu           sync.RWMutex
	institutions map[id.InstitutionID]*models.Institution
}

// NewInMemory creates an in-memory institution store.
func NewInMemory() *InMemory {
	return &InMemory{institutions: make(map[id.InstitutionID]*models.Institution)}
}

// Create persists a new institution record.
func (s *InMemory) Create(_ context.Context, inst *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.institutions[inst.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.institutions[inst.ID] = inst.Clone()
	return nil
}

// FindByID retrieves an institution by its ID.
func (s *InMemory) FindByID(_ context.Context, institutionID id.InstitutionID) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.institutions[institutionID]
	if !ok {
		return nil, ErrNotFound
	}
	return inst.Clone(), nil
}

// Execute atomically validates and mutates an institution record. The lock
// is held for both callbacks, so counter reads and writes in one call can
// never interleave with another operation's.
func (s *InMemory) Execute(_ context.Context, institutionID id.InstitutionID, validate func(*models.Institution) error, mutate func(*models.Institution)) (*models.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.institutions[institutionID]
	if !ok {
		return nil, ErrNotFound
	}
	if validate != nil {
		if err := validate(inst); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(inst)
	}
	return inst.Clone(), nil
}
