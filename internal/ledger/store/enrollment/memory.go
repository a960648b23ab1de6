package enrollment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"academy/internal/ledger/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// InMemory is an in-memory enrollment ledger for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	records map[models.EnrollmentKey]*models.Enrollment
}

// NewInMemory constructs an in-memory enrollment ledger.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[models.EnrollmentKey]*models.Enrollment)}
}

// Create commits a new ledger record. An existing record for the same
// (course, student) pair is never overwritten.
func (s *InMemory) Create(_ context.Context, record *models.Enrollment) error {
	if record == nil {
		return fmt.Errorf("enrollment is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := record.Key()
	if _, exists := s.records[key]; exists {
		return fmt.Errorf("enrollment for student %s in course %s: %w", key.StudentID, key.CourseKey, sentinel.ErrAlreadyUsed)
	}
	s.records[key] = record.Clone()
	return nil
}

// Find retrieves a ledger record.
func (s *InMemory) Find(_ context.Context, key models.EnrollmentKey) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

// Exists reports whether a ledger record exists for the pair.
func (s *InMemory) Exists(_ context.Context, key models.EnrollmentKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[key]
	return ok, nil
}

// ListByCourse returns the course's roster ordered by enrollment time.
func (s *InMemory) ListByCourse(_ context.Context, courseKey id.CourseKey) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Enrollment
	for _, record := range s.records {
		if record.CourseKey == courseKey {
			out = append(out, record.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt.Before(out[j].EnrolledAt) })
	return out, nil
}

// Execute atomically validates and mutates a ledger record. The store lock
// is held across both callbacks.
func (s *InMemory) Execute(_ context.Context, key models.EnrollmentKey, validate func(*models.Enrollment) error, mutate func(*models.Enrollment)) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	if validate != nil {
		if err := validate(record); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(record)
	}
	return record.Clone(), nil
}
