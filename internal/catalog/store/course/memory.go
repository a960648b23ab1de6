package course

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"academy/internal/catalog/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// InMemory is an in-memory course store for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	courses map[id.CourseKey]*models.Course
}

// NewInMemory constructs an in-memory course store.
func NewInMemory() *InMemory {
	return &InMemory{courses: make(map[id.CourseKey]*models.Course)}
}

// Create persists a new course record.
func (s *InMemory) Create(_ context.Context, course *models.Course) error {
	if course == nil {
		return fmt.Errorf("course is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.courses[course.Key]; exists {
		return fmt.Errorf("course %s: %w", course.Key, sentinel.ErrAlreadyUsed)
	}
	for _, existing := range s.courses {
		if existing.InstitutionID == course.InstitutionID && existing.ID == course.ID {
			return fmt.Errorf("course number %d: %w", course.ID, sentinel.ErrAlreadyUsed)
		}
	}
	s.courses[course.Key] = course.Clone()
	return nil
}

// FindByKey retrieves a course by its key.
func (s *InMemory) FindByKey(_ context.Context, key id.CourseKey) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return course.Clone(), nil
}

// ListByInstitution returns the institution's catalog ordered by course number.
func (s *InMemory) ListByInstitution(_ context.Context, institutionID id.InstitutionID) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Course
	for _, course := range s.courses {
		if course.InstitutionID == institutionID {
			out = append(out, course.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Execute atomically validates and mutates a course record. The store lock
// is held across both callbacks.
func (s *InMemory) Execute(_ context.Context, key id.CourseKey, validate func(*models.Course) error, mutate func(*models.Course)) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	if validate != nil {
		if err := validate(course); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(course)
	}
	return course.Clone(), nil
}
