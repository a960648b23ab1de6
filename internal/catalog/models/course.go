package models

import (
	"time"

	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
)

// Course is one catalog entry.
//
// Invariants:
//   - ID is assigned exactly once, from the institution's course counter,
//     inside the same unit of work that increments the counter
//   - TuitionFee is positive and immutable after creation
//   - EnrollmentCount is non-negative and only incremented, inside the same
//     unit of work as the ledger commit that it counts
//   - StartDate precedes EndDate
//
// Capacity of zero means unbounded; the capacity check is only enforced for
// a positive bound.
type Course struct {
	Key             id.CourseKey     `json:"key"`
	ID              id.CourseID      `json:"id"`
	InstitutionID   id.InstitutionID `json:"institution_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	TuitionFee      uint64           `json:"tuition_fee"`
	EnrollmentCount uint64           `json:"enrollment_count"`
	Capacity        uint64           `json:"capacity"`
	Mint            id.MintID        `json:"mint"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CourseData carries the caller-supplied fields for course creation.
type CourseData struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	TuitionFee  uint64
}

// Validate checks the caller-supplied fields. The service runs it before any
// external side effect; NewCourse applies the same rules.
func (d CourseData) Validate() error {
	if d.Name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "course name cannot be empty")
	}
	if len(d.Name) > 128 {
		return dErrors.New(dErrors.CodeInvariantViolation, "course name must be 128 characters or less")
	}
	if d.TuitionFee == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "tuition fee must be positive")
	}
	if !d.StartDate.Before(d.EndDate) {
		return dErrors.New(dErrors.CodeInvariantViolation, "course start date must precede end date")
	}
	return nil
}

// NewCourse validates invariants and constructs the catalog entry.
func NewCourse(key id.CourseKey, courseID id.CourseID, institutionID id.InstitutionID, data CourseData, capacity uint64, mint id.MintID, now time.Time) (*Course, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &Course{
		Key:           key,
		ID:            courseID,
		InstitutionID: institutionID,
		Name:          data.Name,
		Description:   data.Description,
		StartDate:     data.StartDate,
		EndDate:       data.EndDate,
		TuitionFee:    data.TuitionFee,
		Capacity:      capacity,
		Mint:          mint,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsFull reports whether the course has reached its capacity bound.
// Unbounded courses are never full.
func (c *Course) IsFull() bool {
	return c.Capacity > 0 && c.EnrollmentCount >= c.Capacity
}

// CanEnroll checks whether another enrollment fits the capacity bound.
// Use with ApplyEnrollment in Execute callbacks so the check and the
// increment share one unit of work.
func (c *Course) CanEnroll() error {
	if c.IsFull() {
		return dErrors.New(dErrors.CodeCourseFull, "course is already full")
	}
	return nil
}

// ApplyEnrollment records a committed enrollment.
func (c *Course) ApplyEnrollment(now time.Time) {
	c.EnrollmentCount++
	c.UpdatedAt = now
}

// Clone returns a deep copy so callers can hand records across goroutines.
func (c *Course) Clone() *Course {
	cp := *c
	return &cp
}
