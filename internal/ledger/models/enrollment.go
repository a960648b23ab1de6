package models

import (
	"time"

	id "academy/pkg/domain"
)

// Enrollment is one permanent ledger record: proof that a student enrolled
// in a course. Records are identified by the (course, student) pair, created
// exactly once, and never overwritten. The only mutation ever applied is
// marking completion.
type Enrollment struct {
	StudentID   id.AccountID `json:"student_id"`
	CourseKey   id.CourseKey `json:"course_key"`
	EnrolledAt  time.Time    `json:"enrolled_at"`
	Completed   bool         `json:"completed"`
	CompletedAt time.Time    `json:"completed_at,omitzero"`
}

// Key is the record's identity.
func (e *Enrollment) Key() EnrollmentKey {
	return EnrollmentKey{CourseKey: e.CourseKey, StudentID: e.StudentID}
}

// EnrollmentKey is the deterministic identity of a ledger record. Deriving
// it from the course and student rather than minting a fresh ID is what
// makes double enrollment structurally impossible at the storage layer.
type EnrollmentKey struct {
	CourseKey id.CourseKey
	StudentID id.AccountID
}

// NewEnrollment constructs a fresh, uncompleted record.
func NewEnrollment(studentID id.AccountID, courseKey id.CourseKey, now time.Time) *Enrollment {
	return &Enrollment{
		StudentID:  studentID,
		CourseKey:  courseKey,
		EnrolledAt: now,
	}
}

// MarkCompleted flips the completion flag. Idempotent.
func (e *Enrollment) MarkCompleted(now time.Time) {
	if e.Completed {
		return
	}
	e.Completed = true
	e.CompletedAt = now
}

// Clone returns a deep copy so callers can hand records across goroutines.
func (e *Enrollment) Clone() *Enrollment {
	cp := *e
	return &cp
}
