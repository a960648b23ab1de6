package models

import (
	"time"

	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
)

// Institution is the registry record anchoring authority checks and course
// numbering.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - EnrollmentFee is positive
//   - CourseCount and StudentCount only increase, and each counter is read
//     and written inside the same unit of work as the operation that depends
//     on it (Execute on the store), so concurrent operations can never
//     observe the same counter value twice
//   - AdminID and CredentialMint are immutable after construction
type Institution struct {
	ID             id.InstitutionID `json:"id"`
	Name           string           `json:"name"`
	AdminID        id.AccountID     `json:"admin_id"`
	CredentialMint id.MintID        `json:"credential_mint"`
	CourseCount    uint64           `json:"course_count"`
	StudentCount   uint64           `json:"student_count"`
	EnrollmentFee  uint64           `json:"enrollment_fee"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ValidateProfile checks the caller-supplied institution fields. The service
// runs it before any external side effect; NewInstitution applies the same
// rules.
func ValidateProfile(name string, fee uint64) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "institution name cannot be empty")
	}
	if len(name) > 128 {
		return dErrors.New(dErrors.CodeInvariantViolation, "institution name must be 128 characters or less")
	}
	if fee == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "enrollment fee must be positive")
	}
	return nil
}

// NewInstitution validates invariants and constructs the record with both
// counters at zero.
func NewInstitution(institutionID id.InstitutionID, name string, adminID id.AccountID, mint id.MintID, fee uint64, now time.Time) (*Institution, error) {
	if err := ValidateProfile(name, fee); err != nil {
		return nil, err
	}
	if adminID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution admin is required")
	}
	return &Institution{
		ID:             institutionID,
		Name:           name,
		AdminID:        adminID,
		CredentialMint: mint,
		EnrollmentFee:  fee,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsAdmin reports whether the given account controls this institution.
func (i *Institution) IsAdmin(account id.AccountID) bool {
	return i.AdminID == account
}

// NextCourseID returns the catalog number the next course will receive.
// Call only inside the store's Execute callback; the subsequent
// ApplyCourseCreated must happen in the same unit of work.
func (i *Institution) NextCourseID() id.CourseID {
	return id.CourseID(i.CourseCount)
}

// ApplyCourseCreated consumes the current course number.
func (i *Institution) ApplyCourseCreated(now time.Time) {
	i.CourseCount++
	i.UpdatedAt = now
}

// ApplyStudentEnrolled records a successful institution-level enrollment.
func (i *Institution) ApplyStudentEnrolled(now time.Time) {
	i.StudentCount++
	i.UpdatedAt = now
}

// Clone returns a deep copy so callers can hand records across goroutines.
func (i *Institution) Clone() *Institution {
	cp := *i
	return &cp
}
