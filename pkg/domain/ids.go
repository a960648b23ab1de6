// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "academy/pkg/domain-errors"
)

// Distinct ID types - the compiler prevents passing an AccountID where an
// InstitutionID is expected.
type (
	// AccountID identifies an actor's value-holding account (students and
	// administrators alike). The value transfer and credential services
	// address holders by this ID.
	AccountID uuid.UUID

	// InstitutionID identifies the institution registry record.
	InstitutionID uuid.UUID

	// MintID identifies a credential mint at the credential issuance service.
	MintID uuid.UUID

	// CourseKey is the addressable identity of a catalog entry. It is
	// distinct from the catalog number (CourseID) so a stale reference and a
	// claimed number can disagree and be rejected.
	CourseKey uuid.UUID
)

// CourseID is the catalog number assigned from the institution's course
// counter. Numbers start at 0 and are strictly increasing.
type CourseID uint64

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseAccountID(s string) (AccountID, error) {
	id, err := parseUUID(s, "account ID")
	return AccountID(id), err
}

func ParseInstitutionID(s string) (InstitutionID, error) {
	id, err := parseUUID(s, "institution ID")
	return InstitutionID(id), err
}

func ParseMintID(s string) (MintID, error) {
	id, err := parseUUID(s, "mint ID")
	return MintID(id), err
}

func ParseCourseKey(s string) (CourseKey, error) {
	id, err := parseUUID(s, "course key")
	return CourseKey(id), err
}

// ParseCourseID parses a catalog number from its decimal representation.
func ParseCourseID(s string) (CourseID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "course ID cannot be empty")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid course ID format")
	}
	return CourseID(n), nil
}

// String methods - for logging and debugging.

func (id AccountID) String() string     { return uuid.UUID(id).String() }
func (id InstitutionID) String() string { return uuid.UUID(id).String() }
func (id MintID) String() string        { return uuid.UUID(id).String() }
func (id CourseKey) String() string     { return uuid.UUID(id).String() }
func (id CourseID) String() string      { return strconv.FormatUint(uint64(id), 10) }

// IsNil checks - used for service-layer validation.

func (id AccountID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id MintID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id CourseKey) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Note: Nil UUIDs are allowed here. Use IsNil() at the service layer for
// business validation, which lets store lookups return proper "not found"
// errors for consistency.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
