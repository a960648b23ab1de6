// Package enrollment defines the wire-level contract for the academy
// enrollment API. It is a standalone module so external clients can depend on
// the request/response shapes without importing the service itself.
package enrollment

import "time"

// InitializeInstitutionRequest creates the institution registry record.
type InitializeInstitutionRequest struct {
	Name          string `json:"name"`
	EnrollmentFee uint64 `json:"enrollment_fee"`
}

// InstitutionResponse is the public view of an institution record.
type InstitutionResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	AdminID        string    `json:"admin_id"`
	CredentialMint string    `json:"credential_mint"`
	CourseCount    uint64    `json:"course_count"`
	StudentCount   uint64    `json:"student_count"`
	EnrollmentFee  uint64    `json:"enrollment_fee"`
	CreatedAt      time.Time `json:"created_at"`
}

// CourseData carries the caller-supplied course fields for create_course.
type CourseData struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TuitionFee  uint64    `json:"tuition_fee"`
}

// CourseResponse is the public view of a catalog entry.
type CourseResponse struct {
	Key             string    `json:"key"`
	ID              uint64    `json:"id"`
	InstitutionID   string    `json:"institution_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TuitionFee      uint64    `json:"tuition_fee"`
	EnrollmentCount uint64    `json:"enrollment_count"`
	Capacity        uint64    `json:"capacity"`
	Mint            string    `json:"mint"`
	CreatedAt       time.Time `json:"created_at"`
}

// EnrollInstitutionRequest pays the institution fee and claims the credential.
// AdminID names the fee recipient and must match the registry record.
type EnrollInstitutionRequest struct {
	PaymentAmount uint64 `json:"payment_amount"`
	AdminID       string `json:"admin_id"`
}

// EnrollCourseRequest commits a course enrollment. CourseID must match the
// catalog number of the course addressed by the URL.
type EnrollCourseRequest struct {
	CourseID uint64 `json:"course_id"`
	AdminID  string `json:"admin_id"`
}

// EnrollmentResponse is the public view of a ledger record.
type EnrollmentResponse struct {
	StudentID  string    `json:"student_id"`
	CourseKey  string    `json:"course_key"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Completed  bool      `json:"completed"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
