// Package events defines the enrollment event stream. Every committed state
// transition emits one event so downstream consumers (reporting,
// reconciliation) can observe the ledger without polling it.
package events

import (
	"time"

	id "academy/pkg/domain"
)

// Action identifies the state transition an event records.
type Action string

const (
	ActionInstitutionInitialized Action = "institution.initialized"
	ActionCourseCreated          Action = "course.created"
	ActionInstitutionEnrolled    Action = "institution.enrolled"
	ActionCourseEnrolled         Action = "course.enrolled"
	ActionEnrollmentCompleted    Action = "enrollment.completed"
)

// Topic is the Kafka topic enrollment events are published to.
const Topic = "academy.enrollment.events"

// Event is one enrollment-stream record. Amount is in the smallest value
// unit and zero for non-monetary transitions.
type Event struct {
	Action        Action           `json:"action"`
	InstitutionID id.InstitutionID `json:"institution_id"`
	ActorID       id.AccountID     `json:"actor_id"`
	CourseKey     string           `json:"course_key,omitempty"`
	CourseID      string           `json:"course_id,omitempty"`
	Amount        uint64           `json:"amount,omitempty"`
	RequestID     string           `json:"request_id,omitempty"`
	ClientIP      string           `json:"client_ip,omitempty"`
	UserAgent     string           `json:"user_agent,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}
