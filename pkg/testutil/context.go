package testutil

import (
	"net/http"
	"time"

	id "academy/pkg/domain"
	"academy/pkg/requestcontext"
)

// WithActor injects a verified actor into the request context.
// This simulates what the auth middleware would do for authenticated requests.
// If the accountID is not a valid UUID, the request is returned unchanged.
func WithActor(req *http.Request, accountID string, role requestcontext.Role) *http.Request {
	parsed, err := id.ParseAccountID(accountID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithActor(req.Context(), parsed, role)
	return req.WithContext(ctx)
}

// WithStudent injects a student actor into the request context.
func WithStudent(req *http.Request, accountID string) *http.Request {
	return WithActor(req, accountID, requestcontext.RoleStudent)
}

// WithAdmin injects an admin actor into the request context.
func WithAdmin(req *http.Request, accountID string) *http.Request {
	return WithActor(req, accountID, requestcontext.RoleAdmin)
}

// WithRequestTime pins the request timestamp, simulating the request ID
// middleware. Use when a test asserts on recorded times.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}
