// Package idempotency provides storage for idempotency keys so retried
// enrollment requests replay the original response instead of re-running the
// operation.
package idempotency

import (
	"context"
	"encoding/json"
	"time"
)

// CachedResponse represents a cached response for idempotency.
type CachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

// Store provides idempotency key storage for preventing duplicate request processing.
type Store interface {
	// Get retrieves a cached response for the given idempotency key.
	// Returns nil if not found or expired.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Set stores a response for the given idempotency key with TTL.
	Set(ctx context.Context, key string, response *CachedResponse) error
}
