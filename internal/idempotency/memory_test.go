package idempotency

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a cached response", func(t *testing.T) {
		store := NewInMemory(time.Minute)

		err := store.Set(ctx, "key-1", &CachedResponse{
			StatusCode: 201,
			Body:       json.RawMessage(`{"student_id":"abc"}`),
		})
		require.NoError(t, err)

		cached, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		require.NotNil(t, cached)
		assert.Equal(t, 201, cached.StatusCode)
		assert.JSONEq(t, `{"student_id":"abc"}`, string(cached.Body))
	})

	t.Run("missing key returns nil", func(t *testing.T) {
		store := NewInMemory(time.Minute)

		cached, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("expired entries are not returned", func(t *testing.T) {
		store := NewInMemory(-time.Second)

		require.NoError(t, store.Set(ctx, "key-1", &CachedResponse{StatusCode: 204}))

		cached, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("cleanup drops expired entries", func(t *testing.T) {
		store := NewInMemory(-time.Second)
		require.NoError(t, store.Set(ctx, "key-1", &CachedResponse{StatusCode: 204}))

		store.cleanup()

		store.mu.RLock()
		defer store.mu.RUnlock()
		assert.Empty(t, store.entries)
	})

	t.Run("close stops the cleanup loop", func(t *testing.T) {
		store := NewInMemory(time.Minute)

		require.NoError(t, store.Close())
		// Idempotent; a second close must not panic.
		require.NoError(t, store.Close())

		select {
		case <-store.done:
		default:
			t.Fatal("expected the done channel to be closed")
		}

		// The store still serves reads and writes after Close.
		require.NoError(t, store.Set(ctx, "key-1", &CachedResponse{StatusCode: 201}))
		cached, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.NotNil(t, cached)
	})
}
