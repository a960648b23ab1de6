package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := FromEnv()

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, uint64(0), cfg.DefaultCourseCapacity)
		assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
		assert.NotEmpty(t, cfg.JWTSigningKey)
	})

	t.Run("reads the default course capacity", func(t *testing.T) {
		t.Setenv("DEFAULT_COURSE_CAPACITY", "30")

		cfg := FromEnv()

		assert.Equal(t, uint64(30), cfg.DefaultCourseCapacity)
	})

	t.Run("ignores a malformed capacity", func(t *testing.T) {
		t.Setenv("DEFAULT_COURSE_CAPACITY", "thirty")

		cfg := FromEnv()

		assert.Equal(t, uint64(0), cfg.DefaultCourseCapacity)
	})

	t.Run("reads the idempotency TTL", func(t *testing.T) {
		t.Setenv("IDEMPOTENCY_TTL", "1h")

		cfg := FromEnv()

		assert.Equal(t, time.Hour, cfg.IdempotencyTTL)
	})
}
