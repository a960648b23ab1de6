package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "academy/pkg/domain"
)

func TestMarkCompleted(t *testing.T) {
	record := NewEnrollment(id.AccountID(uuid.New()), id.CourseKey(uuid.New()), time.Now().UTC())
	assert.False(t, record.Completed)
	assert.True(t, record.CompletedAt.IsZero())

	first := time.Now().UTC()
	record.MarkCompleted(first)
	assert.True(t, record.Completed)
	assert.Equal(t, first, record.CompletedAt)

	// Idempotent: a second mark keeps the original timestamp.
	record.MarkCompleted(first.Add(time.Hour))
	assert.Equal(t, first, record.CompletedAt)
}

func TestKey(t *testing.T) {
	studentID := id.AccountID(uuid.New())
	courseKey := id.CourseKey(uuid.New())
	record := NewEnrollment(studentID, courseKey, time.Now().UTC())

	key := record.Key()
	assert.Equal(t, courseKey, key.CourseKey)
	assert.Equal(t, studentID, key.StudentID)

	// Same pair, same key: the identity is deterministic.
	other := NewEnrollment(studentID, courseKey, time.Now().UTC().Add(time.Minute))
	assert.Equal(t, key, other.Key())
}
