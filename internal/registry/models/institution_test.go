package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
)

func TestNewInstitution(t *testing.T) {
	institutionID := id.InstitutionID(uuid.New())
	adminID := id.AccountID(uuid.New())
	mint := id.MintID(uuid.New())
	now := time.Now().UTC()

	t.Run("constructs with counters at zero", func(t *testing.T) {
		inst, err := NewInstitution(institutionID, "Test University", adminID, mint, 100, now)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), inst.CourseCount)
		assert.Equal(t, uint64(0), inst.StudentCount)
		assert.Equal(t, uint64(100), inst.EnrollmentFee)
		assert.Equal(t, now, inst.CreatedAt)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewInstitution(institutionID, "", adminID, mint, 100, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects name over 128 characters", func(t *testing.T) {
		_, err := NewInstitution(institutionID, strings.Repeat("x", 129), adminID, mint, 100, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects nil admin", func(t *testing.T) {
		_, err := NewInstitution(institutionID, "Test University", id.AccountID{}, mint, 100, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects zero fee", func(t *testing.T) {
		_, err := NewInstitution(institutionID, "Test University", adminID, mint, 0, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestCourseNumbering(t *testing.T) {
	inst, err := NewInstitution(id.InstitutionID(uuid.New()), "Test University", id.AccountID(uuid.New()), id.MintID(uuid.New()), 100, time.Now().UTC())
	require.NoError(t, err)

	// Numbers start at 0 and advance only when consumed.
	assert.Equal(t, id.CourseID(0), inst.NextCourseID())
	assert.Equal(t, id.CourseID(0), inst.NextCourseID())

	inst.ApplyCourseCreated(time.Now().UTC())
	assert.Equal(t, id.CourseID(1), inst.NextCourseID())

	inst.ApplyCourseCreated(time.Now().UTC())
	assert.Equal(t, id.CourseID(2), inst.NextCourseID())
	assert.Equal(t, uint64(2), inst.CourseCount)
}

func TestIsAdmin(t *testing.T) {
	adminID := id.AccountID(uuid.New())
	inst, err := NewInstitution(id.InstitutionID(uuid.New()), "Test University", adminID, id.MintID(uuid.New()), 100, time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, inst.IsAdmin(adminID))
	assert.False(t, inst.IsAdmin(id.AccountID(uuid.New())))
}

func TestClone(t *testing.T) {
	inst, err := NewInstitution(id.InstitutionID(uuid.New()), "Test University", id.AccountID(uuid.New()), id.MintID(uuid.New()), 100, time.Now().UTC())
	require.NoError(t, err)

	cp := inst.Clone()
	cp.ApplyStudentEnrolled(time.Now().UTC())

	assert.Equal(t, uint64(0), inst.StudentCount)
	assert.Equal(t, uint64(1), cp.StudentCount)
}
