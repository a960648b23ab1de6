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

func validCourseData(now time.Time) CourseData {
	return CourseData{
		Name:       "Distributed Systems",
		StartDate:  now.AddDate(0, 1, 0),
		EndDate:    now.AddDate(0, 4, 0),
		TuitionFee: 500,
	}
}

func TestNewCourse(t *testing.T) {
	key := id.CourseKey(uuid.New())
	institutionID := id.InstitutionID(uuid.New())
	mint := id.MintID(uuid.New())
	now := time.Now().UTC()

	t.Run("constructs with enrollment count at zero", func(t *testing.T) {
		course, err := NewCourse(key, 3, institutionID, validCourseData(now), 0, mint, now)
		require.NoError(t, err)
		assert.Equal(t, id.CourseID(3), course.ID)
		assert.Equal(t, uint64(0), course.EnrollmentCount)
		assert.Equal(t, uint64(500), course.TuitionFee)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		data := validCourseData(now)
		data.Name = ""
		_, err := NewCourse(key, 0, institutionID, data, 0, mint, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects name over 128 characters", func(t *testing.T) {
		data := validCourseData(now)
		data.Name = strings.Repeat("x", 129)
		_, err := NewCourse(key, 0, institutionID, data, 0, mint, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects zero tuition", func(t *testing.T) {
		data := validCourseData(now)
		data.TuitionFee = 0
		_, err := NewCourse(key, 0, institutionID, data, 0, mint, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects start date not before end date", func(t *testing.T) {
		data := validCourseData(now)
		data.EndDate = data.StartDate
		_, err := NewCourse(key, 0, institutionID, data, 0, mint, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestCapacity(t *testing.T) {
	now := time.Now().UTC()

	t.Run("zero capacity is unbounded", func(t *testing.T) {
		course, err := NewCourse(id.CourseKey(uuid.New()), 0, id.InstitutionID(uuid.New()), validCourseData(now), 0, id.MintID(uuid.New()), now)
		require.NoError(t, err)

		course.EnrollmentCount = 1 << 20
		assert.False(t, course.IsFull())
		assert.NoError(t, course.CanEnroll())
	})

	t.Run("positive capacity bounds enrollment", func(t *testing.T) {
		course, err := NewCourse(id.CourseKey(uuid.New()), 0, id.InstitutionID(uuid.New()), validCourseData(now), 2, id.MintID(uuid.New()), now)
		require.NoError(t, err)

		assert.NoError(t, course.CanEnroll())
		course.ApplyEnrollment(now)
		assert.NoError(t, course.CanEnroll())
		course.ApplyEnrollment(now)

		assert.True(t, course.IsFull())
		err = course.CanEnroll()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCourseFull))
	})
}
