package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"academy/internal/ledger/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

type LedgerStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestLedgerStoreSuite(t *testing.T) {
	suite.Run(t, new(LedgerStoreSuite))
}

func (s *LedgerStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *LedgerStoreSuite) TestCreate() {
	s.Run("commits a record and finds it", func() {
		record := models.NewEnrollment(id.AccountID(uuid.New()), id.CourseKey(uuid.New()), time.Now().UTC())
		s.Require().NoError(s.store.Create(s.ctx, record))

		found, err := s.store.Find(s.ctx, record.Key())
		s.Require().NoError(err)
		s.Equal(record.StudentID, found.StudentID)
		s.False(found.Completed)
	})

	s.Run("never overwrites an existing pair", func() {
		studentID := id.AccountID(uuid.New())
		courseKey := id.CourseKey(uuid.New())
		original := models.NewEnrollment(studentID, courseKey, time.Now().UTC())
		s.Require().NoError(s.store.Create(s.ctx, original))

		replay := models.NewEnrollment(studentID, courseKey, time.Now().UTC().Add(time.Hour))
		s.Require().ErrorIs(s.store.Create(s.ctx, replay), sentinel.ErrAlreadyUsed)

		// The original enrollment time survives.
		found, err := s.store.Find(s.ctx, original.Key())
		s.Require().NoError(err)
		s.Equal(original.EnrolledAt, found.EnrolledAt)
	})

	s.Run("same student in a different course is a distinct record", func() {
		studentID := id.AccountID(uuid.New())
		s.Require().NoError(s.store.Create(s.ctx, models.NewEnrollment(studentID, id.CourseKey(uuid.New()), time.Now().UTC())))
		s.Require().NoError(s.store.Create(s.ctx, models.NewEnrollment(studentID, id.CourseKey(uuid.New()), time.Now().UTC())))
	})
}

func (s *LedgerStoreSuite) TestExistsAndFind() {
	record := models.NewEnrollment(id.AccountID(uuid.New()), id.CourseKey(uuid.New()), time.Now().UTC())

	exists, err := s.store.Exists(s.ctx, record.Key())
	s.Require().NoError(err)
	s.False(exists)

	_, err = s.store.Find(s.ctx, record.Key())
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Create(s.ctx, record))

	exists, err = s.store.Exists(s.ctx, record.Key())
	s.Require().NoError(err)
	s.True(exists)
}

func (s *LedgerStoreSuite) TestListByCourse() {
	courseKey := id.CourseKey(uuid.New())
	base := time.Now().UTC()

	// Insert newest first; the roster comes back in enrollment order.
	for i := 2; i >= 0; i-- {
		record := models.NewEnrollment(id.AccountID(uuid.New()), courseKey, base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(s.store.Create(s.ctx, record))
	}
	s.Require().NoError(s.store.Create(s.ctx, models.NewEnrollment(id.AccountID(uuid.New()), id.CourseKey(uuid.New()), base)))

	roster, err := s.store.ListByCourse(s.ctx, courseKey)
	s.Require().NoError(err)
	s.Require().Len(roster, 3)
	for i := 1; i < len(roster); i++ {
		s.False(roster[i].EnrolledAt.Before(roster[i-1].EnrolledAt))
	}
}

func (s *LedgerStoreSuite) TestExecute() {
	s.Run("marks completion in place", func() {
		record := models.NewEnrollment(id.AccountID(uuid.New()), id.CourseKey(uuid.New()), time.Now().UTC())
		s.Require().NoError(s.store.Create(s.ctx, record))

		updated, err := s.store.Execute(s.ctx, record.Key(), nil, func(r *models.Enrollment) {
			r.MarkCompleted(time.Now().UTC())
		})
		s.Require().NoError(err)
		s.True(updated.Completed)

		found, err := s.store.Find(s.ctx, record.Key())
		s.Require().NoError(err)
		s.True(found.Completed)
	})

	s.Run("unknown key returns ErrNotFound", func() {
		key := models.EnrollmentKey{CourseKey: id.CourseKey(uuid.New()), StudentID: id.AccountID(uuid.New())}
		_, err := s.store.Execute(s.ctx, key, nil, nil)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
