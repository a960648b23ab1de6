//go:build integration

package enrollment_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"academy/internal/ledger/models"
	"academy/internal/ledger/store/enrollment"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	"academy/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *enrollment.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = enrollment.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *PostgresStoreSuite) seedCourse() id.CourseKey {
	ctx := context.Background()
	institutionID, _, _ := s.postgres.CreateTestInstitution(ctx, s.T(), 100)
	return s.postgres.CreateTestCourse(ctx, s.T(), institutionID, 0, 500)
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	courseKey := s.seedCourse()
	record := models.NewEnrollment(id.AccountID(uuid.New()), courseKey, time.Now().UTC().Truncate(time.Microsecond))

	s.Require().NoError(s.store.Create(ctx, record))

	found, err := s.store.Find(ctx, record.Key())
	s.Require().NoError(err)
	s.Equal(record.StudentID, found.StudentID)
	s.False(found.Completed)

	exists, err := s.store.Exists(ctx, record.Key())
	s.Require().NoError(err)
	s.True(exists)
}

// TestConcurrentDuplicateCommit verifies the primary key backstop: many
// racing commits for the same pair yield exactly one record.
func (s *PostgresStoreSuite) TestConcurrentDuplicateCommit() {
	ctx := context.Background()
	courseKey := s.seedCourse()
	studentID := id.AccountID(uuid.New())
	const goroutines = 25

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			record := models.NewEnrollment(studentID, courseKey, time.Now().UTC())
			err := s.store.Create(ctx, record)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrAlreadyUsed) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one commit should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")
}

func (s *PostgresStoreSuite) TestListByCourse() {
	ctx := context.Background()
	courseKey := s.seedCourse()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := 2; i >= 0; i-- {
		record := models.NewEnrollment(id.AccountID(uuid.New()), courseKey, base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(s.store.Create(ctx, record))
	}

	roster, err := s.store.ListByCourse(ctx, courseKey)
	s.Require().NoError(err)
	s.Require().Len(roster, 3)
	for i := 1; i < len(roster); i++ {
		s.False(roster[i].EnrolledAt.Before(roster[i-1].EnrolledAt))
	}
}

func (s *PostgresStoreSuite) TestExecuteCompletion() {
	ctx := context.Background()
	courseKey := s.seedCourse()
	record := models.NewEnrollment(id.AccountID(uuid.New()), courseKey, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.Create(ctx, record))

	updated, err := s.store.Execute(ctx, record.Key(), nil, func(r *models.Enrollment) {
		r.MarkCompleted(time.Now().UTC().Truncate(time.Microsecond))
	})
	s.Require().NoError(err)
	s.True(updated.Completed)

	found, err := s.store.Find(ctx, record.Key())
	s.Require().NoError(err)
	s.True(found.Completed)
	s.False(found.CompletedAt.IsZero())
}

func (s *PostgresStoreSuite) TestNotFound() {
	ctx := context.Background()
	key := models.EnrollmentKey{CourseKey: id.CourseKey(uuid.New()), StudentID: id.AccountID(uuid.New())}

	_, err := s.store.Find(ctx, key)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Execute(ctx, key, nil, nil)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
