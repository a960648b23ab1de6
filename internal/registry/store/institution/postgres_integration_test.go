//go:build integration

package institution_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"academy/internal/registry/models"
	"academy/internal/registry/store/institution"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	"academy/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *institution.PostgresStore
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
	s.store = institution.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func newTestInstitution(s *PostgresStoreSuite) *models.Institution {
	inst, err := models.NewInstitution(id.InstitutionID(uuid.New()), "Test University "+uuid.NewString(), id.AccountID(uuid.New()), id.MintID(uuid.New()), 100, time.Now().UTC())
	s.Require().NoError(err)
	return inst
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	inst := newTestInstitution(s)

	s.Require().NoError(s.store.Create(ctx, inst))

	found, err := s.store.FindByID(ctx, inst.ID)
	s.Require().NoError(err)
	s.Equal(inst.Name, found.Name)
	s.Equal(inst.AdminID, found.AdminID)
	s.Equal(inst.CredentialMint, found.CredentialMint)
	s.Equal(uint64(100), found.EnrollmentFee)
}

func (s *PostgresStoreSuite) TestDuplicateCreate() {
	ctx := context.Background()
	inst := newTestInstitution(s)

	s.Require().NoError(s.store.Create(ctx, inst))
	s.ErrorIs(s.store.Create(ctx, inst), sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, id.InstitutionID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Execute(ctx, id.InstitutionID(uuid.New()), nil, nil)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentCounterAdvance verifies the FOR UPDATE row lock serializes
// counter advances: every increment lands.
func (s *PostgresStoreSuite) TestConcurrentCounterAdvance() {
	ctx := context.Background()
	inst := newTestInstitution(s)
	s.Require().NoError(s.store.Create(ctx, inst))

	const goroutines = 25
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(ctx, inst.ID, nil, func(i *models.Institution) {
				i.ApplyCourseCreated(time.Now().UTC())
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	found, err := s.store.FindByID(ctx, inst.ID)
	s.Require().NoError(err)
	s.Equal(uint64(goroutines), found.CourseCount)
}

// TestExecuteValidateRollsBack verifies a validate failure leaves the row
// unchanged.
func (s *PostgresStoreSuite) TestExecuteValidateRollsBack() {
	ctx := context.Background()
	inst := newTestInstitution(s)
	s.Require().NoError(s.store.Create(ctx, inst))

	sentinelErr := sentinel.ErrInvalidState
	_, err := s.store.Execute(ctx, inst.ID,
		func(*models.Institution) error { return sentinelErr },
		func(i *models.Institution) { i.ApplyStudentEnrolled(time.Now().UTC()) },
	)
	s.ErrorIs(err, sentinelErr)

	found, err := s.store.FindByID(ctx, inst.ID)
	s.Require().NoError(err)
	s.Equal(uint64(0), found.StudentCount)
}
