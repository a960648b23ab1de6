package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"academy/internal/credential"
	"academy/internal/events"
	institutionstore "academy/internal/registry/store/institution"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
)

type RegistryServiceSuite struct {
	suite.Suite
	ctx         context.Context
	store       *institutionstore.InMemory
	credentials *credential.InMemory
	publisher   *events.InMemory
	service     *RegistryService
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = institutionstore.NewInMemory()
	s.credentials = credential.NewInMemory()
	s.publisher = events.NewInMemory()
	s.service = New(s.store, s.credentials, WithPublisher(s.publisher))
}

func (s *RegistryServiceSuite) TestInitialize() {
	s.Run("creates the record with the admin as mint authority", func() {
		adminID := id.AccountID(uuid.New())

		inst, err := s.service.Initialize(s.ctx, "Test University", adminID, 100)
		s.Require().NoError(err)
		s.Equal("Test University", inst.Name)
		s.Equal(adminID, inst.AdminID)
		s.Equal(uint64(100), inst.EnrollmentFee)
		s.False(inst.CredentialMint.IsNil())

		authority, err := s.credentials.MintAuthority(s.ctx, inst.CredentialMint)
		s.Require().NoError(err)
		s.Equal(adminID, authority)

		found, err := s.store.FindByID(s.ctx, inst.ID)
		s.Require().NoError(err)
		s.Equal(inst.ID, found.ID)
	})

	s.Run("emits an initialization event", func() {
		adminID := id.AccountID(uuid.New())

		inst, err := s.service.Initialize(s.ctx, "Event University", adminID, 100)
		s.Require().NoError(err)

		emitted := s.publisher.Events()
		s.Require().NotEmpty(emitted)
		last := emitted[len(emitted)-1]
		s.Equal(events.ActionInstitutionInitialized, last.Action)
		s.Equal(inst.ID, last.InstitutionID)
		s.Equal(adminID, last.ActorID)
	})

	s.Run("trims the name before validation", func() {
		inst, err := s.service.Initialize(s.ctx, "  Padded University  ", id.AccountID(uuid.New()), 100)
		s.Require().NoError(err)
		s.Equal("Padded University", inst.Name)
	})

	s.Run("nil admin is unauthorized", func() {
		_, err := s.service.Initialize(s.ctx, "Test University", id.AccountID{}, 100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("empty name fails validation", func() {
		_, err := s.service.Initialize(s.ctx, "   ", id.AccountID(uuid.New()), 100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("zero fee fails validation", func() {
		_, err := s.service.Initialize(s.ctx, "Test University", id.AccountID(uuid.New()), 0)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejected initializations create no mint", func() {
		mints := &countingMints{InMemory: s.credentials}
		svc := New(s.store, mints)

		_, err := svc.Initialize(s.ctx, "Test University", id.AccountID{}, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = svc.Initialize(s.ctx, "   ", id.AccountID(uuid.New()), 100)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = svc.Initialize(s.ctx, "Test University", id.AccountID(uuid.New()), 0)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		s.Equal(0, mints.calls)
	})
}

// countingMints wraps the credential service to observe CreateMint calls.
type countingMints struct {
	*credential.InMemory
	calls int
}

func (m *countingMints) CreateMint(ctx context.Context, authority id.AccountID) (id.MintID, error) {
	m.calls++
	return m.InMemory.CreateMint(ctx, authority)
}

func (s *RegistryServiceSuite) TestGet() {
	s.Run("returns the record", func() {
		inst, err := s.service.Initialize(s.ctx, "Test University", id.AccountID(uuid.New()), 100)
		s.Require().NoError(err)

		found, err := s.service.Get(s.ctx, inst.ID)
		s.Require().NoError(err)
		s.Equal(inst.ID, found.ID)
	})

	s.Run("unknown ID is not found", func() {
		_, err := s.service.Get(s.ctx, id.InstitutionID(uuid.New()))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("nil ID is a bad request", func() {
		_, err := s.service.Get(s.ctx, id.InstitutionID{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
