package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	contract "academy/contracts/enrollment"
	"academy/internal/credential"
	"academy/internal/registry/service"
	institutionstore "academy/internal/registry/store/institution"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/testutil"
)

func newRegistryRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(institutionstore.NewInMemory(), credential.NewInMemory())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.RegisterAdmin(r)
	h.Register(r)
	return r
}

func TestInitializeInstitution(t *testing.T) {
	router := newRegistryRouter(t)
	adminID := uuid.NewString()

	t.Run("creates the record for the authenticated admin", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/institutions", contract.InitializeInstitutionRequest{
			Name:          "Test University",
			EnrollmentFee: 100,
		})
		req = testutil.WithAdmin(req, adminID)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[contract.InstitutionResponse](t, rr)
		assert.Equal(t, "Test University", resp.Name)
		assert.Equal(t, adminID, resp.AdminID)
		assert.NotEmpty(t, resp.CredentialMint)
		assert.Equal(t, uint64(0), resp.CourseCount)
		assert.Equal(t, uint64(0), resp.StudentCount)
	})

	t.Run("zero fee fails validation", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/institutions", contract.InitializeInstitutionRequest{
			Name: "Test University",
		})
		req = testutil.WithAdmin(req, adminID)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	t.Run("unauthenticated request is unauthorized", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/institutions", contract.InitializeInstitutionRequest{
			Name:          "Test University",
			EnrollmentFee: 100,
		})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})
}

func TestGetInstitution(t *testing.T) {
	router := newRegistryRouter(t)
	adminID := uuid.NewString()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/institutions", contract.InitializeInstitutionRequest{
		Name:          "Test University",
		EnrollmentFee: 100,
	})
	req = testutil.WithAdmin(req, adminID)
	created := testutil.UnmarshalResponse[contract.InstitutionResponse](t, testutil.DoRequest(router, req))

	t.Run("returns the record", func(t *testing.T) {
		getReq := testutil.WithStudent(testutil.NewRequest(t, http.MethodGet, "/institutions/"+created.ID), uuid.NewString())
		rr := testutil.DoRequest(router, getReq)

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[contract.InstitutionResponse](t, rr)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		getReq := testutil.WithStudent(testutil.NewRequest(t, http.MethodGet, "/institutions/"+uuid.NewString()), uuid.NewString())
		rr := testutil.DoRequest(router, getReq)

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	t.Run("malformed id yields 400", func(t *testing.T) {
		getReq := testutil.WithStudent(testutil.NewRequest(t, http.MethodGet, "/institutions/not-a-uuid"), uuid.NewString())
		rr := testutil.DoRequest(router, getReq)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}
