package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	contract "academy/contracts/enrollment"
	"academy/internal/registry/models"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/platform/httputil"
	"academy/pkg/requestcontext"
)

// Service defines the registry operations the handler exposes.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Initialize(ctx context.Context, name string, adminID id.AccountID, fee uint64) (*models.Institution, error)
	Get(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the admin-only registry routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/institutions", h.HandleInitialize)
}

// Register mounts the registry read routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/institutions/{id}", h.HandleGet)
}

// HandleInitialize creates the institution registry record. The
// authenticated admin becomes the controlling administrator.
func (h *Handler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[contract.InitializeInstitutionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	inst, err := h.service.Initialize(ctx, req.Name, requestcontext.ActorID(ctx), req.EnrollmentFee)
	if err != nil {
		h.logger.ErrorContext(ctx, "initialize institution failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toInstitutionResponse(inst))
}

// HandleGet returns the institution record.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	institutionID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid institution id"))
		return
	}

	inst, err := h.service.Get(ctx, institutionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get institution failed", "error", err, "request_id", requestID, "institution_id", institutionID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toInstitutionResponse(inst))
}

func toInstitutionResponse(inst *models.Institution) *contract.InstitutionResponse {
	return &contract.InstitutionResponse{
		ID:             inst.ID.String(),
		Name:           inst.Name,
		AdminID:        inst.AdminID.String(),
		CredentialMint: inst.CredentialMint.String(),
		CourseCount:    inst.CourseCount,
		StudentCount:   inst.StudentCount,
		EnrollmentFee:  inst.EnrollmentFee,
		CreatedAt:      inst.CreatedAt,
	}
}
