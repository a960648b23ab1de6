package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	contract "academy/contracts/enrollment"
	"academy/internal/catalog/models"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/platform/httputil"
	"academy/pkg/requestcontext"
)

// Service defines the catalog operations the handler exposes.
type Service interface {
	CreateCourse(ctx context.Context, institutionID id.InstitutionID, actorID id.AccountID, data models.CourseData) (*models.Course, error)
	GetCourse(ctx context.Context, key id.CourseKey) (*models.Course, error)
	ListCourses(ctx context.Context, institutionID id.InstitutionID) ([]*models.Course, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the admin-only catalog routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/institutions/{id}/courses", h.HandleCreate)
}

// Register mounts the catalog read routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/institutions/{id}/courses", h.HandleList)
	r.Get("/institutions/{id}/courses/{key}", h.HandleGet)
}

// HandleCreate registers a course. The authenticated actor must be the
// institution's admin.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	institutionID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid institution id"))
		return
	}

	req, ok := httputil.DecodeJSON[contract.CourseData](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	course, err := h.service.CreateCourse(ctx, institutionID, requestcontext.ActorID(ctx), models.CourseData{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TuitionFee:  req.TuitionFee,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create course failed", "error", err, "request_id", requestID, "institution_id", institutionID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toCourseResponse(course))
}

// HandleGet returns one catalog entry.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	key, err := id.ParseCourseKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid course key"))
		return
	}

	course, err := h.service.GetCourse(ctx, key)
	if err != nil {
		h.logger.ErrorContext(ctx, "get course failed", "error", err, "request_id", requestID, "course_key", key)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCourseResponse(course))
}

// HandleList returns the institution's catalog.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	institutionID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid institution id"))
		return
	}

	courses, err := h.service.ListCourses(ctx, institutionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list courses failed", "error", err, "request_id", requestID, "institution_id", institutionID)
		httputil.WriteError(w, err)
		return
	}

	out := make([]*contract.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseResponse(course))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func toCourseResponse(course *models.Course) *contract.CourseResponse {
	return &contract.CourseResponse{
		Key:             course.Key.String(),
		ID:              uint64(course.ID),
		InstitutionID:   course.InstitutionID.String(),
		Name:            course.Name,
		Description:     course.Description,
		StartDate:       course.StartDate,
		EndDate:         course.EndDate,
		TuitionFee:      course.TuitionFee,
		EnrollmentCount: course.EnrollmentCount,
		Capacity:        course.Capacity,
		Mint:            course.Mint.String(),
		CreatedAt:       course.CreatedAt,
	}
}
