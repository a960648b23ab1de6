package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	contract "academy/contracts/enrollment"
	ledgermodels "academy/internal/ledger/models"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/platform/httputil"
	"academy/pkg/requestcontext"
)

// Service defines the engine operations the handler exposes.
type Service interface {
	EnrollInInstitution(ctx context.Context, institutionID id.InstitutionID, studentID, adminID id.AccountID, payment uint64) error
	EnrollInCourse(ctx context.Context, institutionID id.InstitutionID, studentID, adminID id.AccountID, courseKey id.CourseKey, courseID id.CourseID) (*ledgermodels.Enrollment, error)
	CompleteEnrollment(ctx context.Context, courseKey id.CourseKey, studentID, actorID id.AccountID) (*ledgermodels.Enrollment, error)
	GetEnrollment(ctx context.Context, courseKey id.CourseKey, studentID id.AccountID) (*ledgermodels.Enrollment, error)
	ListRoster(ctx context.Context, courseKey id.CourseKey) ([]*ledgermodels.Enrollment, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterStudent mounts the student-facing enrollment routes.
func (h *Handler) RegisterStudent(r chi.Router) {
	r.Post("/institutions/{id}/enrollment", h.HandleEnrollInstitution)
	r.Post("/institutions/{id}/courses/{key}/enrollment", h.HandleEnrollCourse)
	r.Get("/enrollments/{course_key}/{student_id}", h.HandleGetEnrollment)
}

// RegisterAdmin mounts the admin-only ledger routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/enrollments/{course_key}/{student_id}/complete", h.HandleComplete)
	r.Get("/enrollments/{course_key}", h.HandleRoster)
}

// HandleEnrollInstitution pays the institution fee and claims the
// credential. The authenticated actor is the enrolling student.
func (h *Handler) HandleEnrollInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	institutionID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid institution id"))
		return
	}

	req, ok := httputil.DecodeJSON[contract.EnrollInstitutionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	adminID, err := id.ParseAccountID(req.AdminID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid admin id"))
		return
	}

	if err := h.service.EnrollInInstitution(ctx, institutionID, requestcontext.ActorID(ctx), adminID, req.PaymentAmount); err != nil {
		h.logger.ErrorContext(ctx, "institution enrollment failed", "error", err, "request_id", requestID, "institution_id", institutionID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleEnrollCourse commits a course enrollment. The authenticated actor is
// the enrolling student.
func (h *Handler) HandleEnrollCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	institutionID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid institution id"))
		return
	}
	courseKey, err := id.ParseCourseKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid course key"))
		return
	}

	req, ok := httputil.DecodeJSON[contract.EnrollCourseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	adminID, err := id.ParseAccountID(req.AdminID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid admin id"))
		return
	}

	record, err := h.service.EnrollInCourse(ctx, institutionID, requestcontext.ActorID(ctx), adminID, courseKey, id.CourseID(req.CourseID))
	if err != nil {
		h.logger.ErrorContext(ctx, "course enrollment failed", "error", err, "request_id", requestID, "course_key", courseKey)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toEnrollmentResponse(record))
}

// HandleComplete marks a ledger record completed.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	courseKey, studentID, ok := h.enrollmentParams(w, r)
	if !ok {
		return
	}

	record, err := h.service.CompleteEnrollment(ctx, courseKey, studentID, requestcontext.ActorID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "complete enrollment failed", "error", err, "request_id", requestID, "course_key", courseKey, "student_id", studentID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEnrollmentResponse(record))
}

// HandleGetEnrollment returns one ledger record.
func (h *Handler) HandleGetEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	courseKey, studentID, ok := h.enrollmentParams(w, r)
	if !ok {
		return
	}

	record, err := h.service.GetEnrollment(ctx, courseKey, studentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get enrollment failed", "error", err, "request_id", requestID, "course_key", courseKey, "student_id", studentID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEnrollmentResponse(record))
}

// HandleRoster returns the course's roster.
func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	courseKey, err := id.ParseCourseKey(chi.URLParam(r, "course_key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid course key"))
		return
	}

	records, err := h.service.ListRoster(ctx, courseKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "list roster failed", "error", err, "request_id", requestID, "course_key", courseKey)
		httputil.WriteError(w, err)
		return
	}

	out := make([]*contract.EnrollmentResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toEnrollmentResponse(record))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) enrollmentParams(w http.ResponseWriter, r *http.Request) (id.CourseKey, id.AccountID, bool) {
	courseKey, err := id.ParseCourseKey(chi.URLParam(r, "course_key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid course key"))
		return id.CourseKey{}, id.AccountID{}, false
	}
	studentID, err := id.ParseAccountID(chi.URLParam(r, "student_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid student id"))
		return id.CourseKey{}, id.AccountID{}, false
	}
	return courseKey, studentID, true
}

func toEnrollmentResponse(record *ledgermodels.Enrollment) *contract.EnrollmentResponse {
	return &contract.EnrollmentResponse{
		StudentID:  record.StudentID.String(),
		CourseKey:  record.CourseKey.String(),
		EnrolledAt: record.EnrolledAt,
		Completed:  record.Completed,
	}
}
