package service

import (
	"context"
	"errors"

	"academy/internal/engine/tracer"
	"academy/internal/events"
	ledgermodels "academy/internal/ledger/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/requestcontext"
)

// CompleteEnrollment marks a ledger record completed and issues the student
// one unit of the course's completion credential. Only the institution's
// admin may mark completion, and a record is completed at most once.
func (e *Engine) CompleteEnrollment(ctx context.Context, courseKey id.CourseKey, studentID, actorID id.AccountID) (record *ledgermodels.Enrollment, err error) {
	ctx, span := e.tracer.Start(ctx, tracer.SpanComplete,
		tracer.String(tracer.AttrCourseKey, courseKey.String()),
		tracer.String(tracer.AttrStudentID, studentID.String()),
	)
	defer func() { span.End(err) }()

	if courseKey.IsNil() || studentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "course key and student ID are required")
	}

	course, err := e.loadCourse(ctx, courseKey)
	if err != nil {
		return nil, err
	}
	inst, err := e.loadInstitution(ctx, course.InstitutionID)
	if err != nil {
		return nil, err
	}
	if !inst.IsAdmin(actorID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the institution admin can mark completion")
	}

	key := ledgermodels.EnrollmentKey{CourseKey: courseKey, StudentID: studentID}
	record, err = e.ledger.Execute(ctx, key,
		func(rec *ledgermodels.Enrollment) error {
			if rec.Completed {
				return dErrors.New(dErrors.CodeConflict, "enrollment is already completed")
			}
			return nil
		},
		func(rec *ledgermodels.Enrollment) {
			rec.MarkCompleted(requestcontext.Now(ctx))
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "enrollment not found")
		}
		var dErr *dErrors.Error
		if errors.As(err, &dErr) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark completion")
	}

	// The completion credential is best-effort: the ledger mark is the
	// durable fact, a failed issuance is retried out of band.
	if mintErr := e.credentials.MintOne(ctx, course.Mint, actorID, studentID); mintErr != nil {
		if e.logger != nil {
			e.logger.ErrorContext(ctx, "completion credential issuance failed",
				"error", mintErr,
				"course_key", courseKey,
				"student_id", studentID,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	} else {
		span.AddEvent(tracer.EventCredentialMinted)
	}

	e.emit(ctx, events.Event{
		Action:        events.ActionEnrollmentCompleted,
		InstitutionID: course.InstitutionID,
		ActorID:       actorID,
		CourseKey:     courseKey.String(),
		CourseID:      course.ID.String(),
	})
	e.metrics.IncrementCompletions()

	return record, nil
}
