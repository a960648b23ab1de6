package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	catalogmodels "academy/internal/catalog/models"
	"academy/internal/engine/tracer"
	"academy/internal/events"
	ledgermodels "academy/internal/ledger/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/requestcontext"
)

// EnrollInCourse pays the course tuition and commits the permanent ledger
// record for the (course, student) pair.
//
// The claimed catalog number must match the addressed course; the student
// must hold exactly one unit of the institution credential; tuition is
// charged in full. The ledger's refuse-to-overwrite create is the backstop
// against concurrent duplicate commits that pass the pre-check together.
func (e *Engine) EnrollInCourse(ctx context.Context, institutionID id.InstitutionID, studentID, adminID id.AccountID, courseKey id.CourseKey, courseID id.CourseID) (record *ledgermodels.Enrollment, err error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, tracer.SpanEnrollCourse,
		tracer.String(tracer.AttrInstitutionID, institutionID.String()),
		tracer.String(tracer.AttrStudentID, studentID.String()),
		tracer.String(tracer.AttrCourseKey, courseKey.String()),
		tracer.String(tracer.AttrCourseID, courseID.String()),
	)
	defer func() {
		span.End(err)
		e.metrics.ObserveEnrollLatency(stageCourse, time.Since(start))
	}()

	if institutionID.IsNil() || studentID.IsNil() || adminID.IsNil() || courseKey.IsNil() {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeBadRequest, "institution, student, admin and course identifiers are required"))
	}

	inst, err := e.loadInstitution(ctx, institutionID)
	if err != nil {
		return nil, e.reject(stageCourse, span, err)
	}
	course, err := e.loadCourse(ctx, courseKey)
	if err != nil {
		return nil, e.reject(stageCourse, span, err)
	}
	if course.InstitutionID != institutionID {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeNotFound, "course not found"))
	}
	if !inst.IsAdmin(adminID) {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeForbidden, "admin does not match institution record"))
	}

	if course.ID != courseID {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeInvalidCourseID, "claimed course number does not match the course record"))
	}
	if err := course.CanEnroll(); err != nil {
		return nil, e.reject(stageCourse, span, err)
	}

	// Both reads hit external collaborators; fetch concurrently, evaluate
	// in precondition order.
	var holding, balance uint64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := e.credentials.Holding(gctx, inst.CredentialMint, studentID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read credential holding")
		}
		holding = h
		return nil
	})
	g.Go(func() error {
		b, err := e.treasury.Balance(gctx, studentID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read student balance")
		}
		balance = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, e.reject(stageCourse, span, err)
	}

	if holding != 1 {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeInvalidStudentNFT, "student does not hold the institution credential"))
	}
	if balance < course.TuitionFee {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeInsufficientCourseFee, "student balance is below the tuition fee"))
	}

	key := ledgermodels.EnrollmentKey{CourseKey: courseKey, StudentID: studentID}
	exists, err := e.ledger.Exists(ctx, key)
	if err != nil {
		return nil, e.reject(stageCourse, span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing enrollment"))
	}
	if exists {
		return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeAlreadyEnrolled, "student is already enrolled in this course"))
	}

	if err := e.treasury.Transfer(ctx, studentID, adminID, course.TuitionFee); err != nil {
		if errors.Is(err, sentinel.ErrInsufficientFunds) {
			return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeInsufficientCourseFee, "student balance is below the tuition fee"))
		}
		return nil, e.reject(stageCourse, span, dErrors.Wrap(err, dErrors.CodeUnavailable, "tuition transfer failed"))
	}
	span.SetAttributes(tracer.Int64(tracer.AttrAmount, int64(course.TuitionFee)))

	record = ledgermodels.NewEnrollment(studentID, courseKey, requestcontext.Now(ctx))
	if err := e.ledger.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, e.reject(stageCourse, span, dErrors.New(dErrors.CodeAlreadyEnrolled, "student is already enrolled in this course"))
		}
		return nil, e.reject(stageCourse, span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record enrollment"))
	}
	span.AddEvent(tracer.EventLedgerCommitted)

	if _, err := e.courses.Execute(ctx, courseKey, nil, func(c *catalogmodels.Course) {
		c.ApplyEnrollment(requestcontext.Now(ctx))
	}); err != nil {
		return nil, e.reject(stageCourse, span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to advance enrollment counter"))
	}

	e.emit(ctx, events.Event{
		Action:        events.ActionCourseEnrolled,
		InstitutionID: institutionID,
		ActorID:       studentID,
		CourseKey:     courseKey.String(),
		CourseID:      courseID.String(),
		Amount:        course.TuitionFee,
	})
	e.metrics.IncrementEnrollments(stageCourse)

	return record, nil
}
