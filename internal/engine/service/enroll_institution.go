package service

import (
	"context"
	"errors"
	"time"

	"academy/internal/engine/tracer"
	"academy/internal/events"
	registrymodels "academy/internal/registry/models"
	"academy/internal/sentinel"
	id "academy/pkg/domain"
	dErrors "academy/pkg/domain-errors"
	"academy/pkg/requestcontext"
)

// EnrollInInstitution pays the institution's enrollment fee and issues the
// student one unit of the institution-wide credential token.
//
// Precondition order is fixed; each failure surfaces its specific code and
// nothing after a failed check runs. Exactly the fee is charged even when
// the offered payment exceeds it. Funds move before the student counter
// advances.
func (e *Engine) EnrollInInstitution(ctx context.Context, institutionID id.InstitutionID, studentID, adminID id.AccountID, payment uint64) (err error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, tracer.SpanEnrollInstitution,
		tracer.String(tracer.AttrInstitutionID, institutionID.String()),
		tracer.String(tracer.AttrStudentID, studentID.String()),
	)
	defer func() {
		span.End(err)
		e.metrics.ObserveEnrollLatency(stageInstitution, time.Since(start))
	}()

	if institutionID.IsNil() || studentID.IsNil() || adminID.IsNil() {
		return e.reject(stageInstitution, span, dErrors.New(dErrors.CodeBadRequest, "institution, student and admin IDs are required"))
	}

	inst, err := e.loadInstitution(ctx, institutionID)
	if err != nil {
		return e.reject(stageInstitution, span, err)
	}

	if !inst.IsAdmin(adminID) {
		return e.reject(stageInstitution, span, dErrors.New(dErrors.CodeForbidden, "admin does not match institution record"))
	}
	if payment < inst.EnrollmentFee {
		return e.reject(stageInstitution, span, dErrors.New(dErrors.CodeInsufficientSchoolFee, "offered payment is below the enrollment fee"))
	}

	balance, err := e.treasury.Balance(ctx, studentID)
	if err != nil {
		return e.reject(stageInstitution, span, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read student balance"))
	}
	if balance < payment {
		return e.reject(stageInstitution, span, dErrors.New(dErrors.CodeInsufficientBalance, "student balance is below the offered payment"))
	}

	authority, err := e.credentials.MintAuthority(ctx, inst.CredentialMint)
	if err != nil {
		return e.reject(stageInstitution, span, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read credential mint authority"))
	}
	if authority != adminID {
		return e.reject(stageInstitution, span, dErrors.New(dErrors.CodeInvalidMintAuthority, "credential mint authority does not match admin"))
	}

	// Exactly the fee, never the full offered payment.
	if err := e.treasury.Transfer(ctx, studentID, adminID, inst.EnrollmentFee); err != nil {
		if errors.Is(err, sentinel.ErrInsufficientFunds) {
			return e.reject(stageInstitution, span, dErrors.New(dErrors.CodeInsufficientBalance, "student balance is below the enrollment fee"))
		}
		return e.reject(stageInstitution, span, dErrors.Wrap(err, dErrors.CodeUnavailable, "enrollment fee transfer failed"))
	}
	span.SetAttributes(tracer.Int64(tracer.AttrAmount, int64(inst.EnrollmentFee)))

	if err := e.credentials.MintOne(ctx, inst.CredentialMint, adminID, studentID); err != nil {
		return e.reject(stageInstitution, span, dErrors.Wrap(err, dErrors.CodeUnavailable, "credential issuance failed"))
	}
	span.AddEvent(tracer.EventCredentialMinted)

	if _, err := e.institutions.Execute(ctx, institutionID, nil, func(i *registrymodels.Institution) {
		i.ApplyStudentEnrolled(requestcontext.Now(ctx))
	}); err != nil {
		return e.reject(stageInstitution, span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record student enrollment"))
	}

	e.emit(ctx, events.Event{
		Action:        events.ActionInstitutionEnrolled,
		InstitutionID: institutionID,
		ActorID:       studentID,
		Amount:        inst.EnrollmentFee,
	})
	e.metrics.IncrementEnrollments(stageInstitution)

	return nil
}
