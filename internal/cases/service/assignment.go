package service

import (
	"context"
	"time"

	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/requestcontext"
)

// AssignVolunteer binds volunteerID to a pending case, replacing any earlier
// volunteer and verdict. The volunteer's active flag is checked only here.
func (s *Service) AssignVolunteer(ctx context.Context, actor models.Actor, caseID id.CaseID, volunteerID id.UserID) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "AssignVolunteer", caseID)
	defer func() { endSpan(span, err) }()
	defer s.metrics.ObserveOperation("assign", time.Now())

	if err := requireRole(actor, identity.RoleAdmin, "assign volunteers"); err != nil {
		return nil, err
	}
	if err := s.requireActiveVolunteer(ctx, volunteerID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).UTC()
	updated, err := s.cases.Execute(ctx, caseID,
		func(c *models.Case) error {
			return c.CanAssign()
		},
		func(c *models.Case) bool {
			c.ApplyAssignment(volunteerID, now)
			return true
		},
	)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to assign volunteer")
	}

	s.logAudit(ctx, audit.EventVolunteerAssigned, updated, actor.ID, volunteerID, "")
	s.metrics.IncrementAssigned()
	s.metrics.IncrementTransition(string(updated.State()))
	return updated, nil
}

func (s *Service) requireActiveVolunteer(ctx context.Context, volunteerID id.UserID) error {
	if volunteerID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "volunteer id is required")
	}
	volunteer, err := s.identities.Lookup(ctx, volunteerID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "volunteer not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up volunteer")
	}
	if volunteer.Role != identity.RoleVolunteer {
		return dErrors.New(dErrors.CodeValidation, "user is not a volunteer")
	}
	if !volunteer.Active {
		return dErrors.New(dErrors.CodeValidation, "volunteer is deactivated")
	}
	return nil
}

// ListCasesForVolunteer returns every case currently or previously assigned
// to volunteerID, newest first. Admins may list any volunteer; a volunteer
// only their own.
func (s *Service) ListCasesForVolunteer(ctx context.Context, actor models.Actor, volunteerID id.UserID) ([]*models.Case, error) {
	if !actor.Is(identity.RoleAdmin) && !(actor.Is(identity.RoleVolunteer) && actor.ID == volunteerID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not allowed to list another volunteer's cases")
	}
	cases, err := s.cases.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list volunteer cases")
	}
	return cases, nil
}
