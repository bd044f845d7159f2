package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/audit"
	"medhope/pkg/requestcontext"
)

// VolunteerApprove records the assigned volunteer's approve verdict. The
// verdict is advisory; case status is unchanged.
func (s *Service) VolunteerApprove(ctx context.Context, actor models.Actor, caseID id.CaseID) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "VolunteerApprove", caseID)
	defer func() { endSpan(span, err) }()
	defer s.metrics.ObserveOperation("volunteer_approve", time.Now())

	if err := requireRole(actor, identity.RoleVolunteer, "record a volunteer verdict"); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx).UTC()
	updated, err := s.cases.Execute(ctx, caseID,
		func(c *models.Case) error {
			return c.CanRecordVerdict(actor.ID)
		},
		func(c *models.Case) bool {
			c.ApplyVolunteerApproval(now)
			return true
		},
	)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to record volunteer approval")
	}

	s.logAudit(ctx, audit.EventVolunteerApproved, updated, actor.ID, id.UserID{}, "")
	s.metrics.IncrementTransition(string(updated.State()))
	return updated, nil
}

// VolunteerReject records the assigned volunteer's reject verdict with at
// least one reason tag.
func (s *Service) VolunteerReject(ctx context.Context, actor models.Actor, caseID id.CaseID, rawReasons []string) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "VolunteerReject", caseID)
	defer func() { endSpan(span, err) }()
	defer s.metrics.ObserveOperation("volunteer_reject", time.Now())

	if err := requireRole(actor, identity.RoleVolunteer, "record a volunteer verdict"); err != nil {
		return nil, err
	}
	reasons, err := models.ParseRejectionReasons(rawReasons)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx).UTC()
	updated, err := s.cases.Execute(ctx, caseID,
		func(c *models.Case) error {
			return c.CanRecordVerdict(actor.ID)
		},
		func(c *models.Case) bool {
			c.ApplyVolunteerRejection(reasons, now)
			return true
		},
	)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to record volunteer rejection")
	}

	s.logAudit(ctx, audit.EventVolunteerRejected, updated, actor.ID, id.UserID{}, joinReasons(reasons))
	s.metrics.IncrementTransition(string(updated.State()))
	return updated, nil
}

// AdminApprove accepts the case whatever the volunteer said, or whether one
// was ever assigned. Approving an accepted case succeeds without change.
func (s *Service) AdminApprove(ctx context.Context, actor models.Actor, caseID id.CaseID) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "AdminApprove", caseID)
	defer func() { endSpan(span, err) }()
	defer s.metrics.ObserveOperation("admin_approve", time.Now())

	if err := requireRole(actor, identity.RoleAdmin, "approve cases"); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx).UTC()
	changed := false
	updated, err := s.cases.Execute(ctx, caseID,
		func(*models.Case) error { return nil },
		func(c *models.Case) bool {
			changed = c.ApplyAdminApproval(actor.ID, now)
			return changed
		},
	)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to approve case")
	}
	if changed {
		s.logAudit(ctx, audit.EventCaseAccepted, updated, actor.ID, id.UserID{}, "")
		s.metrics.IncrementTransition(string(updated.State()))
	}
	return updated, nil
}

// AdminReject rejects a case that has no admin decision yet. Rejecting a
// decided case succeeds without change.
func (s *Service) AdminReject(ctx context.Context, actor models.Actor, caseID id.CaseID) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "AdminReject", caseID)
	defer func() { endSpan(span, err) }()
	defer s.metrics.ObserveOperation("admin_reject", time.Now())

	if err := requireRole(actor, identity.RoleAdmin, "reject cases"); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx).UTC()
	changed := false
	updated, err := s.cases.Execute(ctx, caseID,
		func(*models.Case) error { return nil },
		func(c *models.Case) bool {
			changed = c.ApplyAdminRejection(actor.ID, now)
			return changed
		},
	)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to reject case")
	}
	if changed {
		s.logAudit(ctx, audit.EventCaseRejected, updated, actor.ID, id.UserID{}, "")
		s.metrics.IncrementTransition(string(updated.State()))
	}
	return updated, nil
}

// OverridePriority replaces the classified priority.
func (s *Service) OverridePriority(ctx context.Context, actor models.Actor, caseID id.CaseID, raw string) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "OverridePriority", caseID)
	defer func() { endSpan(span, err) }()

	if err := requireRole(actor, identity.RoleAdmin, "override priority"); err != nil {
		return nil, err
	}
	p, err := priority.Parse(raw)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx).UTC()
	var previous priority.Priority
	changed := false
	updated, err := s.cases.Execute(ctx, caseID,
		func(c *models.Case) error {
			previous = c.Priority
			return nil
		},
		func(c *models.Case) bool {
			changed = c.ApplyPriorityOverride(p, now)
			return changed
		},
	)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to override priority")
	}
	if changed {
		s.logAudit(ctx, audit.EventPriorityOverridden, updated, actor.ID, id.UserID{},
			fmt.Sprintf("%s -> %s", previous, p))
	}
	return updated, nil
}

func joinReasons(reasons []models.RejectionReason) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, "; ")
}
