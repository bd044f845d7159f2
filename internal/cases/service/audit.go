package service

import (
	"context"

	"medhope/internal/cases/models"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/audit"
	"medhope/pkg/requestcontext"
)

// logAudit writes the audit line and forwards the event to the publisher.
// Publishing failures are logged, never returned: the transition already
// committed.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, c *models.Case, actor id.UserID, target id.UserID, reason string) {
	requestID := requestcontext.RequestID(ctx)
	s.logger.InfoContext(ctx, string(event),
		"event", string(event),
		"log_type", "audit",
		"case_id", c.ID.String(),
		"case_number", c.CaseNumber,
		"actor_id", actor.String(),
		"request_id", requestID,
	)
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx).UTC(),
		Action:    string(event),
		CaseID:    c.ID,
		Subject:   c.CaseNumber,
		ActorID:   actor,
		TargetID:  target,
		Reason:    reason,
		RequestID: requestID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish audit event",
			"event", string(event),
			"case_id", c.ID.String(),
			"error", err,
		)
	}
}
