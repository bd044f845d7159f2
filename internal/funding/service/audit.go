package service

import (
	"context"

	"medhope/internal/funding/models"
	"medhope/pkg/platform/audit"
	"medhope/pkg/requestcontext"
)

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, d *models.Donation, caseNumber string) {
	requestID := requestcontext.RequestID(ctx)
	amount := d.Amount.StringFixed(2)
	s.logger.InfoContext(ctx, string(event),
		"event", string(event),
		"log_type", "audit",
		"case_id", d.CaseID.String(),
		"donation_id", d.ID.String(),
		"amount", amount,
		"is_zakat", d.IsZakat,
		"request_id", requestID,
	)
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx).UTC(),
		Action:    string(event),
		CaseID:    d.CaseID,
		Subject:   caseNumber,
		ActorID:   d.DonorID,
		TargetID:  d.DonorID,
		Reason:    d.FailureReason,
		Amount:    amount,
		RequestID: requestID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish audit event",
			"event", string(event),
			"case_id", d.CaseID.String(),
			"error", err,
		)
	}
}
