package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/platform/sentinel"
	"medhope/pkg/requestcontext"
)

// Case numbers can collide when an allocator restarts behind the primary
// store; a collision burns the number and retries.
const maxCaseNumberAttempts = 3

// SubmitCase creates a pending, unassigned case. Priority is classified from
// the location once, here.
func (s *Service) SubmitCase(ctx context.Context, actor models.Actor, req models.SubmitCaseRequest) (_ *models.Case, err error) {
	ctx, span := s.startSpan(ctx, "SubmitCase", id.CaseID{})
	defer func() { endSpan(span, err) }()
	start := time.Now()
	defer s.metrics.ObserveOperation("submit", start)

	if err := requireRole(actor, identity.RoleSubmitter, "submit cases"); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).UTC()
	prio := s.classifier.Classify(req.District, req.Area)

	var created *models.Case
	for attempt := 1; attempt <= maxCaseNumberAttempts; attempt++ {
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			seq, err := s.sequence.Next(txCtx, now.Year())
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate case number")
			}
			number, err := models.FormatCaseNumber(now.Year(), seq)
			if err != nil {
				s.logger.ErrorContext(txCtx, "case number sequence exhausted",
					"year", now.Year(),
					"sequence", seq,
					"request_id", requestcontext.RequestID(txCtx),
				)
				return dErrors.Wrap(err, dErrors.CodeInternal, "case numbers for this year are exhausted")
			}
			c := &models.Case{
				ID:             id.NewCaseID(),
				CaseNumber:     number,
				SubmitterID:    actor.ID,
				Applicant:      req.Applicant,
				Disease:        req.Disease,
				DocumentRefs:   req.DocumentRefs,
				District:       req.District,
				Area:           req.Area,
				Priority:       prio,
				Status:         models.StatusPending,
				FundingTarget:  req.FundingTarget,
				ZakatEligible:  req.ZakatEligible,
				TotalDonations: decimal.Zero,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := s.cases.Create(txCtx, c); err != nil {
				if errors.Is(err, sentinel.ErrAlreadyUsed) {
					return err
				}
				return wrapCaseErr(err, "failed to create case")
			}
			created = c
			return nil
		})
		if !errors.Is(err, sentinel.ErrAlreadyUsed) {
			break
		}
		s.logger.WarnContext(ctx, "case number collision, retrying",
			"attempt", attempt,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "could not allocate a unique case number")
		}
		return nil, err
	}

	s.logAudit(ctx, audit.EventCaseSubmitted, created, actor.ID, id.UserID{}, "")
	s.metrics.IncrementSubmitted(created.Priority.String())
	return created, nil
}
