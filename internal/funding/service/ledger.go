package service

import (
	"context"
	"errors"

	casemodels "medhope/internal/cases/models"
	"medhope/internal/funding/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/platform/sentinel"
	"medhope/pkg/requestcontext"
)

// RecordDonation records a completed donation whose payment has been
// captured and credits the case in the same transaction. A payment reference
// that is already recorded returns the existing donation without a second
// credit.
func (s *Service) RecordDonation(ctx context.Context, donorID id.UserID, req models.DonationRequest) (_ *models.Donation, err error) {
	ctx, span := s.startSpan(ctx, "RecordDonation", req.CaseID, req.IsZakat)
	defer func() { endSpan(span, err) }()

	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "donor is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).UTC()
	var (
		recorded *models.Donation
		credited *casemodels.Case
		replayed bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		recorded, credited, replayed = nil, nil, false
		if req.PaymentReference != "" {
			existing, err := s.existingDonation(txCtx, donorID, req)
			if err != nil {
				return err
			}
			if existing != nil {
				recorded, replayed = existing, true
				return nil
			}
		}

		d, err := models.NewCompletedDonation(req.CaseID, donorID, req.Amount, req.IsZakat, req.PaymentReference, now)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		c, err := s.cases.CreditDonation(txCtx, req.CaseID, req.Amount, req.IsZakat)
		if err != nil {
			return wrapLedgerErr(err, "failed to credit case")
		}
		if err := s.donations.Create(txCtx, d); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return err
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record donation")
		}
		recorded, credited = d, c
		return nil
	})
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		// A concurrent request recorded the same reference first and our
		// credit rolled back with the transaction.
		existing, ferr := s.existingDonation(ctx, donorID, req)
		if ferr != nil {
			return nil, ferr
		}
		if existing == nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record donation")
		}
		recorded, replayed, err = existing, true, nil
	}
	if err != nil {
		return nil, err
	}

	if replayed {
		s.metrics.IncrementDuplicate()
		s.logger.InfoContext(ctx, "donation already recorded for payment reference",
			"case_id", recorded.CaseID.String(),
			"donation_id", recorded.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return recorded, nil
	}

	s.logAudit(ctx, audit.EventDonationRecorded, recorded, credited.CaseNumber)
	s.metrics.RecordDonation(recorded.Amount, recorded.IsZakat)
	return recorded, nil
}

// existingDonation returns the completed donation already recorded for the
// request's payment reference, or nil. A reference recorded for another
// donor, case, amount or zakat flag is a conflict.
func (s *Service) existingDonation(ctx context.Context, donorID id.UserID, req models.DonationRequest) (*models.Donation, error) {
	existing, err := s.donations.FindByReference(ctx, req.PaymentReference)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up payment reference")
	}
	if existing.DonorID != donorID || existing.CaseID != req.CaseID || !existing.Amount.Equal(req.Amount) || existing.IsZakat != req.IsZakat {
		return nil, dErrors.New(dErrors.CodeConflict, "payment reference already recorded for a different donation")
	}
	return existing, nil
}

// FundingStatus reports progress towards the case's target.
func (s *Service) FundingStatus(ctx context.Context, caseID id.CaseID) (*models.FundingStatus, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, wrapLedgerErr(err, "failed to load case")
	}
	return &models.FundingStatus{
		CaseID:         c.ID,
		FundingTarget:  c.FundingTarget,
		TotalDonations: c.TotalDonations,
		Remaining:      c.Remaining(),
		ZakatEligible:  c.ZakatEligible,
		Overfunded:     c.TotalDonations.GreaterThan(c.FundingTarget),
	}, nil
}
