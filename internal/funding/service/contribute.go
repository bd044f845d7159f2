package service

import (
	"context"

	"medhope/internal/funding/models"
	"medhope/internal/funding/payment"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/requestcontext"
)

// Contribute captures the donor's payment and records the donation. A
// declined capture is recorded as a failed donation and returned without an
// error; the case total is untouched.
func (s *Service) Contribute(ctx context.Context, donorID id.UserID, req models.DonationRequest) (_ *models.Donation, err error) {
	ctx, span := s.startSpan(ctx, "Contribute", req.CaseID, req.IsZakat)
	defer func() { endSpan(span, err) }()

	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "donor is required")
	}
	req.PaymentReference = ""
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Refuse before charging the donor for a case that cannot take the money.
	c, err := s.cases.FindByID(ctx, req.CaseID)
	if err != nil {
		return nil, wrapLedgerErr(err, "failed to load case")
	}
	if err := c.CanCredit(req.Amount, req.IsZakat); err != nil {
		return nil, err
	}

	capture, err := s.payments.Capture(ctx, payment.Charge{
		CaseID:  req.CaseID,
		DonorID: donorID,
		Amount:  req.Amount,
		IsZakat: req.IsZakat,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "payment capture failed")
	}

	if !capture.Success {
		failed := models.NewFailedDonation(req.CaseID, donorID, req.Amount, req.IsZakat, capture.DeclineReason, requestcontext.Now(ctx).UTC())
		if err := s.donations.Create(ctx, failed); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record declined donation")
		}
		s.logAudit(ctx, audit.EventDonationFailed, failed, c.CaseNumber)
		s.metrics.IncrementFailed()
		return failed, nil
	}

	req.PaymentReference = capture.Reference
	d, err := s.RecordDonation(ctx, donorID, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "captured payment could not be recorded",
			"case_id", req.CaseID.String(),
			"payment_reference", capture.Reference,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, err
	}
	return d, nil
}
