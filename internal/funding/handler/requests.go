package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"medhope/internal/funding/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

// RecordDonationRequest is the body of POST /cases/{caseID}/donations. An
// admin records a payment captured outside the service on the donor's
// behalf, so both the donor and the processor reference are required.
type RecordDonationRequest struct {
	DonorID          string          `json:"donor_id"`
	Amount           decimal.Decimal `json:"amount"`
	IsZakat          bool            `json:"is_zakat"`
	PaymentReference string          `json:"payment_reference"`
}

func (r RecordDonationRequest) Parse(caseID id.CaseID) (id.UserID, models.DonationRequest, error) {
	raw := strings.TrimSpace(r.DonorID)
	if raw == "" {
		return id.UserID{}, models.DonationRequest{}, dErrors.New(dErrors.CodeValidation, "donor_id is required")
	}
	donorID, err := id.ParseUserID(raw)
	if err != nil {
		return id.UserID{}, models.DonationRequest{}, dErrors.New(dErrors.CodeValidation, "donor_id must be a valid UUID")
	}
	reference := strings.TrimSpace(r.PaymentReference)
	if reference == "" {
		return id.UserID{}, models.DonationRequest{}, dErrors.New(dErrors.CodeValidation, "payment_reference is required")
	}
	return donorID, models.DonationRequest{
		CaseID:           caseID,
		Amount:           r.Amount,
		IsZakat:          r.IsZakat,
		PaymentReference: reference,
	}, nil
}
