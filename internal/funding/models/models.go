package models

import (
	"time"

	"github.com/shopspring/decimal"

	casemodels "medhope/internal/cases/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationPending, DonationCompleted, DonationFailed:
		return true
	}
	return false
}

// Donation is a single contribution towards one case. Only completed
// donations count towards the case total, and a completed donation is never
// modified.
type Donation struct {
	ID               id.DonationID
	CaseID           id.CaseID
	DonorID          id.UserID
	Amount           decimal.Decimal
	IsZakat          bool
	Status           DonationStatus
	PaymentReference string
	FailureReason    string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

func (d *Donation) IsCompleted() bool {
	return d.Status == DonationCompleted
}

func NewCompletedDonation(caseID id.CaseID, donorID id.UserID, amount decimal.Decimal, isZakat bool, reference string, now time.Time) (*Donation, error) {
	if caseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donation requires a case")
	}
	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donation requires a donor")
	}
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donation amount must be positive")
	}
	return &Donation{
		ID:               id.NewDonationID(),
		CaseID:           caseID,
		DonorID:          donorID,
		Amount:           amount,
		IsZakat:          isZakat,
		Status:           DonationCompleted,
		PaymentReference: reference,
		CreatedAt:        now,
		CompletedAt:      &now,
	}, nil
}

// NewFailedDonation records a declined payment attempt.
func NewFailedDonation(caseID id.CaseID, donorID id.UserID, amount decimal.Decimal, isZakat bool, reason string, now time.Time) *Donation {
	return &Donation{
		ID:            id.NewDonationID(),
		CaseID:        caseID,
		DonorID:       donorID,
		Amount:        amount,
		IsZakat:       isZakat,
		Status:        DonationFailed,
		FailureReason: reason,
		CreatedAt:     now,
	}
}

// FundingStatus summarises a case's progress towards its target. Remaining
// never goes below zero; an overfunded case keeps its full total.
type FundingStatus struct {
	CaseID         id.CaseID
	FundingTarget  decimal.Decimal
	TotalDonations decimal.Decimal
	Remaining      decimal.Decimal
	ZakatEligible  bool
	Overfunded     bool
}

// DonationRequest is the ledger input for a donation whose payment has
// already been captured.
type DonationRequest struct {
	CaseID           id.CaseID       `json:"-"`
	Amount           decimal.Decimal `json:"amount"`
	IsZakat          bool            `json:"is_zakat"`
	PaymentReference string          `json:"payment_reference"`
}

func (r *DonationRequest) Validate() error {
	if r.CaseID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "case id is required")
	}
	if !r.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	if !r.Amount.Equal(r.Amount.Round(2)) {
		return dErrors.New(dErrors.CodeValidation, "amount must have at most two decimal places")
	}
	if r.Amount.GreaterThan(casemodels.MaxAmount) {
		return dErrors.New(dErrors.CodeValidation, "amount must not exceed "+casemodels.MaxAmount.StringFixed(2))
	}
	if len(r.PaymentReference) > 128 {
		return dErrors.New(dErrors.CodeValidation, "payment reference must be at most 128 characters")
	}
	return nil
}
