package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"medhope/internal/funding/models"
)

type DonationResponse struct {
	ID               string          `json:"id"`
	CaseID           string          `json:"case_id"`
	DonorID          string          `json:"donor_id"`
	Amount           decimal.Decimal `json:"amount"`
	IsZakat          bool            `json:"is_zakat"`
	Status           string          `json:"status"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
}

type DonationListResponse struct {
	Donations      []*DonationResponse `json:"donations"`
	Count          int                 `json:"count"`
	HasContributed *bool               `json:"has_contributed,omitempty"`
}

type FundingStatusResponse struct {
	CaseID         string          `json:"case_id"`
	FundingTarget  decimal.Decimal `json:"funding_target"`
	TotalDonations decimal.Decimal `json:"total_donations"`
	Remaining      decimal.Decimal `json:"remaining"`
	ZakatEligible  bool            `json:"zakat_eligible"`
	Overfunded     bool            `json:"overfunded"`
}

func FromDonation(d *models.Donation) *DonationResponse {
	return &DonationResponse{
		ID:               d.ID.String(),
		CaseID:           d.CaseID.String(),
		DonorID:          d.DonorID.String(),
		Amount:           d.Amount,
		IsZakat:          d.IsZakat,
		Status:           string(d.Status),
		PaymentReference: d.PaymentReference,
		FailureReason:    d.FailureReason,
		CreatedAt:        d.CreatedAt,
		CompletedAt:      d.CompletedAt,
	}
}

func FromDonations(donations []*models.Donation) *DonationListResponse {
	out := make([]*DonationResponse, len(donations))
	for i, d := range donations {
		out[i] = FromDonation(d)
	}
	return &DonationListResponse{Donations: out, Count: len(out)}
}

func FromFundingStatus(s *models.FundingStatus) *FundingStatusResponse {
	return &FundingStatusResponse{
		CaseID:         s.CaseID.String(),
		FundingTarget:  s.FundingTarget,
		TotalDonations: s.TotalDonations,
		Remaining:      s.Remaining,
		ZakatEligible:  s.ZakatEligible,
		Overfunded:     s.Overfunded,
	}
}
