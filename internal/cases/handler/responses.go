package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"medhope/internal/cases/models"
	"medhope/pkg/platform/audit"
)

// CaseResponse is the wire form of a case.
type CaseResponse struct {
	ID                        string           `json:"id"`
	CaseNumber                string           `json:"case_number"`
	SubmitterID               string           `json:"submitter_id"`
	Applicant                 models.Applicant `json:"applicant"`
	Disease                   models.Disease   `json:"disease"`
	DocumentRefs              []string         `json:"document_refs"`
	District                  string           `json:"district"`
	Area                      string           `json:"area"`
	Priority                  string           `json:"priority"`
	Status                    string           `json:"status"`
	State                     string           `json:"state"`
	VolunteerID               *string          `json:"volunteer_id"`
	VolunteerApprovalStatus   *string          `json:"volunteer_approval_status"`
	VolunteerRejectionReasons []string         `json:"volunteer_rejection_reasons"`
	FundingTarget             decimal.Decimal  `json:"funding_target"`
	TotalDonations            decimal.Decimal  `json:"total_donations"`
	Remaining                 decimal.Decimal  `json:"remaining"`
	ZakatEligible             bool             `json:"zakat_eligible"`
	AssignedAt                *time.Time       `json:"assigned_at,omitempty"`
	DecidedAt                 *time.Time       `json:"decided_at,omitempty"`
	CreatedAt                 time.Time        `json:"created_at"`
	UpdatedAt                 time.Time        `json:"updated_at"`
}

type ListResponse struct {
	Cases []*CaseResponse `json:"cases"`
	Count int             `json:"count"`
}

type StatsResponse struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

type AuditEventResponse struct {
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	ActorID   string    `json:"actor_id,omitempty"`
	TargetID  string    `json:"target_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type AuditResponse struct {
	Events []AuditEventResponse `json:"events"`
}

func FromCase(c *models.Case) *CaseResponse {
	resp := &CaseResponse{
		ID:             c.ID.String(),
		CaseNumber:     c.CaseNumber,
		SubmitterID:    c.SubmitterID.String(),
		Applicant:      c.Applicant,
		Disease:        c.Disease,
		DocumentRefs:   c.DocumentRefs,
		District:       c.District,
		Area:           c.Area,
		Priority:       c.Priority.String(),
		Status:         c.Status.String(),
		State:          string(c.State()),
		FundingTarget:  c.FundingTarget,
		TotalDonations: c.TotalDonations,
		Remaining:      c.Remaining(),
		ZakatEligible:  c.ZakatEligible,
		AssignedAt:     c.AssignedAt,
		DecidedAt:      c.DecidedAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if resp.DocumentRefs == nil {
		resp.DocumentRefs = []string{}
	}
	if c.VolunteerID != nil {
		v := c.VolunteerID.String()
		resp.VolunteerID = &v
	}
	if c.VolunteerApprovalStatus != nil {
		v := string(*c.VolunteerApprovalStatus)
		resp.VolunteerApprovalStatus = &v
	}
	resp.VolunteerRejectionReasons = make([]string, len(c.VolunteerRejectionReasons))
	for i, r := range c.VolunteerRejectionReasons {
		resp.VolunteerRejectionReasons[i] = string(r)
	}
	return resp
}

func FromCases(cases []*models.Case) *ListResponse {
	out := make([]*CaseResponse, len(cases))
	for i, c := range cases {
		out[i] = FromCase(c)
	}
	return &ListResponse{Cases: out, Count: len(out)}
}

func FromEvents(events []audit.Event) *AuditResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		resp := AuditEventResponse{
			Action:    e.Action,
			Category:  string(e.Category),
			Reason:    e.Reason,
			Amount:    e.Amount,
			RequestID: e.RequestID,
			Timestamp: e.Timestamp,
		}
		if !e.ActorID.IsNil() {
			resp.ActorID = e.ActorID.String()
		}
		if !e.TargetID.IsNil() {
			resp.TargetID = e.TargetID.String()
		}
		out = append(out, resp)
	}
	return &AuditResponse{Events: out}
}
