package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"medhope/internal/priority"
	dErrors "medhope/pkg/domain-errors"
	pstrings "medhope/pkg/platform/strings"
)

// MaxAmount is the largest value a NUMERIC(14,2) money column holds. It
// bounds funding targets, single donations and a case's running total.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// SubmitCaseRequest is what a submitter provides. Priority and case number
// are assigned by the service.
type SubmitCaseRequest struct {
	Applicant     Applicant       `json:"applicant"`
	Disease       Disease         `json:"disease"`
	District      string          `json:"district"`
	Area          string          `json:"area"`
	DocumentRefs  []string        `json:"document_refs"`
	FundingTarget decimal.Decimal `json:"funding_target"`
	ZakatEligible bool            `json:"zakat_eligible"`
}

func (r *SubmitCaseRequest) Normalize() {
	r.Applicant.FullName = strings.TrimSpace(r.Applicant.FullName)
	r.Applicant.CNIC = strings.TrimSpace(r.Applicant.CNIC)
	r.Applicant.Phone = strings.TrimSpace(r.Applicant.Phone)
	r.Applicant.Address = strings.TrimSpace(r.Applicant.Address)
	r.Disease.Name = strings.TrimSpace(r.Disease.Name)
	r.Disease.Description = strings.TrimSpace(r.Disease.Description)
	r.Disease.Hospital = strings.TrimSpace(r.Disease.Hospital)
	r.Area = strings.Join(strings.Fields(r.Area), " ")
	if d, ok := priority.CanonicalDistrict(r.District); ok {
		r.District = d
	} else {
		r.District = strings.TrimSpace(r.District)
	}
	r.DocumentRefs = pstrings.DedupeAndTrim(r.DocumentRefs)
}

func (r *SubmitCaseRequest) Validate() error {
	if r.Applicant.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "applicant full name is required")
	}
	if r.Disease.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "disease name is required")
	}
	if r.District == "" {
		return dErrors.New(dErrors.CodeValidation, "district is required")
	}
	if _, ok := priority.CanonicalDistrict(r.District); !ok {
		return dErrors.New(dErrors.CodeValidation, "district must be one of "+strings.Join(priority.Districts, ", "))
	}
	if !r.FundingTarget.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "funding target must be positive")
	}
	if !r.FundingTarget.Equal(r.FundingTarget.Round(2)) {
		return dErrors.New(dErrors.CodeValidation, "funding target must have at most two decimal places")
	}
	if r.FundingTarget.GreaterThan(MaxAmount) {
		return dErrors.New(dErrors.CodeValidation, "funding target must not exceed "+MaxAmount.StringFixed(2))
	}
	return nil
}
