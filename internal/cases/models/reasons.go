package models

import (
	"fmt"

	dErrors "medhope/pkg/domain-errors"
	pstrings "medhope/pkg/platform/strings"
)

// RejectionReason tags why a volunteer rejected a case.
type RejectionReason string

const (
	ReasonPersonalInfo  RejectionReason = "Personal information issue"
	ReasonFinancialInfo RejectionReason = "Financial information issue"
	ReasonDiseaseInfo   RejectionReason = "Disease information issue"
)

var RejectionReasons = []RejectionReason{ReasonPersonalInfo, ReasonFinancialInfo, ReasonDiseaseInfo}

func (r RejectionReason) IsValid() bool {
	switch r {
	case ReasonPersonalInfo, ReasonFinancialInfo, ReasonDiseaseInfo:
		return true
	}
	return false
}

// ParseRejectionReasons trims and de-duplicates raw tags. The result is
// never empty on success.
func ParseRejectionReasons(raw []string) ([]RejectionReason, error) {
	cleaned := pstrings.DedupeAndTrim(raw)
	if len(cleaned) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one rejection reason is required")
	}
	reasons := make([]RejectionReason, 0, len(cleaned))
	for _, r := range cleaned {
		reason := RejectionReason(r)
		if !reason.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown rejection reason %q", r))
		}
		reasons = append(reasons, reason)
	}
	return reasons, nil
}
