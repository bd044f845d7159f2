package handler

import (
	"strings"

	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

// AssignRequest is the body of POST /cases/{caseID}/assignment.
type AssignRequest struct {
	VolunteerID string `json:"volunteer_id"`
}

func (r AssignRequest) Parse() (id.UserID, error) {
	raw := strings.TrimSpace(r.VolunteerID)
	if raw == "" {
		return id.UserID{}, dErrors.New(dErrors.CodeValidation, "volunteer_id is required")
	}
	volunteerID, err := id.ParseUserID(raw)
	if err != nil {
		return id.UserID{}, dErrors.New(dErrors.CodeValidation, "volunteer_id must be a valid UUID")
	}
	return volunteerID, nil
}

// RejectRequest is the body of POST /cases/{caseID}/volunteer/reject.
type RejectRequest struct {
	Reasons []string `json:"reasons"`
}

// PriorityRequest is the body of PUT /cases/{caseID}/priority.
type PriorityRequest struct {
	Priority string `json:"priority"`
}
