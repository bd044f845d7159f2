package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

// Status is the admin-facing lifecycle status of a case.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusAccepted, StatusRejected}

// VolunteerApprovalStatus is the volunteer's verdict on an assigned case.
type VolunteerApprovalStatus string

const (
	VolunteerPending  VolunteerApprovalStatus = "pending"
	VolunteerApproved VolunteerApprovalStatus = "approved"
	VolunteerRejected VolunteerApprovalStatus = "rejected"
)

func (v VolunteerApprovalStatus) IsValid() bool {
	switch v {
	case VolunteerPending, VolunteerApproved, VolunteerRejected:
		return true
	}
	return false
}

// State is the lifecycle position derived from a case's fields.
type State string

const (
	StateUnassigned        State = "unassigned"
	StateVolunteerPending  State = "volunteer_pending"
	StateVolunteerApproved State = "volunteer_approved"
	StateVolunteerRejected State = "volunteer_rejected"
	StateAdminAccepted     State = "admin_accepted"
	StateAdminRejected     State = "admin_rejected"
)

func (s State) IsTerminal() bool {
	return s == StateAdminAccepted || s == StateAdminRejected
}

// Applicant is the person the case raises funds for.
type Applicant struct {
	FullName string `json:"full_name"`
	CNIC     string `json:"cnic,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Disease describes the medical need.
type Disease struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Hospital    string `json:"hospital,omitempty"`
}

// Case is a submitted request for medical funding assistance. Cases are
// never deleted; rejected cases are retained.
type Case struct {
	ID           id.CaseID
	CaseNumber   string
	SubmitterID  id.UserID
	Applicant    Applicant
	Disease      Disease
	DocumentRefs []string

	District string
	Area     string
	Priority priority.Priority
	Status   Status

	// VolunteerID is nil while unassigned.
	VolunteerID *id.UserID
	// VolunteerApprovalStatus is nil until a volunteer is assigned.
	VolunteerApprovalStatus   *VolunteerApprovalStatus
	VolunteerRejectionReasons []RejectionReason

	FundingTarget  decimal.Decimal
	ZakatEligible  bool
	TotalDonations decimal.Decimal

	AssignedAt          *time.Time
	VolunteerReviewedAt *time.Time
	DecidedAt           *time.Time
	DecidedBy           *id.UserID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxCaseSequence is the last per-year sequence a five-digit case number
// can carry.
const MaxCaseSequence = 99999

// FormatCaseNumber renders CASE-<year>-<5-digit sequence>. Sequences outside
// 1..MaxCaseSequence are refused rather than widened.
func FormatCaseNumber(year int, seq int64) (string, error) {
	if seq < 1 || seq > MaxCaseSequence {
		return "", dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("case number sequence %d for %d is outside 1..%d", seq, year, MaxCaseSequence))
	}
	return fmt.Sprintf("CASE-%d-%05d", year, seq), nil
}

// State derives the lifecycle state. Admin decisions dominate the
// volunteer verdict.
func (c *Case) State() State {
	switch c.Status {
	case StatusAccepted:
		return StateAdminAccepted
	case StatusRejected:
		return StateAdminRejected
	}
	if c.VolunteerID == nil || c.VolunteerApprovalStatus == nil {
		return StateUnassigned
	}
	switch *c.VolunteerApprovalStatus {
	case VolunteerApproved:
		return StateVolunteerApproved
	case VolunteerRejected:
		return StateVolunteerRejected
	default:
		return StateVolunteerPending
	}
}

func (c *Case) IsTerminal() bool {
	return c.State().IsTerminal()
}

func (c *Case) IsAssignedTo(volunteerID id.UserID) bool {
	return c.VolunteerID != nil && *c.VolunteerID == volunteerID
}

// Remaining is max(0, target - total).
func (c *Case) Remaining() decimal.Decimal {
	r := c.FundingTarget.Sub(c.TotalDonations)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}
	out := *c
	out.DocumentRefs = slices.Clone(c.DocumentRefs)
	out.VolunteerRejectionReasons = slices.Clone(c.VolunteerRejectionReasons)
	out.VolunteerID = clonePtr(c.VolunteerID)
	out.VolunteerApprovalStatus = clonePtr(c.VolunteerApprovalStatus)
	out.AssignedAt = clonePtr(c.AssignedAt)
	out.VolunteerReviewedAt = clonePtr(c.VolunteerReviewedAt)
	out.DecidedAt = clonePtr(c.DecidedAt)
	out.DecidedBy = clonePtr(c.DecidedBy)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StatusCounts summarizes cases per status for dashboards.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

func (s StatusCounts) Total() int {
	return s.Pending + s.Accepted + s.Rejected
}
