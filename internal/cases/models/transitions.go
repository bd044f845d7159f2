package models

import (
	"time"

	"github.com/shopspring/decimal"

	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

// CanAssign reports whether a volunteer may be bound to the case. Any
// pending case may be (re)assigned, whatever the current verdict.
func (c *Case) CanAssign() error {
	if c.Status != StatusPending {
		return dErrors.New(dErrors.CodeConflict, "only pending cases can be assigned to a volunteer")
	}
	return nil
}

// ApplyAssignment binds volunteerID and resets the verdict to pending,
// discarding any verdict from a previous volunteer.
func (c *Case) ApplyAssignment(volunteerID id.UserID, now time.Time) {
	pending := VolunteerPending
	c.VolunteerID = &volunteerID
	c.VolunteerApprovalStatus = &pending
	c.VolunteerRejectionReasons = nil
	c.VolunteerReviewedAt = nil
	c.AssignedAt = &now
	c.UpdatedAt = now
}

// CanRecordVerdict reports whether volunteerID may record a verdict now.
func (c *Case) CanRecordVerdict(volunteerID id.UserID) error {
	if c.IsTerminal() {
		return dErrors.New(dErrors.CodeConflict, "case already has an admin decision")
	}
	if c.VolunteerID == nil {
		return dErrors.New(dErrors.CodeConflict, "case has no assigned volunteer")
	}
	if !c.IsAssignedTo(volunteerID) {
		return dErrors.New(dErrors.CodeConflict, "caller is not the volunteer assigned to this case")
	}
	if c.State() != StateVolunteerPending {
		return dErrors.New(dErrors.CodeConflict, "volunteer verdict already recorded")
	}
	return nil
}

// ApplyVolunteerApproval records an approve verdict. Status is untouched.
func (c *Case) ApplyVolunteerApproval(now time.Time) {
	approved := VolunteerApproved
	c.VolunteerApprovalStatus = &approved
	c.VolunteerRejectionReasons = nil
	c.VolunteerReviewedAt = &now
	c.UpdatedAt = now
}

// ApplyVolunteerRejection records a reject verdict with its reasons.
func (c *Case) ApplyVolunteerRejection(reasons []RejectionReason, now time.Time) {
	rejected := VolunteerRejected
	c.VolunteerApprovalStatus = &rejected
	c.VolunteerRejectionReasons = append([]RejectionReason(nil), reasons...)
	c.VolunteerReviewedAt = &now
	c.UpdatedAt = now
}

// ApplyAdminApproval accepts the case from any state. It returns false when
// the case was already accepted.
func (c *Case) ApplyAdminApproval(adminID id.UserID, now time.Time) bool {
	if c.Status == StatusAccepted {
		return false
	}
	c.Status = StatusAccepted
	c.DecidedBy = &adminID
	c.DecidedAt = &now
	c.UpdatedAt = now
	return true
}

// ApplyAdminRejection rejects a non-terminal case. It returns false when the
// case already carries an admin decision.
func (c *Case) ApplyAdminRejection(adminID id.UserID, now time.Time) bool {
	if c.IsTerminal() {
		return false
	}
	c.Status = StatusRejected
	c.DecidedBy = &adminID
	c.DecidedAt = &now
	c.UpdatedAt = now
	return true
}

// ApplyPriorityOverride replaces the classified priority. It returns false
// when p is already the case's priority.
func (c *Case) ApplyPriorityOverride(p priority.Priority, now time.Time) bool {
	if c.Priority == p {
		return false
	}
	c.Priority = p
	c.UpdatedAt = now
	return true
}

// ErrTotalExceedsMax refuses a credit that would take the case total past
// MaxAmount.
var ErrTotalExceedsMax = dErrors.New(dErrors.CodeValidation, "donation would take the case total past the maximum amount")

// CanCredit checks CanReceiveDonation and that the new total stays within
// MaxAmount.
func (c *Case) CanCredit(amount decimal.Decimal, isZakat bool) error {
	if err := c.CanReceiveDonation(isZakat); err != nil {
		return err
	}
	if c.TotalDonations.Add(amount).GreaterThan(MaxAmount) {
		return ErrTotalExceedsMax
	}
	return nil
}

// CanReceiveDonation checks the ledger preconditions on the case side.
func (c *Case) CanReceiveDonation(isZakat bool) error {
	if c.Status != StatusAccepted {
		return dErrors.New(dErrors.CodeConflict, "case is not accepting donations")
	}
	if isZakat && !c.ZakatEligible {
		return dErrors.New(dErrors.CodeValidation, "case is not eligible for zakat donations")
	}
	return nil
}
