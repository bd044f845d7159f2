package audit

import (
	"context"
	"time"

	id "medhope/pkg/domain"
)

// EventCategory classifies audit events so sinks can route them.
type EventCategory string

const (
	// CategoryLifecycle covers case intake, review and admin decisions.
	CategoryLifecycle EventCategory = "lifecycle"

	// CategoryFunding covers donations recorded against accepted cases.
	CategoryFunding EventCategory = "funding"
)

// Event is emitted from services to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	CaseID    id.CaseID
	// Subject is the human-facing identifier of the case (its case number).
	Subject string
	// ActorID is the caller who performed the action.
	ActorID id.UserID
	// TargetID is a second party, e.g. the volunteer bound by an assignment
	// or the donor of a donation.
	TargetID  id.UserID
	Reason    string
	Amount    string
	RequestID string
}

type AuditEvent string

const (
	EventCaseSubmitted      AuditEvent = "case_submitted"
	EventVolunteerAssigned  AuditEvent = "volunteer_assigned"
	EventVolunteerApproved  AuditEvent = "volunteer_approved"
	EventVolunteerRejected  AuditEvent = "volunteer_rejected"
	EventCaseAccepted       AuditEvent = "case_accepted"
	EventCaseRejected       AuditEvent = "case_rejected"
	EventPriorityOverridden AuditEvent = "priority_overridden"

	EventDonationRecorded AuditEvent = "donation_recorded"
	EventDonationFailed   AuditEvent = "donation_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventDonationRecorded: CategoryFunding,
	EventDonationFailed:   CategoryFunding,
}

// Category returns the EventCategory for this audit event.
// Events not listed default to CategoryLifecycle.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryLifecycle
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader lists recorded events for a case.
type Reader interface {
	ListByCase(ctx context.Context, caseID id.CaseID) ([]Event, error)
}
