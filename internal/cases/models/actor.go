package models

import (
	identity "medhope/internal/identity/models"
	id "medhope/pkg/domain"
)

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	ID   id.UserID
	Role identity.Role
}

func (a Actor) Is(role identity.Role) bool {
	return !a.ID.IsNil() && a.Role == role
}

// CanView reports whether the actor may see the case. Admins see every case,
// submitters their own, volunteers the cases assigned to them. Accepted
// cases are open to every authenticated caller so donors can find them.
func (c *Case) CanView(actor Actor) bool {
	switch {
	case actor.ID.IsNil():
		return false
	case actor.Is(identity.RoleAdmin), c.Status == StatusAccepted:
		return true
	case c.SubmitterID == actor.ID:
		return true
	default:
		return c.IsAssignedTo(actor.ID)
	}
}
