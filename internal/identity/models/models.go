package models

import (
	"fmt"
	"strings"
	"time"

	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

// Role is the caller's platform role.
type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSubmitter, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown role %q", s))
	}
	return r, nil
}

// Identity is a user known to the identity provider. Credentials are never
// held here.
type Identity struct {
	ID        id.UserID
	Email     string
	FullName  string
	Role      Role
	Active    bool
	CreatedAt time.Time
}

// NewIdentity validates and constructs an active identity.
func NewIdentity(userID id.UserID, email, fullName string, role Role, now time.Time) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user id is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "a valid email is required")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "role is invalid")
	}
	return &Identity{
		ID:        userID,
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		Role:      role,
		Active:    true,
		CreatedAt: now,
	}, nil
}

func (i *Identity) HasRole(role Role) bool {
	return i != nil && i.Role == role
}
