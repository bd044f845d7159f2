// Package domain holds typed identifiers shared across feature packages.
//
// Each ID wraps a uuid.UUID so a CaseID can never be passed where a UserID is
// expected. Parse functions are the trust boundary for identifiers arriving
// from requests or tokens.
package domain

import (
	"github.com/google/uuid"

	dErrors "medhope/pkg/domain-errors"
)

type (
	UserID     uuid.UUID
	CaseID     uuid.UUID
	DonationID uuid.UUID
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return parsed, nil
}

// ParseUserID parses a non-nil user UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseCaseID parses a non-nil case UUID.
func ParseCaseID(s string) (CaseID, error) {
	u, err := parseUUID(s, "case ID")
	return CaseID(u), err
}

// ParseDonationID parses a non-nil donation UUID.
func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID(s, "donation ID")
	return DonationID(u), err
}

func NewUserID() UserID         { return UserID(uuid.New()) }
func NewCaseID() CaseID         { return CaseID(uuid.New()) }
func NewDonationID() DonationID { return DonationID(uuid.New()) }

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id CaseID) String() string     { return uuid.UUID(id).String() }
func (id DonationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id DonationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id CaseID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id DonationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *CaseID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *DonationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
