// Package priority classifies a case's urgency from its submitted location.
package priority

import (
	"fmt"

	dErrors "medhope/pkg/domain-errors"
)

// Priority is the urgency tier of a case.
type Priority string

const (
	High   Priority = "High"
	Medium Priority = "Medium"
	Low    Priority = "Low"
)

// Default is returned for any location the dataset cannot place.
const Default = Medium

func (p Priority) IsValid() bool {
	switch p {
	case High, Medium, Low:
		return true
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}

// Parse validates an externally supplied priority, e.g. an admin override.
func Parse(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("priority must be one of High, Medium, Low; got %q", s))
	}
	return p, nil
}

// Class is the socioeconomic class of a locality in the reference dataset.
type Class string

const (
	ClassLower  Class = "Lower"
	ClassMiddle Class = "Middle"
	ClassElite  Class = "Elite"
)

func (c Class) IsValid() bool {
	switch c {
	case ClassLower, ClassMiddle, ClassElite:
		return true
	}
	return false
}

// Priority maps the class to its tier: poorer localities rank higher.
func (c Class) Priority() Priority {
	switch c {
	case ClassLower:
		return High
	case ClassElite:
		return Low
	default:
		return Medium
	}
}
