package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and services translate them into coded domain errors.
//
//   - ErrNotFound: entity does not exist in store
//   - ErrConflict: write lost a race or violated a uniqueness rule
//   - ErrAlreadyUsed: idempotency key or unique reference already recorded
//   - ErrInvalidState: entity in wrong state for a conditional write
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
)
