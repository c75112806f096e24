package models

import "errors"

// Error taxonomy shared by services and handlers. Wrap with %w so callers
// can classify failures with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("record not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)
