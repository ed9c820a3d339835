package internalerr

import "errors"

// Sentinel errors shared across the store backends and the config
// loaders. Callers match them with errors.Is.
var (
	ErrNotFound      = errors.New("recipe not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
)
