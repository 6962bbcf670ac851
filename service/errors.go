package service

import "errors"

// Sentinel errors surfaced to the HTTP and realtime boundaries. Handlers map
// them to response codes; everything else is an internal failure.
var (
	// ErrNotFound indicates the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the user has no active payment stream
	ErrAccessDenied = errors.New("access denied: no active stream")

	// ErrValidation indicates malformed or out-of-range input
	ErrValidation = errors.New("invalid input")
)
