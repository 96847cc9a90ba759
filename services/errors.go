package services

import "errors"

// Domain failure kinds. Handlers translate these to HTTP statuses; nothing
// below the handler layer knows about status codes.
var (
	// ErrNotFound means the target record does not exist at all.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the record exists but belongs to someone else, or
	// is a system default the caller may not modify. Never merged with
	// ErrNotFound.
	ErrForbidden = errors.New("not authorized for this record")

	// ErrCategoryNotFound means a category id referenced by a transaction
	// does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrValidation means the input is malformed, e.g. a date that does not
	// parse as YYYY-MM-DD.
	ErrValidation = errors.New("invalid input")

	// ErrAINotConfigured means the advice service client could not be set
	// up, typically a missing API key.
	ErrAINotConfigured = errors.New("AI service is not configured")

	// ErrAIUnavailable means the remote advice call itself failed.
	ErrAIUnavailable = errors.New("AI service call failed")
)
