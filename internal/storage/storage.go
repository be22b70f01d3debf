package storage

import "errors"

// Store error taxonomy. Backends wrap their native errors with one of these so
// callers can branch with errors.Is.
var (
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrValidationRejected = errors.New("validation rejected")
	ErrNotFound           = errors.New("not found")
)

// ErrConflict is a ValidationRejected caused by a uniqueness constraint.
var ErrConflict = errors.New("unique constraint violated")

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
