package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates catalog or configuration data failed validation.
	ErrValidation = errors.New("validation error")

	// ErrParse indicates a metadata document could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates an entity, file or data directory was not found.
	ErrNotFound = errors.New("not found")
)
