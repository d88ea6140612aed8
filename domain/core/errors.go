package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrDashboardNotFound = fmt.Errorf("%w: dashboard", ErrNotFound)
	ErrDatasetNotFound   = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrMappingNotFound   = fmt.Errorf("%w: column mapping", ErrNotFound)

	// Validation errors
	ErrEmptyUpload       = errors.New("uploaded file has no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrColumnMismatch    = errors.New("row columns do not match dataset header")
	ErrUnknownFilter     = errors.New("filter references a non-filterable column")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrEmptyUpload) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrColumnMismatch)
}
