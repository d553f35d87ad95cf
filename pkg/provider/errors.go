package provider

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrGroupNotFound    = errors.New("auto scaling group not found")
	ErrInstanceNotFound = errors.New("instance not found")
	ErrMissingField     = errors.New("missing field")
)

// MissingFieldError reports a required attribute absent from an API response
type MissingFieldError struct {
	Resource string // e.g. "instance", "auto scaling group"
	ID       string // may be empty when the id itself is missing
	Field    string
}

func (e *MissingFieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s %s", e.Resource, ErrMissingField, e.Field)
	}
	return fmt.Sprintf("%s %s: %s %s", e.Resource, e.ID, ErrMissingField, e.Field)
}

// Unwrap lets callers match any MissingFieldError with errors.Is(err, ErrMissingField)
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
