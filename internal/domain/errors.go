package domain

import "fmt"

// ErrorKind classifies validation failures that are caught before any
// computation begins.
type ErrorKind string

const (
	// KindRange marks an invalid projection range (toMonth before fromMonth).
	KindRange ErrorKind = "range"
	// KindValidation marks any other malformed request input.
	KindValidation ErrorKind = "validation"
)

// ValidationError is a structured, fully fatal request error. The caller
// layer translates it into a clarifying response; the engine never starts
// computing after raising one.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s error on %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// NewRangeError creates a range-kind validation error.
func NewRangeError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindRange, Field: field, Message: message}
}

// NewValidationError creates a validation-kind error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindValidation, Field: field, Message: message}
}
