package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidArgumentError signals a nil or malformed input handed to scoring or
// matching entry points. Surfaced to the caller.
type InvalidArgumentError struct {
	*DomainError
}

func NewInvalidArgumentError(message string) *InvalidArgumentError {
	return &InvalidArgumentError{DomainError: &DomainError{Message: message}}
}

// Shipment-related errors

type InvalidTransitionError struct {
	*DomainError
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid shipment transition: %s -> %s", from, to)},
		From:        from,
		To:          to,
	}
}

// Matching errors

type MatchingAbortedError struct {
	*DomainError
	Cause error
}

func NewMatchingAbortedError(cause error) *MatchingAbortedError {
	return &MatchingAbortedError{
		DomainError: &DomainError{Message: fmt.Sprintf("matching pass aborted: %v", cause)},
		Cause:       cause,
	}
}

func (e *MatchingAbortedError) Unwrap() error {
	return e.Cause
}
