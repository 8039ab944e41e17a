// Package domain contains the dashboard's entities, filter rules and errors.
// Domain errors describe what went wrong in terms of the session and the
// remote quote API; adapters map them to HTTP responses or terminal output.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized indicates there is no usable session: either none is held
	// or the remote API rejected the token with 401/403.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input was rejected locally or by the remote API (422).
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the current user's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates the remote API could not be reached or failed (5xx).
	ErrUnavailable = errors.New("unavailable")

	// ErrRequest indicates any other non-success response from the remote API.
	ErrRequest = errors.New("request failed")

	// ErrContract indicates a response body did not match the documented schema.
	ErrContract = errors.New("response contract violation")

	// ErrNoQuotes is the soft error returned when a local fallback has no data.
	ErrNoQuotes = errors.New("could not load a random quote")

	// ErrCanceled indicates the user declined a confirmation prompt.
	ErrCanceled = errors.New("canceled by user")
)

// UnauthorizedError provides context for session failures.
// Message carries the server's explanation when one was sent.
type UnauthorizedError struct {
	Operation string
	Status    int
	Message   string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: session rejected (status %d)", e.Operation, e.Status)
	}

	return e.Operation + ": no active session"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NewUnauthorizedError creates an unauthorized error for an operation.
// A zero status means the operation was refused before any request was sent.
func NewUnauthorizedError(operation string, status int) error {
	return &UnauthorizedError{Operation: operation, Status: status}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError carries one or more validation messages.
// Field is set for single-field failures; Fields maps field names to the
// messages the remote API reported for them.
type ValidationError struct {
	Field    string
	Message  string
	Messages []string
	Fields   map[string][]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Summary()
}

// Summary joins every message into a single human readable line.
func (e *ValidationError) Summary() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, ", ")
	}

	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrors creates a validation error from remote messages.
// fields may be nil.
func NewValidationErrors(message string, messages []string, fields map[string][]string) error {
	return &ValidationError{Message: message, Messages: messages, Fields: fields}
}

// ForbiddenError provides context for forbidden errors.
type ForbiddenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// RequestError describes a non-success response that has no more specific kind.
type RequestError struct {
	Operation string
	Status    int
	Message   string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.Status, e.Message)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *RequestError) Unwrap() error {
	return ErrRequest
}

// NewRequestError creates a request error with context.
func NewRequestError(operation string, status int, message string) error {
	return &RequestError{Operation: operation, Status: status, Message: message}
}

// NewContractError wraps a decoding problem as a contract violation.
func NewContractError(operation string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", operation, ErrContract)
	}

	return fmt.Errorf("%s: %w: %w", operation, ErrContract, cause)
}

// IsUnauthorized checks if an error means the session is gone.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsContract checks if an error is a schema mismatch.
func IsContract(err error) bool {
	return errors.Is(err, ErrContract)
}

// IsCanceled checks if the user declined a confirmation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
