// Package errors provides the standardized error taxonomy shared by the
// catalog, session and interaction stores.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Authentication / authorization
	ErrCodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrCodeEmailTaken         ErrorCode = "AUTH_EMAIL_TAKEN"
	ErrCodeForbidden          ErrorCode = "AUTH_FORBIDDEN"

	// Remote synchronization (non-fatal, logged at the store boundary)
	ErrCodeFetchFailed   ErrorCode = "SYNC_FETCH_FAILED"
	ErrCodePersistFailed ErrorCode = "SYNC_PERSIST_FAILED"

	// Lookups and payload validation
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// StoreError is a structured application error. Stores return these as
// plain values; nothing in the core panics on a failed operation.
type StoreError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("StoreError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidCredentialsError creates the generic login failure. The
// message deliberately never distinguishes an unknown email from a wrong
// password.
func NewInvalidCredentialsError() *StoreError {
	return &StoreError{
		Code:      ErrCodeInvalidCredentials,
		Message:   "Incorrect email or password",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailTakenError creates a non-retryable actor creation conflict.
func NewEmailTakenError(email string) *StoreError {
	return &StoreError{
		Code:      ErrCodeEmailTaken,
		Message:   "An actor with this email already exists",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewForbiddenError creates an authorization predicate failure.
func NewForbiddenError(operation string) *StoreError {
	return &StoreError{
		Code:      ErrCodeForbidden,
		Message:   "Not authorized to perform this operation",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFetchFailedError creates a retryable remote fetch error.
func NewFetchFailedError(err error) *StoreError {
	return &StoreError{
		Code:      ErrCodeFetchFailed,
		Message:   "Remote store fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistFailedError creates a retryable remote persist error.
func NewPersistFailedError(err error) *StoreError {
	return &StoreError{
		Code:      ErrCodePersistFailed,
		Message:   "Remote store persist failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable lookup miss. Ids frequently
// originate from stale UI state during async transitions, so callers
// treat this as "render nothing" rather than a fault.
func NewNotFoundError(entity, id string) *StoreError {
	return &StoreError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", entity),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable payload validation error.
func NewInvalidInputError(details string) *StoreError {
	return &StoreError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Inspection Helpers
// ==========================

// CodeOf extracts the error code, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func IsNotFound(err error) bool  { return IsCode(err, ErrCodeNotFound) }
func IsForbidden(err error) bool { return IsCode(err, ErrCodeForbidden) }
