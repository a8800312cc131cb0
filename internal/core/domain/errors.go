package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyRegistered  = errors.New("account already registered")
	ErrRegistrationFailed = errors.New("registration error")
	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPersistenceFailed  = errors.New("persistence failed")
	ErrSubmissionInFlight = errors.New("request already in progress")
	ErrRecordNotFound     = errors.New("record not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrInvalidTransition  = errors.New("invalid flow transition")
)

// ValidationError carries the field errors of a rejected form submission.
type ValidationError struct {
	Fields FieldErrorSet
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d field(s)", ErrValidation, len(e.Fields.Failed()))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PersistenceError reports a record store write that did not go through.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPersistenceFailed, e.Message)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistenceFailed, e.Cause} }

// Identity gateway error codes.
const (
	CodeEmailInUse        = "email-already-in-use"
	CodeWeakPassword      = "weak-password"
	CodeInvalidCredential = "invalid-credential"
	CodeUnavailable       = "unavailable"
)

// GatewayError is returned by identity gateway adapters.
type GatewayError struct {
	Code  string
	Cause error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("identity gateway: %s: %v", e.Code, e.Cause)
	}
	return "identity gateway: " + e.Code
}

func (e *GatewayError) Unwrap() error { return e.Cause }
