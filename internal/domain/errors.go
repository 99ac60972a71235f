package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing row; it is always wrapped in PersistenceError.
	ErrNotFound = errors.New("record not found")

	// ErrLoginRejected is the single outcome callers see for any failed login.
	ErrLoginRejected = errors.New("login rejected")

	// ErrStorageUnavailable is absorbed by the local cache and only logged.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a payload field that cannot be dispatched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// AuthError reports an identity or session the gate does not accept.
type AuthError struct {
	Identity string
	Reason   string
}

func (e *AuthError) Error() string {
	if e.Identity == "" {
		return "auth failed: " + e.Reason
	}
	return fmt.Sprintf("auth failed for %s: %s", e.Identity, e.Reason)
}

// PersistenceError wraps a record store failure verbatim.
type PersistenceError struct {
	Op         string
	Collection Kind
	ID         string
	Code       string // driver error code when the store reported one
	Err        error
}

func (e *PersistenceError) Error() string {
	target := string(e.Collection)
	if e.ID != "" {
		target += "/" + e.ID
	}
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, target, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError builds the wrapped form used by every store.
func NewPersistenceError(op string, kind Kind, id string, err error) error {
	return &PersistenceError{Op: op, Collection: kind, ID: id, Err: err}
}

// IntegrationError reports a failed call to the external CRM.
type IntegrationError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *IntegrationError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("integration: %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("integration: %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("integration: %s: status %d", e.Op, e.StatusCode)
	}
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// IsNotFound reports whether err carries ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
