package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTimerRunning        = errors.New("timer is running")
	ErrAwaitingFocus       = errors.New("focus level must be recorded first")
	ErrNotAwaitingFocus    = errors.New("no completed session is awaiting a focus level")
	ErrNoBreakReminder     = errors.New("no break reminder is pending")
	ErrSectionNotFound     = errors.New("section not found")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrNotAuthenticated    = errors.New("not signed in")
	ErrRemoteNotConfigured = errors.New("remote store not configured")
)

// ValidationError reports user input the domain refuses. No state changes
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
