package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNicknameTaken  = errors.New("nickname already taken")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameFinished = errors.New("game is finished")

	// Registration errors
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("player is already registered for this game")
	ErrNotConfirmed         = errors.New("registration is not confirmed")
	ErrOnWaitlist           = errors.New("registration is on the waitlist")

	// Conversation session errors
	ErrSessionNotFound = errors.New("conversation session not found")
	ErrSessionExpired  = errors.New("conversation session expired")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAdmin           = errors.New("admin privileges required")
)

// ValidationError describes rejected input; the flow services surface
// these as re-prompts rather than hard failures.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
