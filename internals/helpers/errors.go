package helper

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound: no entity with the requested id (or the id is malformed).
	ErrNotFound = errors.New("not found")
	// ErrConflict: the supplied version does not match the stored one.
	ErrConflict = errors.New("version conflict")
	// ErrRemoteUnavailable: the remote store could not answer (transport
	// failure, timeout, 5xx or an unreadable payload).
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// ValidationError carries one human-readable message per invalid field.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
