package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when a referenced
// client, trip or enrollment does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidOperation is returned when every referenced entity exists but the
// requested change breaks a business rule (duplicate enrollment, removal of a
// paid enrollment). Handlers should map this to HTTP 400.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrValidation is returned by service functions when input fails basic
// shape checks (e.g. missing required field).
var ErrValidation = errors.New("validation error")

// Error carries a human-readable message alongside one of the sentinel kinds
// above. errors.Is(err, ErrNotFound) matches through Unwrap, and handlers
// read Message to build the response body.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the sentinel kind to errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// NotFoundf builds an *Error of kind ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidOperationf builds an *Error of kind ErrInvalidOperation.
func InvalidOperationf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// MessageOf returns the human-readable message of the first *Error in err's
// chain, or the sentinel text when the chain holds only a bare sentinel.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	for _, kind := range []error{ErrNotFound, ErrInvalidOperation, ErrValidation} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}
