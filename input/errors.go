package input

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func NewUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ValidationError is returned when a Spec cannot be sent at all.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...interface{}) error {
	return errors.WithStack(&ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// IsValidationError reports whether the cause of err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// Validate checks the parts of a Spec that must be well-formed before a
// request can be made. Malformed header and parameter lines are not errors.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return NewValidationError("url", "URL is required")
	}
	if !s.Method.valid() {
		return NewValidationError("method", "unsupported method: %q", string(s.Method))
	}
	if s.Auth.Mode < AuthNone || s.Auth.Mode > AuthAPIKey {
		return NewValidationError("auth", "unsupported auth mode: %d", int(s.Auth.Mode))
	}
	return nil
}
