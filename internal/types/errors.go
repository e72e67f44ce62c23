package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNumber is returned when a numeric text fragment cannot be parsed
	ErrMalformedNumber = errors.New("malformed number")

	// ErrSessionClosed is returned when the browser session is no longer usable
	ErrSessionClosed = errors.New("browser session closed")

	// ErrScriptRequired is returned by a backend that cannot run page script
	ErrScriptRequired = errors.New("page script execution not supported")
)

// MissingFieldError indicates a required fragment was absent from a catalog entry
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// NavigationError indicates the browser could not load a target URL
type NavigationError struct {
	URL string
	Err error
}

func (e NavigationError) Error() string {
	return fmt.Errorf("navigate to %s: %w", e.URL, e.Err).Error()
}

func (e NavigationError) Unwrap() error {
	return e.Err
}

// ErrorReason maps an error to a short label used in reports and metrics
func ErrorReason(err error) string {
	if err == nil {
		return "unknown"
	}
	var missing MissingFieldError
	if errors.As(err, &missing) {
		return "missing_field"
	}
	if errors.Is(err, ErrMalformedNumber) {
		return "malformed_number"
	}
	var nav NavigationError
	if errors.As(err, &nav) {
		return "navigation"
	}
	if errors.Is(err, ErrSessionClosed) {
		return "session_closed"
	}
	return "other"
}
