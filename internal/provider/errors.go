package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is returned when a provider answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected provider response status")

	// ErrInvalidPayload is returned when a provider body cannot be parsed
	// or does not match the expected shape.
	ErrInvalidPayload = errors.New("invalid provider payload")
)

// StatusError carries the status code of a failed provider request.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider %s returned status %d", e.Provider, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
