package api

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindNetwork covers unreachable hosts, timeouts and transport
	// failures. No server verdict was received.
	KindNetwork Kind = iota

	// KindAuth covers rejected or expired credentials.
	KindAuth

	// KindValidation covers payloads the server rejected.
	KindValidation

	// KindNotFound covers requests against missing resources.
	KindNotFound
)

// Error is the failure type for every API call. Detail carries the
// server's human-readable explanation when one was provided.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	err        error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("api: %v", e.err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

func (e *Error) Unwrap() error { return e.err }

// Message returns a user-displayable message: the server detail when
// present, otherwise a generic fallback for the failure kind.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	switch e.Kind {
	case KindNetwork:
		return "network error, please try again"
	case KindAuth:
		return "authentication failed"
	case KindNotFound:
		return "resource not found"
	default:
		return "request rejected by the server"
	}
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// Message returns a user-displayable message for any error coming out
// of an API call.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}
