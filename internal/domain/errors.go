package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation marks a query edit the composer refused
var ErrValidation = errors.New("invalid query")

// ErrorCategory says which side of the wire a failure came from
type ErrorCategory int

const (
	NetworkError ErrorCategory = iota + 1
	ServerError
	ValidationError
)

func (c ErrorCategory) String() string {
	switch c {
	case NetworkError:
		return "network"
	case ServerError:
		return "server"
	case ValidationError:
		return "validation"
	default:
		return "unknown"
	}
}

// ErrorKind is the failure shown in a list screen's error banner
type ErrorKind struct {
	Category   ErrorCategory
	StatusCode int // set for ServerError only
	Message    string
}

func (e ErrorKind) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Category, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Category, e.Message)
}

// StatusError is a non-2xx answer from the REST API
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the server rejected the credentials
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// ClassifyError maps a fetch error onto the categories the UI distinguishes
func ClassifyError(err error) ErrorKind {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		msg := statusErr.Message
		if statusErr.Unauthorized() {
			msg = "unauthorized"
		}
		if msg == "" {
			msg = http.StatusText(statusErr.StatusCode)
		}
		return ErrorKind{Category: ServerError, StatusCode: statusErr.StatusCode, Message: msg}
	case errors.Is(err, ErrValidation):
		return ErrorKind{Category: ValidationError, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKind{Category: NetworkError, Message: "request timed out"}
	default:
		return ErrorKind{Category: NetworkError, Message: err.Error()}
	}
}
