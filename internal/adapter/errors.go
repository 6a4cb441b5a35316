package adapter

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
	ErrNotLoggedIn         = errors.New("not logged in")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	// Kind is one of the sentinels above.
	Kind error

	Status int
	Msg    string

	// Violations lists failed password rules, when the server reported any.
	Violations []string

	// RetryAfter is parsed from the Retry-After header of a lockout answer.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.Violations) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Violations, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Kind
}
