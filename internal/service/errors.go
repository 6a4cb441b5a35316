package service

import (
	"errors"
	"time"

	"github.com/MKhiriev/admin-panel/internal/validators"
)

// ErrorKind is the closed set of failures the auth service reports. The HTTP
// layer maps each kind to exactly one status code.
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindLocked             ErrorKind = "LOCKED"
	KindWeakPassword       ErrorKind = "WEAK_PASSWORD"
	KindDuplicate          ErrorKind = "DUPLICATE"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindExpired            ErrorKind = "EXPIRED"
	KindBadSignature       ErrorKind = "BAD_SIGNATURE"
	KindMalformed          ErrorKind = "MALFORMED"
	KindUnknownSubject     ErrorKind = "UNKNOWN_SUBJECT"
	KindStoreUnavailable   ErrorKind = "STORE_UNAVAILABLE"

	// KindInvalidInput reports a malformed username, email or role on
	// registration.
	KindInvalidInput ErrorKind = "INVALID_INPUT"

	// KindInternal reports a failure that is nobody's input: salt
	// generation, token signing.
	KindInternal ErrorKind = "INTERNAL"
)

// Error is the only error type returned by [AuthService]. The underlying
// store, crypto or token error is logged where it happens and never carried
// here.
type Error struct {
	Kind ErrorKind

	// Violations lists the failed password rules for KindWeakPassword.
	Violations []validators.Violation

	// RetryAfter is the remaining lockout for KindLocked.
	RetryAfter time.Duration

	// Detail is a caller-safe explanation, set for KindInvalidInput.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return string(e.Kind) + ": " + e.Detail
	}
	return string(e.Kind)
}

// Is matches any *Error of the same kind, so callers can compare against
// the sentinels below with [errors.Is].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrLocked             = &Error{Kind: KindLocked}
	ErrWeakPassword       = &Error{Kind: KindWeakPassword}
	ErrDuplicate          = &Error{Kind: KindDuplicate}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrExpired            = &Error{Kind: KindExpired}
	ErrBadSignature       = &Error{Kind: KindBadSignature}
	ErrMalformed          = &Error{Kind: KindMalformed}
	ErrUnknownSubject     = &Error{Kind: KindUnknownSubject}
	ErrStoreUnavailable   = &Error{Kind: KindStoreUnavailable}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrInternal           = &Error{Kind: KindInternal}
)

// KindOf returns the kind of err, or KindInternal when err is not an
// [*Error].
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
