package token

import "errors"

var (
	ErrExpired      = errors.New("token expired")
	ErrBadSignature = errors.New("token signature is invalid")
	ErrMalformed    = errors.New("token is malformed")

	ErrInvalidTTL   = errors.New("token ttl must be positive")
	ErrEmptySecret  = errors.New("token signing secret is empty")
	ErrEmptySubject = errors.New("token subject is empty")
)
