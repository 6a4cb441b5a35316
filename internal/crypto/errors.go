package crypto

import "errors"

var (
	// ErrUnsupportedVerifier is returned by parsers when a verifier does not
	// belong to the scheme being parsed.
	ErrUnsupportedVerifier = errors.New("unsupported verifier format")

	// ErrInvalidParams is returned when cost parameters are missing, out of
	// range or unreasonably large.
	ErrInvalidParams = errors.New("invalid hash parameters")

	// ErrSaltGeneration is returned when the CSPRNG cannot produce a salt.
	ErrSaltGeneration = errors.New("failed to generate salt")
)
