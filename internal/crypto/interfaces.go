// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto is the credential vault of the panel: it turns passwords
// into self-describing verifiers and checks passwords against them.
//
// Verifiers are opaque to the rest of the application. The current scheme is
// Argon2id in PHC string form; verifiers written by earlier deployments
// (PBKDF2, scrypt and bcrypt in their respective formats) keep verifying so
// that changing the KDF or its cost never locks existing users out.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher hashes and verifies user passwords.
//
// Implementations must be safe for concurrent use. Hash is CPU and memory
// intensive and should be treated as a blocking call.
type PasswordHasher interface {
	// Hash derives a new verifier for plaintext using a fresh random salt.
	// The verifier embeds the scheme, its cost parameters and the salt.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches verifier. The derived keys
	// are compared in constant time. Any malformed or unsupported verifier
	// yields false; Verify never panics.
	Verify(plaintext, verifier string) bool

	// NeedsRehash reports whether verifier was produced by a scheme or cost
	// other than the one Hash currently uses.
	NeedsRehash(verifier string) bool
}
