// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
)

// saltLength is the size in bytes of the random salt embedded in every new
// verifier.
const saltLength = 16

// Argon2Params holds the Argon2id cost used for new verifiers.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultArgon2Params returns the production cost: 64 MiB, three passes,
// two lanes and a 32-byte key.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		KeyLength:   32,
	}
}

func (p Argon2Params) validate() error {
	switch {
	case p.Memory < 8*uint32(p.Parallelism) || p.Memory > maxArgon2Memory:
		return fmt.Errorf("%w: memory %d", ErrInvalidParams, p.Memory)
	case p.Iterations == 0 || p.Iterations > maxArgon2Iterations:
		return fmt.Errorf("%w: iterations %d", ErrInvalidParams, p.Iterations)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism %d", ErrInvalidParams, p.Parallelism)
	case p.KeyLength < 16 || p.KeyLength > maxKeyLength:
		return fmt.Errorf("%w: key length %d", ErrInvalidParams, p.KeyLength)
	}
	return nil
}

// passwordHasher is the production [PasswordHasher]. New verifiers use
// Argon2id; legacy schemes are verify-only.
type passwordHasher struct {
	params Argon2Params

	dummyOnce sync.Once
	dummy     string
}

// NewPasswordHasher returns a [PasswordHasher] that derives new verifiers
// with params. It fails when params are outside the accepted bounds.
func NewPasswordHasher(params Argon2Params) (PasswordHasher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &passwordHasher{params: params}, nil
}

// Hash implements [PasswordHasher].
func (h *passwordHasher) Hash(plaintext string) (string, error) {
	salt, err := generateSalt()
	if err != nil {
		return "", err
	}
	return encodeArgon2id(h.params, salt, deriveArgon2id(h.params, []byte(plaintext), salt)), nil
}

// Verify implements [PasswordHasher]. The scheme is selected by the
// verifier's prefix.
func (h *passwordHasher) Verify(plaintext, verifier string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	switch {
	case strings.HasPrefix(verifier, argon2idPrefix):
		return verifyArgon2id(plaintext, verifier)
	case strings.HasPrefix(verifier, pbkdf2PHCPrefix):
		return verifyPBKDF2PHC(plaintext, verifier)
	case strings.HasPrefix(verifier, werkzeugPBKDF2Prefix):
		return verifyWerkzeugPBKDF2(plaintext, verifier)
	case strings.HasPrefix(verifier, werkzeugScryptPrefix):
		return verifyWerkzeugScrypt(plaintext, verifier)
	case isBcrypt(verifier):
		return verifyBcrypt(plaintext, verifier)
	}
	return false
}

// NeedsRehash implements [PasswordHasher]. Anything that is not Argon2id with
// exactly the configured cost needs a rehash.
func (h *passwordHasher) NeedsRehash(verifier string) bool {
	params, _, _, err := parseArgon2id(verifier)
	if err != nil {
		return true
	}
	return params != h.params
}

// DummyVerifier returns a verifier of the current scheme and cost for a
// password nobody knows. Verifying against it costs the same as a real
// verification, which keeps lookups of unknown usernames indistinguishable
// by timing.
func (h *passwordHasher) DummyVerifier() string {
	h.dummyOnce.Do(func() {
		salt := make([]byte, saltLength)
		h.dummy = encodeArgon2id(h.params, salt, deriveArgon2id(h.params, []byte("admin-panel/dummy"), salt))
	})
	return h.dummy
}

// DummyVerifier returns hasher's dummy verifier if it provides one, and an
// empty string otherwise.
func DummyVerifier(hasher PasswordHasher) string {
	if d, ok := hasher.(interface{ DummyVerifier() string }); ok {
		return d.DummyVerifier()
	}
	return ""
}

func generateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaltGeneration, err)
	}
	return salt, nil
}
