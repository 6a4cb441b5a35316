// Package token issues and validates the bearer tokens handed out by the
// panel.
//
// Tokens are compact JWS values signed with HMAC-SHA256 under a single
// server-side secret. The algorithm is pinned: a token whose header names any
// other algorithm, "none" included, never validates.
package token

import (
	"time"

	"github.com/MKhiriev/admin-panel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/token_service_mock.go -package=mock

// Service signs and validates bearer tokens.
type Service interface {
	// Issue builds claims for user valid for ttl from now and signs them.
	// ttl must be positive.
	Issue(user models.User, ttl time.Duration, typ models.TokenType) (models.Token, error)

	// Sign serialises and signs claims as they are.
	Sign(claims models.Claims) (string, error)

	// Validate verifies raw and returns its claims. Failures are reported as
	// ErrExpired, ErrBadSignature or ErrMalformed.
	Validate(raw string) (models.Claims, error)
}
