package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access tokens from refresh tokens. It travels as
// the optional "type" claim.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	errEmptySubject = errors.New("token subject is empty")
	errInvalidRole  = errors.New("token role is invalid")
)

// Claims is the payload of a bearer token.
//
// The embedded [jwt.RegisteredClaims] contributes "sub" (username), "iat"
// and "exp"; Role and Type are the private claims. Field order here fixes
// the JSON layout of the payload, so a token re-signed from its parsed
// claims is byte-identical to the original.
type Claims struct {
	// Role is the user's role at issuance time.
	Role Role `json:"role"`

	// Type is empty for tokens issued by older deployments.
	Type TokenType `json:"type,omitempty"`

	jwt.RegisteredClaims
}

// Validate implements [jwt.ClaimsValidator]; it runs after the standard
// time-based checks during parsing.
func (c Claims) Validate() error {
	if c.Subject == "" {
		return errEmptySubject
	}
	if !c.Role.Valid() {
		return errInvalidRole
	}
	return nil
}

// Token is an issued bearer token together with the claims it was signed
// over.
type Token struct {
	// Claims are the claims embedded in the token.
	Claims Claims

	// SignedString is the compact header.payload.signature form.
	SignedString string
}

// String returns the compact serialisation of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// TokenPair is what a successful login hands back to the caller.
type TokenPair struct {
	Access  Token
	Refresh Token
}
