// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/admin-panel/models"
	"github.com/golang-jwt/jwt/v5"
)

// Options configures the JWT service.
type Options struct {
	// Secret is the HMAC key. It must not be empty.
	Secret string

	// Issuer, when set, is written to "iss" and required on validation.
	Issuer string

	// Leeway tolerates clock skew when checking "exp" and "iat".
	Leeway time.Duration

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

type jwtService struct {
	secret []byte
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService returns a [Service] that signs with HS256 under opts.Secret.
func NewJWTService(opts Options) (Service, error) {
	if opts.Secret == "" {
		return nil, ErrEmptySecret
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(opts.Leeway),
		jwt.WithTimeFunc(now),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}

	return &jwtService{
		secret: []byte(opts.Secret),
		issuer: opts.Issuer,
		now:    now,
		parser: jwt.NewParser(parserOpts...),
	}, nil
}

// Issue implements [Service]. The subject is the username.
func (s *jwtService) Issue(user models.User, ttl time.Duration, typ models.TokenType) (models.Token, error) {
	if ttl <= 0 {
		return models.Token{}, ErrInvalidTTL
	}
	if user.Username == "" {
		return models.Token{}, ErrEmptySubject
	}

	now := s.now()
	claims := models.Claims{
		Role: user.Role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := s.Sign(claims)
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Claims: claims, SignedString: signed}, nil
}

// Sign implements [Service].
func (s *jwtService) Sign(claims models.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// Validate implements [Service].
func (s *jwtService) Validate(raw string) (models.Claims, error) {
	var claims models.Claims
	_, err := s.parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) && s.tampered(raw) {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
		}
		return models.Claims{}, classify(err)
	}
	return claims, nil
}

// tampered reports whether raw is a well-formed HS256 token whose signature
// does not verify over its first two segments. The parser decodes the
// claims before it checks the signature, so a payload altered into
// undecodable claims would otherwise surface as malformed.
func (s *jwtService) tampered(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return false
	}

	headerJSON, err := s.parser.DecodeSegment(parts[0])
	if err != nil {
		return false
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err = json.Unmarshal(headerJSON, &header); err != nil || header.Alg != jwt.SigningMethodHS256.Alg() {
		return false
	}
	if _, err = s.parser.DecodeSegment(parts[1]); err != nil {
		return false
	}

	sig, err := s.parser.DecodeSegment(parts[2])
	if err != nil {
		return false
	}

	return jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, s.secret) != nil
}

// classify folds the parser's error chain into the three outcomes callers
// act on. Expiry wins over everything else because the parser only checks
// claims after the signature has verified.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
