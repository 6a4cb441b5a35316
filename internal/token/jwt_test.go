package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/admin-panel/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

var t0 = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, clock *fakeClock, leeway time.Duration) Service {
	t.Helper()
	svc, err := NewJWTService(Options{Secret: testSecret, Leeway: leeway, Now: clock.Now})
	require.NoError(t, err)
	return svc
}

func alice() models.User {
	return models.User{ID: 7, Username: "alice", Role: models.RoleAdminTechnical}
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService(Options{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newTestService(t, clock, 0)

	tok, err := svc.Issue(alice(), 15*time.Minute, models.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(tok.SignedString, ".")))
	assert.Equal(t, tok.SignedString, tok.String())

	claims, err := svc.Validate(tok.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, models.RoleAdminTechnical, claims.Role)
	assert.Equal(t, models.AccessToken, claims.Type)
	assert.True(t, claims.IssuedAt.Time.Equal(t0))
	assert.True(t, claims.ExpiresAt.Time.Equal(t0.Add(15*time.Minute)))
}

func TestJWTService_PayloadLayout(t *testing.T) {
	svc := newTestService(t, &fakeClock{now: t0}, 0)

	tok, err := svc.Issue(alice(), time.Minute, models.AccessToken)
	require.NoError(t, err)

	parts := strings.Split(tok.SignedString, ".")
	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	assert.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, string(header))
	assert.JSONEq(t,
		`{"role":"admin_tecnico","type":"access","sub":"alice","exp":1767348060,"iat":1767348000}`,
		string(payload))
}

func TestJWTService_InvalidTTL(t *testing.T) {
	svc := newTestService(t, &fakeClock{now: t0}, 0)

	_, err := svc.Issue(alice(), 0, models.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = svc.Issue(alice(), -time.Second, models.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = svc.Issue(models.User{Role: models.RoleViewer}, time.Minute, models.AccessToken)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestJWTService_ReSignIsByteIdentical(t *testing.T) {
	svc := newTestService(t, &fakeClock{now: t0}, 0)

	for _, typ := range []models.TokenType{models.AccessToken, models.RefreshToken, ""} {
		tok, err := svc.Issue(alice(), time.Hour, typ)
		require.NoError(t, err)

		claims, err := svc.Validate(tok.SignedString)
		require.NoError(t, err)

		again, err := svc.Sign(claims)
		require.NoError(t, err)
		assert.Equal(t, tok.SignedString, again)
	}
}

func TestJWTService_Expiry(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newTestService(t, clock, 0)

	tok, err := svc.Issue(alice(), 15*time.Minute, models.AccessToken)
	require.NoError(t, err)

	clock.now = t0.Add(15*time.Minute - time.Second)
	_, err = svc.Validate(tok.SignedString)
	assert.NoError(t, err)

	// exp equal to now is already expired
	clock.now = t0.Add(15 * time.Minute)
	_, err = svc.Validate(tok.SignedString)
	assert.ErrorIs(t, err, ErrExpired)

	clock.now = t0.Add(time.Hour)
	_, err = svc.Validate(tok.SignedString)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestJWTService_Leeway(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newTestService(t, clock, 30*time.Second)

	tok, err := svc.Issue(alice(), time.Minute, models.AccessToken)
	require.NoError(t, err)

	clock.now = t0.Add(time.Minute + 10*time.Second)
	_, err = svc.Validate(tok.SignedString)
	assert.NoError(t, err)

	clock.now = t0.Add(time.Minute + 30*time.Second)
	_, err = svc.Validate(tok.SignedString)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestJWTService_BadSignature(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newTestService(t, clock, 0)

	tok, err := svc.Issue(alice(), time.Hour, models.AccessToken)
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		other, err := NewJWTService(Options{Secret: "another-secret", Now: clock.Now})
		require.NoError(t, err)
		_, err = other.Validate(tok.SignedString)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(tok.SignedString, ".")
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)

		// every single-bit flip, including ones that break the JSON or the role
		for i := range payload {
			for bit := 0; bit < 8; bit++ {
				flipped := append([]byte(nil), payload...)
				flipped[i] ^= 1 << bit

				forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(flipped) + "." + parts[2]
				_, err := svc.Validate(forged)
				require.ErrorIsf(t, err, ErrBadSignature, "byte %d bit %d: %q", i, bit, flipped)
			}
		}
	})

	t.Run("tampered role", func(t *testing.T) {
		parts := strings.Split(tok.SignedString, ".")
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)

		forgedPayload := strings.Replace(string(payload), `"admin_tecnico"`, `"admin_master"`, 1)
		require.NotEqual(t, string(payload), forgedPayload)
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forgedPayload))

		_, err = svc.Validate(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrBadSignature)
		assert.NotErrorIs(t, err, ErrMalformed)
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(tok.SignedString, ".")
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		parts[2] = string(sig)
		_, err := svc.Validate(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrBadSignature)
	})
}

func TestJWTService_AlgorithmPinning(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newTestService(t, clock, 0)

	claims := models.Claims{
		Role: models.RoleAdminMaster,
		Type: models.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "root",
			IssuedAt:  jwt.NewNumericDate(t0),
			ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
		},
	}

	t.Run("none", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Validate(raw)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("HS512 with the same secret", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = svc.Validate(raw)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		valid, err := svc.Sign(claims)
		require.NoError(t, err)
		parts := strings.Split(valid, ".")
		parts[0] = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"XY99","typ":"JWT"}`))
		_, err = svc.Validate(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestJWTService_Malformed(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newTestService(t, clock, 0)

	signMap := func(m jwt.MapClaims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, m).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return raw
	}
	exp := t0.Add(time.Hour).Unix()
	iat := t0.Unix()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "one segment", raw: "abc"},
		{name: "garbage segments", raw: "a.b.c"},
		{name: "four segments", raw: "a.b.c.d"},
		{name: "unknown role", raw: signMap(jwt.MapClaims{"sub": "alice", "role": "root", "exp": exp, "iat": iat})},
		{name: "missing role", raw: signMap(jwt.MapClaims{"sub": "alice", "exp": exp, "iat": iat})},
		{name: "missing subject", raw: signMap(jwt.MapClaims{"role": "visualizador", "exp": exp, "iat": iat})},
		{name: "missing exp", raw: signMap(jwt.MapClaims{"sub": "alice", "role": "visualizador", "iat": iat})},
		{name: "issued in the future", raw: signMap(jwt.MapClaims{"sub": "alice", "role": "visualizador", "exp": exp, "iat": exp})},
		{name: "exp not a number", raw: signMap(jwt.MapClaims{"sub": "alice", "role": "visualizador", "exp": "soon", "iat": iat})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestJWTService_Issuer(t *testing.T) {
	clock := &fakeClock{now: t0}
	withIssuer, err := NewJWTService(Options{Secret: testSecret, Issuer: "admin-panel", Now: clock.Now})
	require.NoError(t, err)
	without := newTestService(t, clock, 0)

	tok, err := withIssuer.Issue(alice(), time.Minute, models.AccessToken)
	require.NoError(t, err)
	claims, err := withIssuer.Validate(tok.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "admin-panel", claims.Issuer)

	foreign, err := without.Issue(alice(), time.Minute, models.AccessToken)
	require.NoError(t, err)
	_, err = withIssuer.Validate(foreign.SignedString)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestJWTService_SignRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t, &fakeClock{now: t0}, 0)

	_, err := svc.Sign(models.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
	assert.Error(t, err)
}
