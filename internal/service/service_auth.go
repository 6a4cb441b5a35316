// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/admin-panel/internal/crypto"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/store"
	"github.com/MKhiriev/admin-panel/internal/token"
	"github.com/MKhiriev/admin-panel/internal/validators"
	"github.com/MKhiriev/admin-panel/models"
)

// AuthSettings carries the token lifetimes and lockout policy of
// [NewAuthService].
type AuthSettings struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Lockout         models.LockoutPolicy

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// authService is the concrete implementation of [AuthService].
//
// It holds no per-user state: every operation reads the user record fresh
// from the repository and writes it back in a single Update.
type authService struct {
	users  store.UserRepository
	hasher crypto.PasswordHasher
	tokens token.Service

	// passwords is the password policy; inputs checks username, email and
	// role of new accounts.
	passwords validators.Validator
	inputs    validators.Validator

	accessTTL  time.Duration
	refreshTTL time.Duration
	lockout    models.LockoutPolicy

	// dummyVerifier is verified against for unknown usernames so that the
	// response time does not reveal whether the account exists.
	dummyVerifier string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] from its collaborators.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	users store.UserRepository,
	hasher crypto.PasswordHasher,
	tokens token.Service,
	passwords validators.Validator,
	inputs validators.Validator,
	settings AuthSettings,
	logger *logger.Logger,
) AuthService {
	now := settings.Now
	if now == nil {
		now = time.Now
	}

	logger.Debug().
		Dur("access_ttl", settings.AccessTokenTTL).
		Dur("refresh_ttl", settings.RefreshTokenTTL).
		Int("max_login_attempts", settings.Lockout.MaxAttempts).
		Msg("creating auth service")

	return &authService{
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		passwords:     passwords,
		inputs:        inputs,
		accessTTL:     settings.AccessTokenTTL,
		refreshTTL:    settings.RefreshTokenTTL,
		lockout:       settings.Lockout,
		dummyVerifier: crypto.DummyVerifier(hasher),
		now:           now,
		logger:        logger,
	}
}

// Authenticate implements [AuthService].
//
// A successful login resets the failure counter, clears any lock, records
// the login time and, when the stored verifier is of an older scheme or
// cost, replaces it with a fresh one in the same update.
//
// The counter update is read-modify-write without a transaction: concurrent
// failures may overshoot MaxAttempts before the lock is written.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.Authenticate").Str("username", username).Logger()

	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			if a.dummyVerifier != "" {
				a.hasher.Verify(password, a.dummyVerifier)
			}
			log.Warn().Str("kind", string(KindInvalidCredentials)).Msg("login rejected: unknown user")
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, a.storeFailure(ctx, "*authService.Authenticate", err)
	}

	now := a.now()
	if user.LockedAt(now) {
		retryAfter := user.LockedUntil.Sub(now)
		log.Warn().Str("kind", string(KindLocked)).Dur("retry_after", retryAfter).Msg("login rejected: account locked")
		return models.User{}, &Error{Kind: KindLocked, RetryAfter: retryAfter}
	}
	// a lock that has run out is cleared on whichever path writes next
	user.LockedUntil = nil

	if err = ctx.Err(); err != nil {
		return models.User{}, a.storeFailure(ctx, "*authService.Authenticate", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		user.FailedAttempts++
		if user.FailedAttempts >= a.lockout.MaxAttempts {
			until := now.Add(a.lockout.Duration)
			user.LockedUntil = &until
			user.FailedAttempts = 0
			log.Warn().Time("locked_until", until).Msg("account locked after repeated failures")
		}

		if err = a.users.Update(ctx, user); err != nil {
			return models.User{}, a.storeFailure(ctx, "*authService.Authenticate", err)
		}

		log.Warn().Str("kind", string(KindInvalidCredentials)).Int("failed_attempts", user.FailedAttempts).Msg("login rejected: wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	user.LastLoginAt = &now
	user.FailedAttempts = 0

	if a.hasher.NeedsRehash(user.PasswordHash) {
		if verifier, hashErr := a.hasher.Hash(password); hashErr == nil {
			user.PasswordHash = verifier
			log.Info().Msg("password verifier upgraded")
		} else {
			log.Err(hashErr).Msg("error upgrading password verifier")
		}
	}

	if err = a.users.Update(ctx, user); err != nil {
		return models.User{}, a.storeFailure(ctx, "*authService.Authenticate", err)
	}

	log.Info().Str("role", user.Role.String()).Msg("login succeeded")
	return user, nil
}

// Register implements [AuthService]. Checks run in a fixed order: role
// gate, input shape, password policy, then the insert.
func (a *authService) Register(ctx context.Context, caller models.Claims, req models.RegisterRequest) (int64, error) {
	log := logger.FromContext(ctx)

	if caller.Role != models.RoleAdminMaster {
		log.Warn().
			Str("func", "*authService.Register").
			Str("caller", caller.Subject).
			Str("caller_role", caller.Role.String()).
			Str("kind", string(KindForbidden)).
			Msg("registration rejected: caller is not an admin master")
		return 0, ErrForbidden
	}

	return a.createUser(ctx, req)
}

// CreateAdmin implements [AuthService].
func (a *authService) CreateAdmin(ctx context.Context, username, email, password string) (int64, error) {
	return a.createUser(ctx, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleAdminMaster.String(),
	})
}

func (a *authService) createUser(ctx context.Context, req models.RegisterRequest) (int64, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.createUser").Str("username", req.Username).Logger()

	if err := a.inputs.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("kind", string(KindInvalidInput)).Msg("registration rejected")
		return 0, &Error{Kind: KindInvalidInput, Detail: err.Error()}
	}
	// validated above
	role, _ := models.ParseRole(req.Role)

	if err := a.checkPassword(ctx, req.Password); err != nil {
		log.Warn().Str("kind", string(KindWeakPassword)).Msg("registration rejected")
		return 0, err
	}

	verifier, err := a.hash(ctx, req.Password)
	if err != nil {
		return 0, err
	}

	id, err := a.users.Insert(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: verifier,
		Role:         role,
		CreatedAt:    a.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn().Str("kind", string(KindDuplicate)).Msg("registration rejected")
			return 0, ErrDuplicate
		}
		return 0, a.storeFailure(ctx, "*authService.createUser", err)
	}

	log.Info().Int64("user_id", id).Str("role", role.String()).Msg("user registered")
	return id, nil
}

// ChangePassword implements [AuthService].
func (a *authService) ChangePassword(ctx context.Context, caller models.Claims, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx).With().Str("func", "*authService.ChangePassword").Str("username", caller.Subject).Logger()

	user, err := a.users.FindByUsername(ctx, caller.Subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn().Str("kind", string(KindUnknownSubject)).Msg("password change rejected")
			return ErrUnknownSubject
		}
		return a.storeFailure(ctx, "*authService.ChangePassword", err)
	}

	if err = ctx.Err(); err != nil {
		return a.storeFailure(ctx, "*authService.ChangePassword", err)
	}
	if !a.hasher.Verify(oldPassword, user.PasswordHash) {
		log.Warn().Str("kind", string(KindInvalidCredentials)).Msg("password change rejected: wrong old password")
		return ErrInvalidCredentials
	}

	if err = a.checkPassword(ctx, newPassword); err != nil {
		log.Warn().Str("kind", string(KindWeakPassword)).Msg("password change rejected")
		return err
	}

	if user.PasswordHash, err = a.hash(ctx, newPassword); err != nil {
		return err
	}

	if err = a.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUnknownSubject
		}
		return a.storeFailure(ctx, "*authService.ChangePassword", err)
	}

	log.Info().Msg("password changed")
	return nil
}

// Identify implements [AuthService]. Refresh tokens are not accepted as
// bearer credentials.
func (a *authService) Identify(ctx context.Context, rawToken string) (models.Identity, error) {
	claims, err := a.validateToken(ctx, rawToken)
	if err != nil {
		return models.Identity{}, err
	}

	if claims.Type == models.RefreshToken {
		logger.FromContext(ctx).Warn().
			Str("func", "*authService.Identify").
			Str("username", claims.Subject).
			Str("kind", string(KindMalformed)).
			Msg("refresh token presented as bearer")
		return models.Identity{}, ErrMalformed
	}

	user, err := a.findSubject(ctx, "*authService.Identify", claims.Subject)
	if err != nil {
		return models.Identity{}, err
	}

	return models.Identity{User: user, Claims: claims}, nil
}

// IssueTokens implements [AuthService].
func (a *authService) IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := a.issue(ctx, user, a.accessTTL, models.AccessToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := a.issue(ctx, user, a.refreshTTL, models.RefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh implements [AuthService].
func (a *authService) Refresh(ctx context.Context, rawRefresh string) (models.TokenPair, error) {
	claims, err := a.validateToken(ctx, rawRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	if claims.Type != models.RefreshToken {
		logger.FromContext(ctx).Warn().
			Str("func", "*authService.Refresh").
			Str("username", claims.Subject).
			Str("kind", string(KindMalformed)).
			Msg("refresh rejected: not a refresh token")
		return models.TokenPair{}, ErrMalformed
	}

	user, err := a.findSubject(ctx, "*authService.Refresh", claims.Subject)
	if err != nil {
		return models.TokenPair{}, err
	}

	access, err := a.issue(ctx, user, a.accessTTL, models.AccessToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{
		Access:  access,
		Refresh: models.Token{Claims: claims, SignedString: rawRefresh},
	}, nil
}

func (a *authService) validateToken(ctx context.Context, raw string) (models.Claims, error) {
	claims, err := a.tokens.Validate(raw)
	if err == nil {
		return claims, nil
	}

	var kindErr *Error
	switch {
	case errors.Is(err, token.ErrExpired):
		kindErr = ErrExpired
	case errors.Is(err, token.ErrBadSignature):
		kindErr = ErrBadSignature
	default:
		kindErr = ErrMalformed
	}

	logger.FromContext(ctx).Warn().Err(err).Str("func", "*authService.validateToken").Str("kind", string(kindErr.Kind)).Msg("token rejected")
	return models.Claims{}, kindErr
}

func (a *authService) findSubject(ctx context.Context, fn, username string) (models.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.FromContext(ctx).Warn().Str("func", fn).Str("username", username).Str("kind", string(KindUnknownSubject)).Msg("token subject no longer exists")
			return models.User{}, ErrUnknownSubject
		}
		return models.User{}, a.storeFailure(ctx, fn, err)
	}
	return user, nil
}

func (a *authService) issue(ctx context.Context, user models.User, ttl time.Duration, typ models.TokenType) (models.Token, error) {
	t, err := a.tokens.Issue(user, ttl, typ)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.issue").Str("username", user.Username).Msg("error issuing token")
		return models.Token{}, ErrInternal
	}
	return t, nil
}

// checkPassword runs the password policy and converts its verdict into a
// KindWeakPassword error.
func (a *authService) checkPassword(ctx context.Context, password string) error {
	err := a.passwords.Validate(ctx, password)
	if err == nil {
		return nil
	}

	var policyErr *validators.PolicyError
	if errors.As(err, &policyErr) {
		return &Error{Kind: KindWeakPassword, Violations: policyErr.Violations}
	}
	return &Error{Kind: KindWeakPassword}
}

func (a *authService) hash(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", a.storeFailure(ctx, "*authService.hash", err)
	}

	verifier, err := a.hasher.Hash(password)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.hash").Msg("error hashing password")
		return "", ErrInternal
	}
	return verifier, nil
}

// storeFailure logs the cause of a store or cancellation failure and
// returns the caller-facing error.
func (a *authService) storeFailure(ctx context.Context, fn string, cause error) error {
	logger.FromContext(ctx).Err(cause).Str("func", fn).Str("kind", string(KindStoreUnavailable)).Msg("user store failure")
	return ErrStoreUnavailable
}
