// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	maxTokenLeeway = time.Minute

	// developmentSecret signs tokens when SECRET_KEY is unset outside
	// production. Tokens signed with it are worthless anywhere else.
	developmentSecret = "admin-panel-development-secret-do-not-use"
)

// applyDevelopmentDefaults fills in settings that have a development-only
// fallback.
func (cfg *StructuredConfig) applyDevelopmentDefaults() {
	if cfg.Security.SecretKey == "" && !cfg.IsProduction() {
		cfg.Security.SecretKey = developmentSecret
		cfg.Security.InsecureSecret = true
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: APP_ENV must be %q or %q, got %q", ErrInvalidAppConfigs, EnvDevelopment, EnvProduction, cfg.App.Env)
	}
	if cfg.App.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
			return fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalidAppConfigs, err)
		}
	}

	sec := cfg.Security
	switch {
	case sec.SecretKey == "":
		return fmt.Errorf("%w: SECRET_KEY is required in production", ErrInvalidSecurityConfigs)
	case sec.AccessTokenTTL <= 0:
		return fmt.Errorf("%w: ACCESS_TOKEN_TTL must be positive", ErrInvalidSecurityConfigs)
	case sec.RefreshTokenTTL <= sec.AccessTokenTTL:
		return fmt.Errorf("%w: REFRESH_TOKEN_TTL must be longer than ACCESS_TOKEN_TTL", ErrInvalidSecurityConfigs)
	case sec.TokenLeeway < 0 || sec.TokenLeeway > maxTokenLeeway:
		return fmt.Errorf("%w: TOKEN_LEEWAY must be between 0 and %s", ErrInvalidSecurityConfigs, maxTokenLeeway)
	case sec.MaxLoginAttempts < 1:
		return fmt.Errorf("%w: MAX_LOGIN_ATTEMPTS must be at least 1", ErrInvalidSecurityConfigs)
	case sec.LockoutDuration <= 0:
		return fmt.Errorf("%w: LOCKOUT_DURATION must be positive", ErrInvalidSecurityConfigs)
	}

	pol := cfg.Policy
	if pol.PasswordMinLength < 1 || pol.PasswordMinLength > pol.PasswordMaxLength {
		return fmt.Errorf("%w: need 0 < PASSWORD_MIN_LENGTH <= PASSWORD_MAX_LENGTH", ErrInvalidPolicyConfigs)
	}
	if pol.UsernameMinLength < 1 || pol.UsernameMinLength > pol.UsernameMaxLength {
		return fmt.Errorf("%w: need 0 < USERNAME_MIN_LENGTH <= USERNAME_MAX_LENGTH", ErrInvalidPolicyConfigs)
	}

	if cfg.Storage.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_ADDRESS and REQUEST_TIMEOUT are required", ErrInvalidServerConfigs)
	}

	return nil
}
