// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the HTTP client of the admin panel API used by the
// panelctl operator tool.
//
// Non-2xx responses are mapped by mapHTTPError to an [*APIError] that wraps
// one of the sentinels in errors.go, so callers can branch with [errors.Is]
// (e.g. [ErrUnauthorized] for 401, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/MKhiriev/admin-panel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/api_adapter_mock.go -package=mock

// APIAdapter talks to a running admin panel server. Implementations keep
// the current access token and attach it to authenticated requests.
type APIAdapter interface {
	// SetToken stores the bearer token for subsequent authenticated
	// requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Login authenticates and stores the returned access token.
	Login(ctx context.Context, username, password string) (models.LoginResponse, error)

	// Refresh exchanges a refresh token for a new access token and stores it.
	Refresh(ctx context.Context, refreshToken string) (models.LoginResponse, error)

	// Register creates an account. The stored token must belong to an
	// admin master.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)

	// ChangePassword changes the password of the token's owner.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// Profile returns the token owner's profile.
	Profile(ctx context.Context) (models.ProfileResponse, error)

	// Health reports server status and build metadata.
	Health(ctx context.Context) (models.HealthResponse, error)
}
