// Package service implements the authentication and user-administration
// rules of the admin panel on top of the store, crypto and token packages.
//
// Every operation returns either a value or an [*Error] with one of the
// kinds in [ErrorKind]; lower-layer errors never leak through.
package service

import (
	"context"

	"github.com/MKhiriev/admin-panel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService authenticates operators and administers accounts.
type AuthService interface {
	// Authenticate checks a username and password. Unknown usernames and
	// wrong passwords fail identically; failures count towards lockout.
	Authenticate(ctx context.Context, username, password string) (models.User, error)

	// Register creates an account on behalf of caller, who must be an
	// admin master. It returns the new user id.
	Register(ctx context.Context, caller models.Claims, req models.RegisterRequest) (int64, error)

	// ChangePassword replaces the caller's password after checking the old
	// one. Failures here never count towards lockout.
	ChangePassword(ctx context.Context, caller models.Claims, oldPassword, newPassword string) error

	// Identify resolves an access token to its claims and the current user
	// record.
	Identify(ctx context.Context, rawToken string) (models.Identity, error)

	// IssueTokens issues an access and a refresh token for user.
	IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error)

	// Refresh exchanges a refresh token for a new access token carrying the
	// user's current role. The refresh token is handed back unchanged.
	Refresh(ctx context.Context, rawRefresh string) (models.TokenPair, error)

	// CreateAdmin creates an admin master without a caller. It is reached
	// only from the operator CLI, never over HTTP.
	CreateAdmin(ctx context.Context, username, email, password string) (int64, error)
}

// AppInfoService reports build metadata for health checks.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
