package models

import "time"

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login or refresh. RefreshToken
// is omitted on refresh, since refresh tokens are not rotated.
type LoginResponse struct {
	AccessToken  string `json:"access_token" yaml:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	UserRole     string `json:"user_role" yaml:"user_role"`
}

// RefreshRequest is the body of POST /user/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest is the body of POST /user/register.
//
// Role is kept as the raw wire string so the role gate runs before the value
// is parsed.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterResponse is returned with 201 Created.
type RegisterResponse struct {
	Msg    string `json:"msg" yaml:"msg"`
	UserID int64  `json:"user_id" yaml:"user_id"`
}

// ChangePasswordRequest is the body of POST /user/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ProfileResponse is returned by GET /user/profile.
type ProfileResponse struct {
	Username  string     `json:"username" yaml:"username"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role" yaml:"role"`
	LastLogin *time.Time `json:"last_login" yaml:"last_login"`
}

// MessageResponse is the generic body for plain acknowledgements and errors.
type MessageResponse struct {
	Msg        string   `json:"msg"`
	Violations []string `json:"violations,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status" yaml:"status"`
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	Commit    string `json:"commit" yaml:"commit"`
}
