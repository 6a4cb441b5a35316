package models

import "time"

// User represents a panel operator account.
//
// PasswordHash holds an opaque verifier produced by the credential vault and
// is never serialised; logging a User with zerolog's Any is therefore safe.
type User struct {
	// ID is assigned by the store on first persistence and never changes.
	ID int64 `json:"id"`

	// Username is unique (case-sensitive) and used to log in.
	Username string `json:"username"`

	// Email is unique across all accounts.
	Email string `json:"email"`

	// PasswordHash is the self-describing verifier of the user's password.
	PasswordHash string `json:"-"`

	// Role is the single role granted to the account.
	Role Role `json:"role"`

	// CreatedAt is set once, at creation.
	CreatedAt time.Time `json:"created_at"`

	// LastLoginAt is updated on every successful authentication.
	LastLoginAt *time.Time `json:"last_login,omitempty"`

	// FailedAttempts counts consecutive failed logins since the last success
	// or lockout.
	FailedAttempts int `json:"-"`

	// LockedUntil is set when the lockout threshold is reached.
	LockedUntil *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// LockedAt reports whether the account is inside its lockout window at now.
func (u User) LockedAt(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Identity is the caller resolved from a presented bearer token: the fresh
// user record plus the claims the token carried.
type Identity struct {
	User   User
	Claims Claims
}
