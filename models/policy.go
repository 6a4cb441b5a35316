package models

import "time"

// PasswordPolicy describes the rules a candidate password must satisfy.
// Length bounds are inclusive and counted in code points.
type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
}

// DefaultPasswordPolicy returns the policy used when nothing is configured.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
}

// UsernamePolicy bounds the length of usernames, in code points.
type UsernamePolicy struct {
	MinLength int
	MaxLength int
}

// LockoutPolicy controls how many consecutive failed logins lock an account
// and for how long.
type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}
