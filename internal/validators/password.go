// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/admin-panel/models"
)

// Violation names a single password rule that a candidate failed.
type Violation string

const (
	TooShort  Violation = "TOO_SHORT"
	TooLong   Violation = "TOO_LONG"
	NoUpper   Violation = "NO_UPPER"
	NoLower   Violation = "NO_LOWER"
	NoDigit   Violation = "NO_DIGIT"
	NoSpecial Violation = "NO_SPECIAL"
)

// CheckPassword evaluates password against policy and returns every failed
// rule, in a fixed order. A nil result means the password is acceptable.
//
// The result depends only on its arguments. Any Unicode number counts as a
// digit, superscripts and fractions included. A character is special when it
// is neither a letter nor a number, so whitespace counts as special.
func CheckPassword(password string, policy models.PasswordPolicy) []Violation {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasDigit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			hasSpecial = true
		}
	}

	length := utf8.RuneCountInString(password)

	var violations []Violation
	if length < policy.MinLength {
		violations = append(violations, TooShort)
	}
	if policy.MaxLength > 0 && length > policy.MaxLength {
		violations = append(violations, TooLong)
	}
	if policy.RequireUppercase && !hasUpper {
		violations = append(violations, NoUpper)
	}
	if policy.RequireLowercase && !hasLower {
		violations = append(violations, NoLower)
	}
	if policy.RequireNumbers && !hasDigit {
		violations = append(violations, NoDigit)
	}
	if policy.RequireSpecial && !hasSpecial {
		violations = append(violations, NoSpecial)
	}

	return violations
}

// PasswordValidator adapts [CheckPassword] to the [Validator] interface.
type PasswordValidator struct {
	policy models.PasswordPolicy
}

// NewPasswordValidator returns a [Validator] that accepts plain password
// strings and reports failures as *[PolicyError].
func NewPasswordValidator(policy models.PasswordPolicy) Validator {
	return &PasswordValidator{policy: policy}
}

// Validate implements [Validator]. Field names are ignored: a password is a
// single value.
func (v *PasswordValidator) Validate(_ context.Context, obj any, _ ...string) error {
	var password string
	switch value := obj.(type) {
	case string:
		password = value
	case *string:
		if value == nil {
			return ErrUnsupportedType
		}
		password = *value
	default:
		return ErrUnsupportedType
	}

	if violations := CheckPassword(password, v.policy); len(violations) > 0 {
		return &PolicyError{Violations: violations}
	}

	return nil
}
