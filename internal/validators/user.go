package validators

import (
	"context"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/MKhiriev/admin-panel/models"
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldRole     = "role"
)

// maxEmailLength matches the width of the users.email column.
const maxEmailLength = 120

// UserValidator checks the shape of a registration request. The password is
// not its concern; see [PasswordValidator].
type UserValidator struct {
	username models.UsernamePolicy
}

// NewUserValidator returns a [Validator] for [models.RegisterRequest].
func NewUserValidator(username models.UsernamePolicy) Validator {
	return &UserValidator{username: username}
}

// Validate implements [Validator]. With no field names every field is
// checked; otherwise only the named ones.
func (v *UserValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var req models.RegisterRequest
	switch value := obj.(type) {
	case models.RegisterRequest:
		req = value
	case *models.RegisterRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		req = *value
	default:
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldRole}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldUsername:
			err = v.validateUsername(req.Username)
		case FieldEmail:
			err = validateEmail(req.Email)
		case FieldRole:
			err = validateRole(req.Role)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *UserValidator) validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < v.username.MinLength || n > v.username.MaxLength {
		return fmt.Errorf("%w: length must be between %d and %d", ErrInvalidUsername, v.username.MinLength, v.username.MaxLength)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return fmt.Errorf("%w: must be 1 to %d characters", ErrInvalidEmail, maxEmailLength)
	}

	// reject display-name forms like "Alice <a@x>"
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: not an address", ErrInvalidEmail)
	}

	return nil
}

func validateRole(role string) error {
	if _, err := models.ParseRole(role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRole, err)
	}
	return nil
}
