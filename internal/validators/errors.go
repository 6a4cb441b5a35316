package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidRole     = errors.New("invalid role")
	ErrWeakPassword    = errors.New("password does not satisfy the policy")
)

// PolicyError reports every password rule a candidate failed.
// It unwraps to [ErrWeakPassword].
type PolicyError struct {
	Violations []Violation
}

func (e *PolicyError) Error() string {
	kinds := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		kinds = append(kinds, string(v))
	}
	return ErrWeakPassword.Error() + ": " + strings.Join(kinds, ", ")
}

func (e *PolicyError) Unwrap() error {
	return ErrWeakPassword
}
