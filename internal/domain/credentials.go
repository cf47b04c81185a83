package domain

import (
	"strings"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// MinPasswordLength is enforced before the sign-in request is sent.
const MinPasswordLength = 6

// Credentials are what the user types into the sign-in form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the email shape and password length. Violations are
// reported as authentication errors so they render inline.
func (c Credentials) Validate() error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	return ValidatePassword(c.Password)
}

// ValidateEmail only requires an "@". Anything stricter is left to the
// backend.
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New(errors.ErrCodeInvalidEmail, "invalid email format")
	}
	return nil
}

// ValidatePassword enforces MinPasswordLength counted in characters.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return errors.New(errors.ErrCodePasswordTooShort, "password must be at least 6 characters")
	}
	return nil
}
