package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// CredentialValidator inspects signup credentials before anything is hashed or
// stored. A non-nil error rejects the registration.
type CredentialValidator func(email, password string) error

var validate = validator.New()

// EmailFormat rejects emails that are not syntactically valid addresses.
func EmailFormat() CredentialValidator {
	return func(email, _ string) error {
		if err := validate.Var(email, "required,email"); err != nil {
			return fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
		}
		return nil
	}
}

// MinPasswordLength rejects passwords shorter than n characters.
func MinPasswordLength(n int) CredentialValidator {
	return func(_, password string) error {
		if utf8.RuneCountInString(password) < n {
			return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, n)
		}
		return nil
	}
}
