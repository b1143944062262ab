package validation

import (
	"strings"
	"unicode"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

const passwordAllowedSymbols = "!@#$%^:;.,&*?`~'\"+=-_()"

// PasswordPatternRule enforces the password complexity policy: at least 8
// characters, one uppercase, one lowercase, one digit, and only letters,
// digits or the restricted symbol set.
type PasswordPatternRule struct{}

func (PasswordPatternRule) Validate(password string, _, _ *string) error {
	if len(password) < 8 {
		return domain.ErrPasswordPattern
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			hasUpper = true
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordAllowedSymbols, r):
		default:
			return domain.ErrPasswordPattern
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.ErrPasswordPattern
	}
	return nil
}

// MatchingVerifyPasswordRule checks the confirmation field. No-ops when no
// confirmation was supplied.
type MatchingVerifyPasswordRule struct{}

func (MatchingVerifyPasswordRule) Validate(password string, verifyPassword, _ *string) error {
	if verifyPassword != nil && password != *verifyPassword {
		return domain.ErrPasswordsNotMatching
	}
	return nil
}

// SimilarOldAndNewPasswordRule rejects a new password equal to the current
// one. This guards against "password unchanged", not against history reuse.
// No-ops when the old password was not supplied.
type SimilarOldAndNewPasswordRule struct{}

func (SimilarOldAndNewPasswordRule) Validate(password string, _, oldPassword *string) error {
	if oldPassword != nil && password == *oldPassword {
		return domain.ErrPasswordsSimilar
	}
	return nil
}

// ComposedPasswordValidator runs its rules in declared order and stops at
// the first violation.
type ComposedPasswordValidator struct {
	rules []ports.PasswordValidator
}

func NewComposedPasswordValidator(rules ...ports.PasswordValidator) *ComposedPasswordValidator {
	return &ComposedPasswordValidator{rules: rules}
}

func (v *ComposedPasswordValidator) Validate(password string, verifyPassword, oldPassword *string) error {
	for _, rule := range v.rules {
		if err := rule.Validate(password, verifyPassword, oldPassword); err != nil {
			return err
		}
	}
	return nil
}
