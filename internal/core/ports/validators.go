package ports

import "context"

// PasswordValidator checks a candidate password against the credential
// policy. verifyPassword and oldPassword are optional comparison values;
// rules that depend on an absent value silently no-op.
type PasswordValidator interface {
	Validate(password string, verifyPassword, oldPassword *string) error
}

// EmailValidator checks a candidate email against the policy. oldEmail is
// the optional current address when the validation guards an email change.
// The uniqueness rule consults the persistence boundary, hence the context.
type EmailValidator interface {
	Validate(ctx context.Context, email string, oldEmail *string) error
}
