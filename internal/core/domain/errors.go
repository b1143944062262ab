package domain

import "errors"

// Account and credential errors. The generic wording of
// ErrInvalidCredentials is deliberate: login must not reveal whether the
// email or the password was wrong.
var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientExists       = errors.New("client with this email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrClientUpdateFailed = errors.New("client update failed")
	ErrRoleMismatch       = errors.New("client role does not match the role required for this operation")
)

// Token errors.
var (
	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenClaimMissing = errors.New("required token claim is missing")
	ErrInvalidTokenType  = errors.New("invalid token type")
)

// Credential policy violations. Each carries the human-readable reason
// surfaced to the caller.
var (
	ErrPasswordPattern = errors.New(
		"password does not meet the required security criteria: it must be at least 8 characters long, " +
			"contain both uppercase and lowercase letters, at least one digit, " +
			"and can contain only these symbols !@#$%^:;.,&*?`~'\"+=-_()")
	ErrPasswordsNotMatching = errors.New("provided passwords do not match")
	ErrPasswordsSimilar     = errors.New("old password and the new one are similar")
	ErrEmailPattern         = errors.New("email does not meet the required pattern: example@gmail.com (only @gmail.com)")
	ErrEmailsSimilar        = errors.New("old email and the new one are similar")
)

// IsPolicyViolation reports whether err is a credential policy violation,
// as opposed to an infrastructure or auth failure.
func IsPolicyViolation(err error) bool {
	switch {
	case errors.Is(err, ErrPasswordPattern),
		errors.Is(err, ErrPasswordsNotMatching),
		errors.Is(err, ErrPasswordsSimilar),
		errors.Is(err, ErrEmailPattern),
		errors.Is(err, ErrEmailsSimilar):
		return true
	}
	return false
}
