package ports

import "github.com/uzineck/sep-backend/internal/core/domain"

// TokenIntrospector exposes typed accessors over a signed token string.
// Every accessor verifies the signature before reading and fails with
// domain.ErrTokenClaimMissing when the claim is absent, so tokens from other
// issuers (or after schema drift) are rejected even with a valid signature.
type TokenIntrospector interface {
	// RawClaims decodes the payload WITHOUT verifying the signature. It must
	// never be used for authorization decisions.
	RawClaims(token string) (map[string]any, error)

	ClientEmail(token string) (string, error)
	ClientRole(token string) (domain.Role, error)
	TokenType(token string) (domain.TokenType, error)
	JTI(token string) (string, error)
	DeviceID(token string) (string, error)
	// ExpirationTime returns the exp claim as UTC epoch seconds.
	ExpirationTime(token string) (int64, error)
}

// TokenService signs and verifies stateless tokens. Access and refresh
// tokens minted with the same extra device_id payload share that device id
// but carry independent jti values and TTLs.
type TokenService interface {
	CreateAccessToken(client *domain.Client, extra map[string]any) (string, error)
	CreateRefreshToken(client *domain.Client, extra map[string]any) (string, error)

	// Decode verifies the signature and requires presence of the
	// type, exp, iat, nbf and jti claims. Expired or not-yet-valid tokens
	// fail with domain.ErrTokenInvalid.
	Decode(token string) (map[string]any, error)

	TokenIntrospector
}
