package domain

// TokenType distinguishes short-lived access tokens from long-lived refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Token is a signed token pair. RefreshToken is empty when only the access
// token was (re)issued.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
