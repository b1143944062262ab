package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/uzineck/sep-backend/internal/core/domain"
)

// Issuer identifies tokens minted by this service.
const Issuer = "chmnu@auth_service"

// Claim keys used in the signed payload.
const (
	claimIssuer      = "iss"
	claimSubject     = "sub"
	claimTokenType   = "type"
	claimJTI         = "jti"
	claimIssuedAt    = "iat"
	claimNotBefore   = "nbf"
	claimExpiration  = "exp"
	claimDeviceID    = "device_id"
	claimClientEmail = "client_email"
	claimClientRole  = "client_roles"
)

// requiredClaims must be present for Decode to accept a token.
var requiredClaims = []string{claimTokenType, claimExpiration, claimIssuedAt, claimNotBefore, claimJTI}

// JWTTokenService signs and verifies HS256 tokens carrying the client's
// email and role alongside the registered claims. Tokens are stateless:
// nothing is persisted at issuance.
type JWTTokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTTokenService(secret string, accessTTL, refreshTTL time.Duration) *JWTTokenService {
	return &JWTTokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *JWTTokenService) CreateAccessToken(client *domain.Client, extra map[string]any) (string, error) {
	return s.sign(domain.TokenTypeAccess, client, extra, s.accessTTL)
}

func (s *JWTTokenService) CreateRefreshToken(client *domain.Client, extra map[string]any) (string, error) {
	return s.sign(domain.TokenTypeRefresh, client, extra, s.refreshTTL)
}

// sign builds the claim set: registered claims first, then caller extras,
// then the client identity claims. nbf defaults to iat unless the caller
// supplied one; exp is always nbf plus the per-type TTL.
func (s *JWTTokenService) sign(tokenType domain.TokenType, client *domain.Client, extra map[string]any, ttl time.Duration) (string, error) {
	now := time.Now().UTC().Unix()

	notBefore := now
	if v, ok := asInt64(extra[claimNotBefore]); ok {
		notBefore = v
	}

	claims := jwt.MapClaims{
		claimIssuer:     Issuer,
		claimSubject:    client.Email,
		claimTokenType:  string(tokenType),
		claimJTI:        uuid.NewString(),
		claimIssuedAt:   now,
		claimNotBefore:  notBefore,
		claimExpiration: notBefore + int64(ttl.Seconds()),
	}
	for k, v := range extra {
		claims[k] = v
	}
	claims[claimClientEmail] = client.Email
	claims[claimClientRole] = string(client.Role)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and the presence of the required claims.
// jwt/v5 rejects expired and not-yet-valid tokens during parsing; those
// surface as domain.ErrTokenInvalid like any other parse failure.
func (s *JWTTokenService) Decode(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	for _, k := range requiredClaims {
		if _, ok := claims[k]; !ok {
			return nil, domain.ErrTokenInvalid
		}
	}
	return claims, nil
}

// RawClaims decodes the payload without signature verification. Only for
// non-trust-sensitive introspection.
func (s *JWTTokenService) RawClaims(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (s *JWTTokenService) ClientEmail(token string) (string, error) {
	return s.stringClaim(token, claimClientEmail)
}

func (s *JWTTokenService) ClientRole(token string) (domain.Role, error) {
	v, err := s.stringClaim(token, claimClientRole)
	if err != nil {
		return "", err
	}
	role := domain.Role(v)
	if !role.Valid() {
		return "", domain.ErrTokenClaimMissing
	}
	return role, nil
}

func (s *JWTTokenService) TokenType(token string) (domain.TokenType, error) {
	v, err := s.stringClaim(token, claimTokenType)
	if err != nil {
		return "", err
	}
	switch t := domain.TokenType(v); t {
	case domain.TokenTypeAccess, domain.TokenTypeRefresh:
		return t, nil
	}
	return "", domain.ErrTokenClaimMissing
}

func (s *JWTTokenService) JTI(token string) (string, error) {
	return s.stringClaim(token, claimJTI)
}

func (s *JWTTokenService) DeviceID(token string) (string, error) {
	return s.stringClaim(token, claimDeviceID)
}

func (s *JWTTokenService) ExpirationTime(token string) (int64, error) {
	claims, err := s.Decode(token)
	if err != nil {
		return 0, err
	}
	exp, ok := asInt64(claims[claimExpiration])
	if !ok || exp == 0 {
		return 0, domain.ErrTokenClaimMissing
	}
	return exp, nil
}

func (s *JWTTokenService) stringClaim(token, key string) (string, error) {
	claims, err := s.Decode(token)
	if err != nil {
		return "", err
	}
	v, ok := claims[key].(string)
	if !ok || v == "" {
		return "", domain.ErrTokenClaimMissing
	}
	return v, nil
}

func (s *JWTTokenService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}

// asInt64 normalises numeric claim values, which arrive as float64 after
// JSON decoding but may be int64 when set locally.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
