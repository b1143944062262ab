package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/uzineck/sep-backend/internal/core/domain"
)

func newTestService() *JWTTokenService {
	return NewJWTTokenService("test-secret", 15*time.Minute, 24*time.Hour)
}

func testClient() *domain.Client {
	return &domain.Client{
		ID:        "client_1",
		FirstName: "Ann",
		LastName:  "Petrenko",
		Email:     "ann@gmail.com",
		Role:      domain.RoleCreator,
	}
}

func TestCreateAccessToken_Claims(t *testing.T) {
	svc := newTestService()
	now := time.Now().UTC().Unix()

	token, err := svc.CreateAccessToken(testClient(), map[string]any{"device_id": "dev-1"})
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}

	tokenType, err := svc.TokenType(token)
	if err != nil || tokenType != domain.TokenTypeAccess {
		t.Fatalf("expected access type, got %v (err %v)", tokenType, err)
	}
	if email, err := svc.ClientEmail(token); err != nil || email != "ann@gmail.com" {
		t.Fatalf("unexpected email %q (err %v)", email, err)
	}
	if role, err := svc.ClientRole(token); err != nil || role != domain.RoleCreator {
		t.Fatalf("unexpected role %q (err %v)", role, err)
	}
	if deviceID, err := svc.DeviceID(token); err != nil || deviceID != "dev-1" {
		t.Fatalf("unexpected device id %q (err %v)", deviceID, err)
	}
	exp, err := svc.ExpirationTime(token)
	if err != nil {
		t.Fatalf("ExpirationTime returned error: %v", err)
	}
	if exp <= now {
		t.Fatalf("expiration %d not after now %d", exp, now)
	}
}

func TestCreateRefreshToken_Claims(t *testing.T) {
	svc := newTestService()

	token, err := svc.CreateRefreshToken(testClient(), map[string]any{"device_id": "dev-1"})
	if err != nil {
		t.Fatalf("CreateRefreshToken returned error: %v", err)
	}

	if tokenType, err := svc.TokenType(token); err != nil || tokenType != domain.TokenTypeRefresh {
		t.Fatalf("expected refresh type, got %v (err %v)", tokenType, err)
	}
	if _, err := svc.JTI(token); err != nil {
		t.Fatalf("JTI returned error: %v", err)
	}
}

func TestTokenPair_SharedDeviceIndependentJTI(t *testing.T) {
	svc := newTestService()
	client := testClient()
	extra := map[string]any{"device_id": uuid.NewString()}

	access, err := svc.CreateAccessToken(client, extra)
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}
	refresh, err := svc.CreateRefreshToken(client, extra)
	if err != nil {
		t.Fatalf("CreateRefreshToken returned error: %v", err)
	}

	accessDevice, _ := svc.DeviceID(access)
	refreshDevice, _ := svc.DeviceID(refresh)
	if accessDevice != refreshDevice {
		t.Fatalf("device ids differ: %q vs %q", accessDevice, refreshDevice)
	}

	accessJTI, _ := svc.JTI(access)
	refreshJTI, _ := svc.JTI(refresh)
	if accessJTI == refreshJTI {
		t.Fatalf("jti values should be independent per token")
	}

	accessType, _ := svc.TokenType(access)
	refreshType, _ := svc.TokenType(refresh)
	if accessType == refreshType {
		t.Fatalf("token types should differ")
	}
}

func TestDecode_ExpirationOrdering(t *testing.T) {
	svc := newTestService()

	token, err := svc.CreateAccessToken(testClient(), map[string]any{"device_id": "dev-1"})
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}
	claims, err := svc.Decode(token)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	exp := claims["exp"].(float64)
	iat := claims["iat"].(float64)
	nbf := claims["nbf"].(float64)
	if !(exp > iat) {
		t.Fatalf("exp %v not after iat %v", exp, iat)
	}
	if !(iat >= nbf) {
		t.Fatalf("iat %v before nbf %v", iat, nbf)
	}
	if claims["iss"] != Issuer {
		t.Fatalf("unexpected issuer %v", claims["iss"])
	}
	if claims["sub"] != "ann@gmail.com" {
		t.Fatalf("unexpected subject %v", claims["sub"])
	}
}

func TestDecode_TamperedToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.CreateAccessToken(testClient(), nil)
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Decode(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTTokenService("different-secret", 15*time.Minute, 24*time.Hour)

	token, err := svc.CreateAccessToken(testClient(), nil)
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}
	if _, err := other.Decode(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign secret, got %v", err)
	}
}

func TestDecode_ExpiredToken(t *testing.T) {
	svc := newTestService()
	past := time.Now().UTC().Add(-2 * time.Hour).Unix()

	expired := signRaw(t, "test-secret", jwt.MapClaims{
		"iss":  Issuer,
		"sub":  "ann@gmail.com",
		"type": "access",
		"jti":  uuid.NewString(),
		"iat":  past,
		"nbf":  past,
		"exp":  past + 60,
	})

	if _, err := svc.Decode(expired); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestDecode_MissingRequiredClaim(t *testing.T) {
	svc := newTestService()
	now := time.Now().UTC().Unix()

	// no jti
	token := signRaw(t, "test-secret", jwt.MapClaims{
		"type": "access",
		"iat":  now,
		"nbf":  now,
		"exp":  now + 3600,
	})

	if _, err := svc.Decode(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing jti, got %v", err)
	}
}

func TestExtractors_MissingClaim(t *testing.T) {
	svc := newTestService()
	now := time.Now().UTC().Unix()

	// structurally valid token without device_id or identity claims
	token := signRaw(t, "test-secret", jwt.MapClaims{
		"type": "access",
		"jti":  uuid.NewString(),
		"iat":  now,
		"nbf":  now,
		"exp":  now + 3600,
	})

	if _, err := svc.DeviceID(token); !errors.Is(err, domain.ErrTokenClaimMissing) {
		t.Fatalf("expected ErrTokenClaimMissing for device id, got %v", err)
	}
	if _, err := svc.ClientEmail(token); !errors.Is(err, domain.ErrTokenClaimMissing) {
		t.Fatalf("expected ErrTokenClaimMissing for email, got %v", err)
	}
	if _, err := svc.ClientRole(token); !errors.Is(err, domain.ErrTokenClaimMissing) {
		t.Fatalf("expected ErrTokenClaimMissing for role, got %v", err)
	}
}

func TestClientRole_UnknownValueRejected(t *testing.T) {
	svc := newTestService()
	now := time.Now().UTC().Unix()

	token := signRaw(t, "test-secret", jwt.MapClaims{
		"type":         "access",
		"jti":          uuid.NewString(),
		"iat":          now,
		"nbf":          now,
		"exp":          now + 3600,
		"client_email": "ann@gmail.com",
		"client_roles": "superuser",
	})

	if _, err := svc.ClientRole(token); !errors.Is(err, domain.ErrTokenClaimMissing) {
		t.Fatalf("expected ErrTokenClaimMissing for unknown role, got %v", err)
	}
}

func TestRawClaims_NoSignatureCheck(t *testing.T) {
	svc := newTestService()
	other := NewJWTTokenService("different-secret", time.Minute, time.Minute)

	token, err := other.CreateAccessToken(testClient(), map[string]any{"device_id": "dev-1"})
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}

	// verified decode must fail, raw introspection must still work
	if _, err := svc.Decode(token); err == nil {
		t.Fatalf("Decode accepted a foreign signature")
	}
	claims, err := svc.RawClaims(token)
	if err != nil {
		t.Fatalf("RawClaims returned error: %v", err)
	}
	if claims["client_email"] != "ann@gmail.com" {
		t.Fatalf("unexpected raw email %v", claims["client_email"])
	}
}

func TestSign_CallerSuppliedNotBefore(t *testing.T) {
	svc := newTestService()
	future := time.Now().UTC().Add(time.Hour).Unix()

	token, err := svc.CreateAccessToken(testClient(), map[string]any{"nbf": future})
	if err != nil {
		t.Fatalf("CreateAccessToken returned error: %v", err)
	}

	// not yet valid, so the verified decode rejects it
	if _, err := svc.Decode(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for future nbf, got %v", err)
	}

	claims, err := svc.RawClaims(token)
	if err != nil {
		t.Fatalf("RawClaims returned error: %v", err)
	}
	nbf := int64(claims["nbf"].(float64))
	exp := int64(claims["exp"].(float64))
	if nbf != future {
		t.Fatalf("nbf %d not honoured, want %d", nbf, future)
	}
	if exp != future+int64((15*time.Minute).Seconds()) {
		t.Fatalf("exp %d not nbf+ttl", exp)
	}
}

func signRaw(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign raw token: %v", err)
	}
	return token
}
