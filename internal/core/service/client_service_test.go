package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/uzineck/sep-backend/internal/core/auth"
	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

type stubClientRepo struct {
	seq     int
	clients map[string]*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	for _, existing := range r.clients {
		if existing.Email == client.Email {
			return nil, domain.ErrClientExists
		}
	}
	r.seq++
	stored := cloneClient(client)
	stored.ID = fmt.Sprintf("client_%d", r.seq)
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.clients[stored.ID] = stored
	return cloneClient(stored), nil
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return cloneClient(c), nil
}

func (r *stubClientRepo) Exists(_ context.Context, email string) (bool, error) {
	for _, c := range r.clients {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubClientRepo) UpdateEmail(_ context.Context, id, email string) (int64, error) {
	c, ok := r.clients[id]
	if !ok {
		return 0, nil
	}
	c.Email = email
	c.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *stubClientRepo) UpdatePassword(_ context.Context, id, hashedPassword string) (int64, error) {
	c, ok := r.clients[id]
	if !ok {
		return 0, nil
	}
	c.Password = hashedPassword
	c.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *stubClientRepo) UpdateCredentials(_ context.Context, id, firstName, lastName, middleName string) (int64, error) {
	c, ok := r.clients[id]
	if !ok {
		return 0, nil
	}
	c.FirstName, c.LastName, c.MiddleName = firstName, lastName, middleName
	c.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *stubClientRepo) UpdateRole(_ context.Context, id string, role domain.Role) (int64, error) {
	c, ok := r.clients[id]
	if !ok {
		return 0, nil
	}
	c.Role = role
	c.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *stubClientRepo) UpdateScore(_ context.Context, id string, score float64) (int64, error) {
	c, ok := r.clients[id]
	if !ok {
		return 0, nil
	}
	c.Score = score
	c.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func newTestService(repo ports.ClientRepository) *ClientService {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTTokenService("secret", 15*time.Minute, 24*time.Hour)
	return NewClientService(repo, hasher, tokens, zerolog.Nop())
}

func seedClient(t *testing.T, svc *ClientService, email, plainPassword string) *domain.Client {
	t.Helper()
	hash, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash(plainPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	client, err := svc.Create(context.Background(), ports.CreateClientRecord{
		FirstName:      "Ann",
		LastName:       "Petrenko",
		MiddleName:     "Olehivna",
		Email:          email,
		Role:           domain.RoleCreator,
		HashedPassword: hash,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func TestClientService_Create(t *testing.T) {
	svc := newTestService(newStubClientRepo())

	client := seedClient(t, svc, "ann@gmail.com", "Abcdef12")
	if client.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if client.Password == "Abcdef12" {
		t.Fatalf("password stored as plaintext")
	}
	if client.Role != domain.RoleCreator {
		t.Fatalf("unexpected role %q", client.Role)
	}
}

func TestClientService_Create_Duplicate(t *testing.T) {
	svc := newTestService(newStubClientRepo())
	seedClient(t, svc, "ann@gmail.com", "Abcdef12")

	_, err := svc.Create(context.Background(), ports.CreateClientRecord{
		Email:          "ann@gmail.com",
		Role:           domain.RoleCreator,
		HashedPassword: "irrelevant",
	})
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestClientService_ValidatePassword(t *testing.T) {
	svc := newTestService(newStubClientRepo())
	client := seedClient(t, svc, "ann@gmail.com", "Abcdef12")

	if err := svc.ValidatePassword(client.Password, "Abcdef12"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := svc.ValidatePassword(client.Password, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClientService_CheckClientRole(t *testing.T) {
	svc := newTestService(newStubClientRepo())

	if err := svc.CheckClientRole(domain.RoleAdmin, domain.RoleAdmin); err != nil {
		t.Fatalf("matching role rejected: %v", err)
	}
	// exact match only, no hierarchy
	if err := svc.CheckClientRole(domain.RoleAdmin, domain.RoleManager); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

func TestClientService_GenerateTokens(t *testing.T) {
	svc := newTestService(newStubClientRepo())
	client := seedClient(t, svc, "ann@gmail.com", "Abcdef12")

	tokens, err := svc.GenerateTokens(client)
	if err != nil {
		t.Fatalf("GenerateTokens returned error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", tokens)
	}

	accessDevice, err := svc.DeviceID(tokens.AccessToken)
	if err != nil {
		t.Fatalf("access device id: %v", err)
	}
	refreshDevice, err := svc.DeviceID(tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh device id: %v", err)
	}
	if accessDevice != refreshDevice {
		t.Fatalf("pair does not share a device id")
	}

	accessType, _ := svc.TokenType(tokens.AccessToken)
	refreshType, _ := svc.TokenType(tokens.RefreshToken)
	if accessType != domain.TokenTypeAccess || refreshType != domain.TokenTypeRefresh {
		t.Fatalf("unexpected token types %q / %q", accessType, refreshType)
	}
}

func TestClientService_UpdateAccessToken(t *testing.T) {
	svc := newTestService(newStubClientRepo())
	client := seedClient(t, svc, "ann@gmail.com", "Abcdef12")

	tokens, err := svc.UpdateAccessToken(client, "dev-1")
	if err != nil {
		t.Fatalf("UpdateAccessToken returned error: %v", err)
	}
	if tokens.RefreshToken != "" {
		t.Fatalf("refresh token should not be reissued")
	}
	if deviceID, _ := svc.DeviceID(tokens.AccessToken); deviceID != "dev-1" {
		t.Fatalf("expected caller-supplied device id, got %q", deviceID)
	}
}

func TestClientService_UpdateMissingClient(t *testing.T) {
	svc := newTestService(newStubClientRepo())
	ctx := context.Background()

	if err := svc.UpdateEmail(ctx, "ghost", "new@gmail.com"); !errors.Is(err, domain.ErrClientUpdateFailed) {
		t.Fatalf("expected ErrClientUpdateFailed, got %v", err)
	}
	if err := svc.UpdateScore(ctx, "ghost", 1.0); !errors.Is(err, domain.ErrClientUpdateFailed) {
		t.Fatalf("expected ErrClientUpdateFailed, got %v", err)
	}
}

func TestClientService_Lookups(t *testing.T) {
	svc := newTestService(newStubClientRepo())
	client := seedClient(t, svc, "ann@gmail.com", "Abcdef12")
	ctx := context.Background()

	if got, err := svc.GetByEmail(ctx, "ann@gmail.com"); err != nil || got.ID != client.ID {
		t.Fatalf("GetByEmail mismatch: %+v (err %v)", got, err)
	}
	if got, err := svc.GetByID(ctx, client.ID); err != nil || got.Email != "ann@gmail.com" {
		t.Fatalf("GetByID mismatch: %+v (err %v)", got, err)
	}
	if _, err := svc.GetByEmail(ctx, "ghost@gmail.com"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	exists, err := svc.CheckClientExists(ctx, "ann@gmail.com")
	if err != nil || !exists {
		t.Fatalf("expected existing email, got %v (err %v)", exists, err)
	}
}
