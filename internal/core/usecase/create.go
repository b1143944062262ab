// Package usecase contains one single-purpose workflow per account
// operation. Use-cases validate first and mutate at most once, so a failed
// validation leaves no partial state. Errors from validators and services
// propagate untouched; the HTTP boundary owns the status-code mapping.
package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// CreateClientInput carries the sign-up fields. VerifyPassword is the
// confirmation the client typed twice.
type CreateClientInput struct {
	FirstName      string
	LastName       string
	MiddleName     string
	Role           domain.Role
	Email          string
	Password       string
	VerifyPassword string
}

// CreateClient registers a new account: email policy (pattern + uniqueness),
// password policy (pattern + confirmation), hash, persist.
type CreateClient struct {
	clients        ports.ClientService
	hasher         ports.PasswordHasher
	passwordPolicy ports.PasswordValidator
	emailPolicy    ports.EmailValidator
}

func NewCreateClient(clients ports.ClientService, hasher ports.PasswordHasher, passwordPolicy ports.PasswordValidator, emailPolicy ports.EmailValidator) *CreateClient {
	return &CreateClient{clients: clients, hasher: hasher, passwordPolicy: passwordPolicy, emailPolicy: emailPolicy}
}

func (uc *CreateClient) Execute(ctx context.Context, in CreateClientInput) (*domain.Client, error) {
	if err := uc.emailPolicy.Validate(ctx, in.Email, nil); err != nil {
		return nil, err
	}
	if err := uc.passwordPolicy.Validate(in.Password, &in.VerifyPassword, nil); err != nil {
		return nil, err
	}

	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	return uc.clients.Create(ctx, ports.CreateClientRecord{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		MiddleName:     in.MiddleName,
		Email:          in.Email,
		Role:           in.Role,
		HashedPassword: hashed,
	})
}
