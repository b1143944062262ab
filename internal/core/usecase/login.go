package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// Login authenticates by email and password and issues a fresh token pair.
type Login struct {
	clients ports.ClientService
}

func NewLogin(clients ports.ClientService) *Login {
	return &Login{clients: clients}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*domain.Client, *domain.Token, error) {
	client, err := uc.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if err := uc.clients.ValidatePassword(client.Password, password); err != nil {
		return nil, nil, err
	}

	tokens, err := uc.clients.GenerateTokens(client)
	if err != nil {
		return nil, nil, err
	}
	return client, tokens, nil
}
