package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// UpdateEmail changes the account address after re-authenticating with the
// password. A fresh token pair is issued because the subject claim changed;
// old tokens become semantically stale though not cryptographically revoked.
type UpdateEmail struct {
	clients     ports.ClientService
	emailPolicy ports.EmailValidator
}

func NewUpdateEmail(clients ports.ClientService, emailPolicy ports.EmailValidator) *UpdateEmail {
	return &UpdateEmail{clients: clients, emailPolicy: emailPolicy}
}

func (uc *UpdateEmail) Execute(ctx context.Context, oldEmail, newEmail, password string) (*domain.Client, *domain.Token, error) {
	client, err := uc.clients.GetByEmail(ctx, oldEmail)
	if err != nil {
		return nil, nil, err
	}
	if err := uc.clients.ValidatePassword(client.Password, password); err != nil {
		return nil, nil, err
	}

	if err := uc.emailPolicy.Validate(ctx, newEmail, &oldEmail); err != nil {
		return nil, nil, err
	}

	if err := uc.clients.UpdateEmail(ctx, client.ID, newEmail); err != nil {
		return nil, nil, err
	}
	updated, err := uc.clients.GetByID(ctx, client.ID)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := uc.clients.GenerateTokens(updated)
	if err != nil {
		return nil, nil, err
	}
	return updated, tokens, nil
}
