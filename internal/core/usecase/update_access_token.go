package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// UpdateAccessToken exchanges a refresh token for a new access token bound
// to the same device id. The refresh token is not rotated.
type UpdateAccessToken struct {
	clients ports.ClientService
}

func NewUpdateAccessToken(clients ports.ClientService) *UpdateAccessToken {
	return &UpdateAccessToken{clients: clients}
}

func (uc *UpdateAccessToken) Execute(ctx context.Context, refreshToken string) (*domain.Token, error) {
	tokenType, err := uc.clients.TokenType(refreshToken)
	if err != nil {
		return nil, err
	}
	if tokenType != domain.TokenTypeRefresh {
		return nil, domain.ErrInvalidTokenType
	}

	email, err := uc.clients.ClientEmail(refreshToken)
	if err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	deviceID, err := uc.clients.DeviceID(refreshToken)
	if err != nil {
		return nil, err
	}
	return uc.clients.UpdateAccessToken(client, deviceID)
}
