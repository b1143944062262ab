package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// scoreStep is the fixed per-vote adjustment. No floor or ceiling applies;
// repeated dislikes can drive a score negative.
const scoreStep = 0.01

// UpdateScore adjusts the client's rating by one vote and returns the
// re-fetched entity.
type UpdateScore struct {
	clients ports.ClientService
}

func NewUpdateScore(clients ports.ClientService) *UpdateScore {
	return &UpdateScore{clients: clients}
}

func (uc *UpdateScore) Execute(ctx context.Context, email string, liked bool) (*domain.Client, error) {
	client, err := uc.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	score := client.Score - scoreStep
	if liked {
		score = client.Score + scoreStep
	}
	if err := uc.clients.UpdateScore(ctx, client.ID, score); err != nil {
		return nil, err
	}

	return uc.clients.GetByID(ctx, client.ID)
}
