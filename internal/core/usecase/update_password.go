package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/ports"
)

// UpdatePassword changes the account password after verifying the old one.
// The policy check runs with both the confirmation and the old password, so
// an unchanged password is rejected.
type UpdatePassword struct {
	clients        ports.ClientService
	hasher         ports.PasswordHasher
	passwordPolicy ports.PasswordValidator
}

func NewUpdatePassword(clients ports.ClientService, hasher ports.PasswordHasher, passwordPolicy ports.PasswordValidator) *UpdatePassword {
	return &UpdatePassword{clients: clients, hasher: hasher, passwordPolicy: passwordPolicy}
}

func (uc *UpdatePassword) Execute(ctx context.Context, email, oldPassword, newPassword, verifyPassword string) error {
	client, err := uc.clients.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := uc.clients.ValidatePassword(client.Password, oldPassword); err != nil {
		return err
	}
	if err := uc.passwordPolicy.Validate(newPassword, &verifyPassword, &oldPassword); err != nil {
		return err
	}

	hashed, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return uc.clients.UpdatePassword(ctx, client.ID, hashed)
}
