package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

// BootstrapAdmin makes sure an Admin account exists for email so a fresh
// deployment can reach the admin-only routes. It is a no-op when email is
// empty or already registered. The generated password is logged once.
func BootstrapAdmin(ctx context.Context, users ports.UserService, repo ports.UserRepository, email string, logger zerolog.Logger) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		logger.Debug().Str("email", email).Msg("bootstrap admin already present")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	res, err := users.CreateUser(ctx, ports.CreateUserInput{
		Email: email,
		Role:  domain.RolePtr(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}

	logger.Warn().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Str("temporary_password", res.GeneratedPassword).
		Msg("bootstrap admin created; change this password on first login")
	return nil
}
