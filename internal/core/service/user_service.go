package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

// UserService implements administrative user management.
type UserService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	generator ports.PasswordGenerator
	logger    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, generator ports.PasswordGenerator, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, generator: generator, logger: logger}
}

// CreateUser provisions an account. When no password is supplied a
// temporary one is generated and returned exactly once.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*ports.CreateUserResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if err := ensureEmailAvailable(ctx, s.repo, email, ""); err != nil {
		return nil, err
	}

	password := input.Password
	generated := ""
	if password == "" {
		var err error
		if password, err = s.generator.Generate(); err != nil {
			return nil, err
		}
		generated = password
	} else if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := hashPassword(ctx, s.hasher, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, ports.NewUser{
		Email:        email,
		Name:         input.Name,
		Role:         input.Role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	label := "supplied"
	if generated != "" {
		label = "generated"
	}
	metrics.UsersProvisionedTotal.WithLabelValues(label).Inc()
	s.logger.Info().Str("user_id", user.ID).Str("password", label).Msg("user provisioned")

	return &ports.CreateUserResult{User: user, GeneratedPassword: generated}, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser applies a partial update. An empty input returns the current
// record unchanged.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Empty() {
		return current, nil
	}

	patch := ports.UserPatch{Name: input.Name, Role: input.Role}
	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if email != current.Email {
			if err := ensureEmailAvailable(ctx, s.repo, email, current.ID); err != nil {
				return nil, err
			}
		}
		patch.Email = &email
	}

	updated, err := s.repo.Update(ctx, current.ID, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
