package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

// AuthService implements registration, login and password rotation.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger

	allowSelfAssignedRole bool
}

type AuthOption func(*AuthService)

// WithSelfAssignedRoles lets public registration persist the submitted role.
// Without it the role field is ignored and the account is created roleless.
func WithSelfAssignedRoles() AuthOption {
	return func(s *AuthService) { s.allowSelfAssignedRole = true }
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if len(input.Password) < domain.MinPasswordLength {
		metrics.RegistrationsTotal.WithLabelValues("password_too_short").Inc()
		return nil, domain.ErrPasswordTooShort
	}

	email := domain.NormalizeEmail(input.Email)
	if err := ensureEmailAvailable(ctx, s.repo, email, ""); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyTaken) {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		}
		return nil, err
	}

	hash, err := hashPassword(ctx, s.hasher, input.Password)
	if err != nil {
		return nil, err
	}

	var role *domain.Role
	if input.Role != nil {
		if s.allowSelfAssignedRole {
			role = input.Role
		} else {
			s.logger.Debug().Str("email", email).Str("role", input.Role.String()).Msg("ignoring self-assigned role on registration")
		}
	}

	user, err := s.repo.Create(ctx, ports.NewUser{
		Email:        email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyTaken) {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.Principal())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login never distinguishes an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.loginFailed(email)
		}
		return nil, err
	}
	if user.PasswordHash == "" || !s.hasher.Compare(ctx, password, user.PasswordHash) {
		return nil, s.loginFailed(email)
	}

	token, err := s.tokens.Generate(user.Principal())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return &ports.AuthResult{
		User:               user,
		Token:              token,
		MustChangePassword: user.MustChangePassword(),
	}, nil
}

func (s *AuthService) loginFailed(email string) error {
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.logger.Warn().Str("email", email).Msg("login failed")
	return domain.ErrInvalidCredentials
}

// ChangePassword leaves the stored hash untouched unless the current
// password verifies.
func (s *AuthService) ChangePassword(ctx context.Context, input ports.ChangePasswordInput) error {
	if len(input.NewPassword) < domain.MinPasswordLength {
		metrics.PasswordChangesTotal.WithLabelValues("password_too_short").Inc()
		return domain.ErrPasswordTooShort
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user.PasswordHash == "" {
		return domain.ErrUserNotFound
	}
	if !s.hasher.Compare(ctx, input.CurrentPassword, user.PasswordHash) {
		metrics.PasswordChangesTotal.WithLabelValues("invalid_current_password").Inc()
		return domain.ErrInvalidCurrentPassword
	}

	hash, err := hashPassword(ctx, s.hasher, input.NewPassword)
	if err != nil {
		return err
	}
	if _, err := s.repo.Update(ctx, user.ID, ports.UserPatch{PasswordHash: &hash}); err != nil {
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}
