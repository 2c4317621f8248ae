package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     *string
	Role     *domain.Role
}

type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User               *domain.User
	Token              string
	MustChangePassword bool
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}
