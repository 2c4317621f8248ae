package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
)

type CreateUserInput struct {
	Email string
	Name  *string
	Role  *domain.Role
	// Password is optional; when empty a temporary one is generated.
	Password string
}

type CreateUserResult struct {
	User *domain.User
	// GeneratedPassword is set only when the caller did not supply one.
	GeneratedPassword string
}

type UpdateUserInput struct {
	Email *string
	Name  *string
	Role  *domain.Role
}

func (in UpdateUserInput) Empty() bool {
	return in.Email == nil && in.Name == nil && in.Role == nil
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*CreateUserResult, error)
	GetUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
