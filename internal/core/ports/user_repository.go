package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
)

// NewUser is the data a store needs to create a record. The store assigns
// ID, CreatedAt and UpdatedAt (equal on insert).
type NewUser struct {
	Email        string
	Name         *string
	Role         *domain.Role
	PasswordHash string
}

// UserPatch is a partial update. A nil field is left untouched.
type UserPatch struct {
	Email        *string
	Name         *string
	Role         *domain.Role
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Role == nil && p.PasswordHash == nil
}

// UserRepository persists users. Implementations must enforce email
// uniqueness and advance UpdatedAt on every successful Update.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user NewUser) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
