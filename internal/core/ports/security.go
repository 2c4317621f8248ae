package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
)

// PasswordHasher performs one-way salted hashing. Compare returns false for
// a mismatch or an unparseable hash; it never reports an error.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Compare(ctx context.Context, plaintext, hashed string) bool
}

// TokenService signs and verifies session tokens.
type TokenService interface {
	Generate(p domain.Principal) (string, error)
	// Verify returns domain.ErrTokenExpired, domain.ErrTokenInvalid or
	// domain.ErrVerificationFailed on failure.
	Verify(token string) (domain.Principal, error)
}

// PasswordGenerator produces temporary passwords for provisioned accounts.
type PasswordGenerator interface {
	Generate() (string, error)
}
