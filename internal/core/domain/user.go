package domain

import (
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted anywhere a plaintext
// password enters the system.
const MinPasswordLength = 6

// User models an account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	Role         *Role     `json:"role,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MustChangePassword reports whether the record was never modified after
// creation, which for provisioned accounts means the temporary password is
// still in use.
func (u *User) MustChangePassword() bool {
	return u.CreatedAt.Equal(u.UpdatedAt)
}

// Principal returns the identity carried in tokens for this user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
	Role  *Role   `json:"role,omitempty"`
}

// HasRole reports whether the principal carries one of the given roles.
func (p Principal) HasRole(roles ...Role) bool {
	if p.Role == nil {
		return false
	}
	for _, r := range roles {
		if *p.Role == r {
			return true
		}
	}
	return false
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every lookup and write goes through it so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
