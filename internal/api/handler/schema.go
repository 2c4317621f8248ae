package handler

import "github.com/99minutos/user-management/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=Admin Manager User"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

func (r *registerRequest) normalize() { r.Email = domain.NormalizeEmail(r.Email) }

func (r *loginRequest) normalize() { r.Email = domain.NormalizeEmail(r.Email) }

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type loginResponse struct {
	Message            string       `json:"message"`
	User               *domain.User `json:"user"`
	Token              string       `json:"token"`
	MustChangePassword bool         `json:"mustChangePassword"`
}

// --- Users ---

type createUserRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=Admin Manager User"`
	Password string  `json:"password,omitempty" validate:"omitempty,min=6"`
}

type updateUserRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"  validate:"omitempty,oneof=Admin Manager User"`
}

func (r *createUserRequest) normalize() { r.Email = domain.NormalizeEmail(r.Email) }

func (r *updateUserRequest) normalize() {
	if r.Email != nil {
		e := domain.NormalizeEmail(*r.Email)
		r.Email = &e
	}
}

type createUserResponse struct {
	*domain.User
	// GeneratedPassword is present only when the server generated it.
	GeneratedPassword string `json:"generatedPassword,omitempty"`
}
