package domain

import "errors"

var (
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrEmailAlreadyTaken      = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrUserNotFound           = errors.New("user not found")
	ErrForbidden              = errors.New("access forbidden")

	// Token verification outcomes.
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrVerificationFailed = errors.New("token verification failed")

	// ErrConfigurationMissing is returned at startup when a required secret
	// or setting is absent.
	ErrConfigurationMissing = errors.New("required configuration missing")
)
