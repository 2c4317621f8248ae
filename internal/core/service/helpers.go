package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

func hashPassword(ctx context.Context, h ports.PasswordHasher, plaintext string) (string, error) {
	timer := prometheus.NewTimer(metrics.PasswordHashDuration)
	defer timer.ObserveDuration()
	return h.Hash(ctx, plaintext)
}

// ensureEmailAvailable returns domain.ErrEmailAlreadyTaken when email belongs
// to a user other than exceptID. The store's unique constraint still has the
// final word under concurrent writes.
func ensureEmailAvailable(ctx context.Context, repo ports.UserRepository, email, exceptID string) error {
	existing, err := repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != exceptID:
		return domain.ErrEmailAlreadyTaken
	}
	return nil
}
