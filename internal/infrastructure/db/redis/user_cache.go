package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

const DefaultUserCacheTTL = 5 * time.Minute

// UserCache is a read-through cache in front of another UserRepository.
// Only FindByID is cached. A read-through miss only fills an empty key, Update
// writes the committed value over the entry and Delete evicts it. Redis
// failures are logged and the call falls through to the wrapped store.
//
// Key format: user:<id>
type UserCache struct {
	next   ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewUserCache(next ports.UserRepository, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &UserCache{next: next, client: client, ttl: ttl, logger: logger}
}

// cachedUser mirrors domain.User including the hash, which domain.User
// keeps out of JSON.
type cachedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	Role         *string   `json:"role,omitempty"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := c.get(ctx, id); ok {
		metrics.UserCacheRequestsTotal.WithLabelValues("hit").Inc()
		return u, nil
	}
	metrics.UserCacheRequestsTotal.WithLabelValues("miss").Inc()

	u, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, u)
	return u, nil
}

func (c *UserCache) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return c.next.FindByEmail(ctx, email)
}

func (c *UserCache) FindAll(ctx context.Context) ([]*domain.User, error) {
	return c.next.FindAll(ctx)
}

func (c *UserCache) Create(ctx context.Context, in ports.NewUser) (*domain.User, error) {
	return c.next.Create(ctx, in)
}

func (c *UserCache) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	c.evict(ctx, id)
	u, err := c.next.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	// A concurrent read may have filled the key with the old value between
	// evict and write. The committed value replaces it unconditionally.
	c.set(ctx, u)
	return u, nil
}

func (c *UserCache) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *UserCache) get(ctx context.Context, id string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache entry corrupt")
		c.evict(ctx, id)
		return nil, false
	}
	u, err := cu.toDomain()
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache entry corrupt")
		c.evict(ctx, id)
		return nil, false
	}
	return u, true
}

// fill stores u only if the key is absent, so a slow read cannot overwrite
// a value written by Update.
func (c *UserCache) fill(ctx context.Context, u *domain.User) {
	raw, err := json.Marshal(fromDomain(u))
	if err != nil {
		return
	}
	if err := c.client.SetNX(ctx, c.key(u.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", u.ID).Msg("user cache write failed")
	}
}

func (c *UserCache) set(ctx context.Context, u *domain.User) {
	raw, err := json.Marshal(fromDomain(u))
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(u.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", u.ID).Msg("user cache write failed")
	}
}

func (c *UserCache) evict(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache evict failed")
	}
}

func (c *UserCache) key(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func fromDomain(u *domain.User) cachedUser {
	cu := cachedUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Role != nil {
		r := u.Role.String()
		cu.Role = &r
	}
	return cu
}

func (cu cachedUser) toDomain() (*domain.User, error) {
	u := &domain.User{
		ID:           cu.ID,
		Email:        cu.Email,
		Name:         cu.Name,
		PasswordHash: cu.PasswordHash,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}
	if cu.Role != nil {
		r, err := domain.ParseRole(*cu.Role)
		if err != nil {
			return nil, fmt.Errorf("cached user %s: %w", cu.ID, err)
		}
		u.Role = &r
	}
	return u, nil
}
