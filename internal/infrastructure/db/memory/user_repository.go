// Package memory is a process-local ports.UserRepository used for
// development (STORE_DRIVER=memory) and as the store fake in tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

type record struct {
	seq  uint64
	user domain.User
}

// UserRepository keeps users in a map guarded by a RWMutex. Email
// uniqueness is checked under the write lock, so concurrent creates with the
// same address yield exactly one success.
type UserRepository struct {
	mu      sync.RWMutex
	seq     uint64
	byID    map[string]*record
	byEmail map[string]string
	now     func() time.Time
}

type Option func(*UserRepository)

func WithClock(now func() time.Time) Option {
	return func(r *UserRepository) { r.now = now }
}

func NewUserRepository(opts ...Option) *UserRepository {
	r := &UserRepository{
		byID:    make(map[string]*record),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(&r.byID[id].user), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(&rec.user), nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	recs := make([]*record, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	users := make([]*domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, cloneUser(&rec.user))
	}
	return users, nil
}

func (r *UserRepository) Create(_ context.Context, in ports.NewUser) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[in.Email]; taken {
		return nil, domain.ErrEmailAlreadyTaken
	}

	r.seq++
	now := r.now().UTC()
	rec := &record{
		seq: r.seq,
		user: domain.User{
			ID:           strconv.FormatUint(r.seq, 10),
			Email:        in.Email,
			Name:         cloneString(in.Name),
			Role:         cloneRole(in.Role),
			PasswordHash: in.PasswordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	r.byID[rec.user.ID] = rec
	r.byEmail[rec.user.Email] = rec.user.ID

	return cloneUser(&rec.user), nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Empty() {
		return cloneUser(&rec.user), nil
	}

	u := &rec.user
	if patch.Email != nil && *patch.Email != u.Email {
		if owner, taken := r.byEmail[*patch.Email]; taken && owner != id {
			return nil, domain.ErrEmailAlreadyTaken
		}
		delete(r.byEmail, u.Email)
		u.Email = *patch.Email
		r.byEmail[u.Email] = id
	}
	if patch.Name != nil {
		u.Name = cloneString(patch.Name)
	}
	if patch.Role != nil {
		u.Role = cloneRole(patch.Role)
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}

	// UpdatedAt must move strictly forward even when the clock has not.
	now := r.now().UTC()
	if !now.After(u.UpdatedAt) {
		now = u.UpdatedAt.Add(time.Millisecond)
	}
	u.UpdatedAt = now

	return cloneUser(u), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, rec.user.Email)
	delete(r.byID, id)
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Name = cloneString(u.Name)
	c.Role = cloneRole(u.Role)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneRole(r *domain.Role) *domain.Role {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
