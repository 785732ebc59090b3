package cached

import (
	"context"
	"sync"
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

const defaultTTL = 5 * time.Minute

// Repository decorates an interfaces.Repository with a TTL cache for
// organizational units and user profiles. Both are read on nearly every
// request to resolve the caller's scope but change rarely, so a short
// cache keeps the document store out of the hot path. The risk hierarchy
// itself is never cached.
type Repository struct {
	interfaces.Repository
	upr  *cachedUPRRepository
	user *cachedUserRepository
}

var _ interfaces.Repository = &Repository{}

type Option func(*Repository)

// WithTTL overrides the cache lifetime for both entity caches
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		r.upr.ttl = ttl
		r.user.ttl = ttl
	}
}

func New(base interfaces.Repository, opts ...Option) *Repository {
	r := &Repository{
		Repository: base,
		upr:        &cachedUPRRepository{base: base.UPR(), ttl: defaultTTL},
		user:       &cachedUserRepository{base: base.User(), ttl: defaultTTL},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Repository) UPR() interfaces.UPRRepository {
	return r.upr
}

func (r *Repository) User() interfaces.UserRepository {
	return r.user
}

type cachedEntry[T any] struct {
	value     T
	expiresAt time.Time
}

type cachedUPRRepository struct {
	base interfaces.UPRRepository
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[types.UPRID]cachedEntry[*model.UPR]
}

func (r *cachedUPRRepository) get(id types.UPRID) (*model.UPR, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (r *cachedUPRRepository) set(upr *model.UPR) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[types.UPRID]cachedEntry[*model.UPR])
	}
	r.entries[upr.ID] = cachedEntry[*model.UPR]{
		value:     upr,
		expiresAt: time.Now().Add(r.ttl),
	}
}

func (r *cachedUPRRepository) remove(id types.UPRID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *cachedUPRRepository) Create(ctx context.Context, upr *model.UPR) (*model.UPR, error) {
	created, err := r.base.Create(ctx, upr)
	if err != nil {
		return nil, err
	}
	r.set(created)
	return created, nil
}

func (r *cachedUPRRepository) Get(ctx context.Context, id types.UPRID) (*model.UPR, error) {
	if upr, ok := r.get(id); ok {
		return upr, nil
	}

	upr, err := r.base.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(upr)
	return upr, nil
}

// List always goes to the backing store: the cache only knows the units
// it has seen, not the full set.
func (r *cachedUPRRepository) List(ctx context.Context) ([]*model.UPR, error) {
	uprs, err := r.base.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, upr := range uprs {
		r.set(upr)
	}
	return uprs, nil
}

func (r *cachedUPRRepository) Update(ctx context.Context, id types.UPRID, update model.UPRUpdate) (*model.UPR, error) {
	updated, err := r.base.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.set(updated)
	return updated, nil
}

func (r *cachedUPRRepository) Delete(ctx context.Context, id types.UPRID) error {
	if err := r.base.Delete(ctx, id); err != nil {
		return err
	}
	r.remove(id)
	return nil
}

type cachedUserRepository struct {
	base interfaces.UserRepository
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[types.UserID]cachedEntry[*model.User]
}

func (r *cachedUserRepository) get(id types.UserID) (*model.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (r *cachedUserRepository) set(user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[types.UserID]cachedEntry[*model.User])
	}
	r.entries[user.ID] = cachedEntry[*model.User]{
		value:     user,
		expiresAt: time.Now().Add(r.ttl),
	}
}

func (r *cachedUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created, err := r.base.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.set(created)
	return created, nil
}

func (r *cachedUserRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	if user, ok := r.get(id); ok {
		return user, nil
	}

	user, err := r.base.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(user)
	return user, nil
}

func (r *cachedUserRepository) Update(ctx context.Context, id types.UserID, update model.UserUpdate) (*model.User, error) {
	updated, err := r.base.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.set(updated)
	return updated, nil
}
