package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

type uprRepository struct {
	mu   sync.RWMutex
	uprs map[types.UPRID]*model.UPR
}

func newUPRRepository() *uprRepository {
	return &uprRepository{
		uprs: make(map[types.UPRID]*model.UPR),
	}
}

func copyUPR(u *model.UPR) *model.UPR {
	c := *u
	c.AvailablePeriods = append([]string(nil), u.AvailablePeriods...)
	return &c
}

func (r *uprRepository) Create(ctx context.Context, upr *model.UPR) (*model.UPR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyUPR(upr)
	if created.ID == "" {
		created.ID = types.NewUPRID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.uprs[created.ID] = created
	return copyUPR(created), nil
}

func (r *uprRepository) Get(ctx context.Context, id types.UPRID) (*model.UPR, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	upr, exists := r.uprs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "UPR not found", goerr.V("id", id))
	}

	return copyUPR(upr), nil
}

func (r *uprRepository) List(ctx context.Context) ([]*model.UPR, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uprs := make([]*model.UPR, 0, len(r.uprs))
	for _, upr := range r.uprs {
		uprs = append(uprs, copyUPR(upr))
	}

	sort.Slice(uprs, func(i, j int) bool {
		return uprs[i].Name < uprs[j].Name
	})

	return uprs, nil
}

func (r *uprRepository) Update(ctx context.Context, id types.UPRID, update model.UPRUpdate) (*model.UPR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.uprs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "UPR not found", goerr.V("id", id))
	}

	updated := copyUPR(existing)
	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.ActivePeriod != nil {
		updated.ActivePeriod = *update.ActivePeriod
	}
	if update.AvailablePeriods != nil {
		updated.AvailablePeriods = append([]string(nil), *update.AvailablePeriods...)
	}
	if update.RiskAppetite != nil {
		updated.RiskAppetite = *update.RiskAppetite
	}
	updated.UpdatedAt = time.Now().UTC()

	r.uprs[id] = updated
	return copyUPR(updated), nil
}

func (r *uprRepository) Delete(ctx context.Context, id types.UPRID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.uprs[id]; !exists {
		return goerr.Wrap(ErrNotFound, "UPR not found", goerr.V("id", id))
	}

	delete(r.uprs, id)
	return nil
}
