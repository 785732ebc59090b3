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

type potentialRiskRepository struct {
	mu    sync.RWMutex
	risks map[types.PotentialRiskID]*model.PotentialRisk
}

func newPotentialRiskRepository() *potentialRiskRepository {
	return &potentialRiskRepository{
		risks: make(map[types.PotentialRiskID]*model.PotentialRisk),
	}
}

func copyPotentialRisk(p *model.PotentialRisk) *model.PotentialRisk {
	c := *p
	return &c
}

func (r *potentialRiskRepository) Create(ctx context.Context, risk *model.PotentialRisk) (*model.PotentialRisk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyPotentialRisk(risk)
	if created.ID == "" {
		created.ID = types.NewPotentialRiskID()
	}
	created.IdentifiedAt = now
	created.UpdatedAt = now

	r.risks[created.ID] = created
	return copyPotentialRisk(created), nil
}

func (r *potentialRiskRepository) Get(ctx context.Context, id types.PotentialRiskID) (*model.PotentialRisk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "potential risk not found", goerr.V("id", id))
	}

	return copyPotentialRisk(risk), nil
}

func (r *potentialRiskRepository) ListByGoal(ctx context.Context, goalID types.GoalID, scope model.Scope) ([]*model.PotentialRisk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var risks []*model.PotentialRisk
	for _, risk := range r.risks {
		if risk.GoalID == goalID && risk.Scope.Matches(scope) {
			risks = append(risks, copyPotentialRisk(risk))
		}
	}

	sort.Slice(risks, func(i, j int) bool {
		return risks[i].SequenceNumber < risks[j].SequenceNumber
	})

	return risks, nil
}

func (r *potentialRiskRepository) Update(ctx context.Context, id types.PotentialRiskID, update model.PotentialRiskUpdate) (*model.PotentialRisk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "potential risk not found", goerr.V("id", id))
	}

	updated := copyPotentialRisk(existing)
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.Category != nil {
		updated.Category = *update.Category
	}
	if update.Owner != nil {
		updated.Owner = *update.Owner
	}
	updated.UpdatedAt = time.Now().UTC()

	r.risks[id] = updated
	return copyPotentialRisk(updated), nil
}

func (r *potentialRiskRepository) Delete(ctx context.Context, id types.PotentialRiskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "potential risk not found", goerr.V("id", id))
	}

	delete(r.risks, id)
	return nil
}
