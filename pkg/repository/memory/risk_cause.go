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

type riskCauseRepository struct {
	mu     sync.RWMutex
	causes map[types.RiskCauseID]*model.RiskCause
}

func newRiskCauseRepository() *riskCauseRepository {
	return &riskCauseRepository{
		causes: make(map[types.RiskCauseID]*model.RiskCause),
	}
}

func copyRiskCause(c *model.RiskCause) *model.RiskCause {
	cc := *c
	return &cc
}

func (r *riskCauseRepository) Create(ctx context.Context, cause *model.RiskCause) (*model.RiskCause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRiskCause(cause)
	if created.ID == "" {
		created.ID = types.NewRiskCauseID()
	}
	created.CreatedAt = time.Now().UTC()

	r.causes[created.ID] = created
	return copyRiskCause(created), nil
}

func (r *riskCauseRepository) Get(ctx context.Context, id types.RiskCauseID) (*model.RiskCause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cause, exists := r.causes[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk cause not found", goerr.V("id", id))
	}

	return copyRiskCause(cause), nil
}

func (r *riskCauseRepository) ListByPotentialRisk(ctx context.Context, riskID types.PotentialRiskID, scope model.Scope) ([]*model.RiskCause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var causes []*model.RiskCause
	for _, cause := range r.causes {
		if cause.PotentialRiskID == riskID && cause.Scope.Matches(scope) {
			causes = append(causes, copyRiskCause(cause))
		}
	}

	sort.Slice(causes, func(i, j int) bool {
		return causes[i].SequenceNumber < causes[j].SequenceNumber
	})

	return causes, nil
}

func (r *riskCauseRepository) Update(ctx context.Context, id types.RiskCauseID, update model.RiskCauseUpdate) (*model.RiskCause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.causes[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk cause not found", goerr.V("id", id))
	}

	updated := copyRiskCause(existing)
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.Source != nil {
		updated.Source = *update.Source
	}
	if update.KeyRiskIndicator != nil {
		updated.KeyRiskIndicator = *update.KeyRiskIndicator
	}
	if update.RiskTolerance != nil {
		updated.RiskTolerance = *update.RiskTolerance
	}
	if update.Likelihood != nil {
		updated.Likelihood = *update.Likelihood
	}
	if update.Impact != nil {
		updated.Impact = *update.Impact
	}
	if update.TouchesAnalysis() {
		updated.AnalysisUpdatedAt = time.Now().UTC()
	}

	r.causes[id] = updated
	return copyRiskCause(updated), nil
}

func (r *riskCauseRepository) Delete(ctx context.Context, id types.RiskCauseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.causes[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk cause not found", goerr.V("id", id))
	}

	delete(r.causes, id)
	return nil
}
