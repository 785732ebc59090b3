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

type controlMeasureRepository struct {
	mu       sync.RWMutex
	measures map[types.ControlMeasureID]*model.ControlMeasure
}

func newControlMeasureRepository() *controlMeasureRepository {
	return &controlMeasureRepository{
		measures: make(map[types.ControlMeasureID]*model.ControlMeasure),
	}
}

func copyControlMeasure(m *model.ControlMeasure) *model.ControlMeasure {
	c := *m
	return &c
}

func (r *controlMeasureRepository) Create(ctx context.Context, measure *model.ControlMeasure) (*model.ControlMeasure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyControlMeasure(measure)
	if created.ID == "" {
		created.ID = types.NewControlMeasureID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.measures[created.ID] = created
	return copyControlMeasure(created), nil
}

func (r *controlMeasureRepository) Get(ctx context.Context, id types.ControlMeasureID) (*model.ControlMeasure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	measure, exists := r.measures[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control measure not found", goerr.V("id", id))
	}

	return copyControlMeasure(measure), nil
}

func (r *controlMeasureRepository) ListByRiskCause(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) ([]*model.ControlMeasure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var measures []*model.ControlMeasure
	for _, measure := range r.measures {
		if measure.RiskCauseID == causeID && measure.Scope.Matches(scope) {
			measures = append(measures, copyControlMeasure(measure))
		}
	}

	sort.Slice(measures, func(i, j int) bool {
		return measures[i].SequenceNumber < measures[j].SequenceNumber
	})

	return measures, nil
}

func (r *controlMeasureRepository) Update(ctx context.Context, id types.ControlMeasureID, update model.ControlMeasureUpdate) (*model.ControlMeasure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.measures[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control measure not found", goerr.V("id", id))
	}

	updated := copyControlMeasure(existing)
	if update.ControlType != nil {
		updated.ControlType = *update.ControlType
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.KeyControlIndicator != nil {
		updated.KeyControlIndicator = *update.KeyControlIndicator
	}
	if update.Target != nil {
		updated.Target = *update.Target
	}
	if update.ResponsiblePerson != nil {
		updated.ResponsiblePerson = *update.ResponsiblePerson
	}
	if update.Deadline != nil {
		updated.Deadline = *update.Deadline
	}
	if update.Budget != nil {
		updated.Budget = *update.Budget
	}
	updated.UpdatedAt = time.Now().UTC()

	r.measures[id] = updated
	return copyControlMeasure(updated), nil
}

func (r *controlMeasureRepository) Delete(ctx context.Context, id types.ControlMeasureID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.measures[id]; !exists {
		return goerr.Wrap(ErrNotFound, "control measure not found", goerr.V("id", id))
	}

	delete(r.measures, id)
	return nil
}
