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

type goalRepository struct {
	mu    sync.RWMutex
	goals map[types.GoalID]*model.Goal
}

func newGoalRepository() *goalRepository {
	return &goalRepository{
		goals: make(map[types.GoalID]*model.Goal),
	}
}

func copyGoal(g *model.Goal) *model.Goal {
	c := *g
	return &c
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyGoal(goal)
	if created.ID == "" {
		created.ID = types.NewGoalID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.goals[created.ID] = created
	return copyGoal(created), nil
}

func (r *goalRepository) Get(ctx context.Context, id types.GoalID) (*model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, exists := r.goals[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "goal not found", goerr.V("id", id))
	}

	return copyGoal(goal), nil
}

func (r *goalRepository) List(ctx context.Context, scope model.Scope) ([]*model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var goals []*model.Goal
	for _, goal := range r.goals {
		if goal.Scope.Matches(scope) {
			goals = append(goals, copyGoal(goal))
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].Code < goals[j].Code
	})

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, id types.GoalID, update model.GoalUpdate) (*model.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.goals[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "goal not found", goerr.V("id", id))
	}

	updated := copyGoal(existing)
	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	updated.UpdatedAt = time.Now().UTC()

	r.goals[id] = updated
	return copyGoal(updated), nil
}

func (r *goalRepository) Delete(ctx context.Context, id types.GoalID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.goals[id]; !exists {
		return goerr.Wrap(ErrNotFound, "goal not found", goerr.V("id", id))
	}

	delete(r.goals, id)
	return nil
}
