package interfaces

import (
	"context"

	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// GoalRepository persists Goal documents
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	// Get fails with ErrNotFound when the document is absent
	Get(ctx context.Context, id types.GoalID) (*model.Goal, error)
	// List returns all goals in the scope ordered by code (byte order;
	// callers needing numeric-aware ordering sort the result themselves)
	List(ctx context.Context, scope model.Scope) ([]*model.Goal, error)
	Update(ctx context.Context, id types.GoalID, update model.GoalUpdate) (*model.Goal, error)
	Delete(ctx context.Context, id types.GoalID) error
}
