package interfaces

import (
	"context"

	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// PotentialRiskRepository persists PotentialRisk documents
type PotentialRiskRepository interface {
	Create(ctx context.Context, risk *model.PotentialRisk) (*model.PotentialRisk, error)
	Get(ctx context.Context, id types.PotentialRiskID) (*model.PotentialRisk, error)
	// ListByGoal returns all potential risks of the goal within the scope,
	// ordered by sequence number ascending
	ListByGoal(ctx context.Context, goalID types.GoalID, scope model.Scope) ([]*model.PotentialRisk, error)
	Update(ctx context.Context, id types.PotentialRiskID, update model.PotentialRiskUpdate) (*model.PotentialRisk, error)
	Delete(ctx context.Context, id types.PotentialRiskID) error
}
