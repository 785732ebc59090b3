package interfaces

import (
	"context"

	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// RiskCauseRepository persists RiskCause documents
type RiskCauseRepository interface {
	Create(ctx context.Context, cause *model.RiskCause) (*model.RiskCause, error)
	Get(ctx context.Context, id types.RiskCauseID) (*model.RiskCause, error)
	// ListByPotentialRisk returns all causes of the potential risk within
	// the scope, ordered by sequence number ascending
	ListByPotentialRisk(ctx context.Context, riskID types.PotentialRiskID, scope model.Scope) ([]*model.RiskCause, error)
	Update(ctx context.Context, id types.RiskCauseID, update model.RiskCauseUpdate) (*model.RiskCause, error)
	Delete(ctx context.Context, id types.RiskCauseID) error
}
