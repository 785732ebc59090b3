package interfaces

import (
	"context"

	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// ControlMeasureRepository persists ControlMeasure documents
type ControlMeasureRepository interface {
	Create(ctx context.Context, measure *model.ControlMeasure) (*model.ControlMeasure, error)
	Get(ctx context.Context, id types.ControlMeasureID) (*model.ControlMeasure, error)
	// ListByRiskCause returns all measures of the risk cause within the
	// scope, ordered by sequence number ascending
	ListByRiskCause(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) ([]*model.ControlMeasure, error)
	Update(ctx context.Context, id types.ControlMeasureID, update model.ControlMeasureUpdate) (*model.ControlMeasure, error)
	Delete(ctx context.Context, id types.ControlMeasureID) error
}
