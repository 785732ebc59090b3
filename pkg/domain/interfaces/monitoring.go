package interfaces

import (
	"context"

	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// MonitoringSessionRepository persists MonitoringSession documents
type MonitoringSessionRepository interface {
	Create(ctx context.Context, session *model.MonitoringSession) (*model.MonitoringSession, error)
	Get(ctx context.Context, id types.SessionID) (*model.MonitoringSession, error)
	// List returns all sessions in the scope ordered by end date descending
	List(ctx context.Context, scope model.Scope) ([]*model.MonitoringSession, error)
	Update(ctx context.Context, id types.SessionID, update model.MonitoringSessionUpdate) (*model.MonitoringSession, error)
	Delete(ctx context.Context, id types.SessionID) error
}

// RiskExposureRepository persists RiskExposure documents. The logical key
// of an exposure is the (session, risk cause) pair.
type RiskExposureRepository interface {
	Create(ctx context.Context, exposure *model.RiskExposure) (*model.RiskExposure, error)
	// GetByKey fails with ErrNotFound when no exposure exists for the pair
	GetByKey(ctx context.Context, sessionID types.SessionID, causeID types.RiskCauseID) (*model.RiskExposure, error)
	// ListBySession returns all exposures of the session within the scope,
	// ordered by risk cause ID ascending
	ListBySession(ctx context.Context, sessionID types.SessionID, scope model.Scope) ([]*model.RiskExposure, error)
	Update(ctx context.Context, id types.ExposureID, exposure *model.RiskExposure) (*model.RiskExposure, error)
	Delete(ctx context.Context, id types.ExposureID) error
}
