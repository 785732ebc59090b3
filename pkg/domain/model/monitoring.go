package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// MonitoringSession is a recording window in which risk exposures are captured
type MonitoringSession struct {
	ID        types.SessionID
	Scope     Scope
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonitoringSessionUpdate is a partial update of a MonitoringSession
type MonitoringSessionUpdate struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
}

// RiskExposure records the observed exposure of a risk cause during a
// monitoring session. One document exists per (session, risk cause) pair;
// writes are upserts on that key.
type RiskExposure struct {
	ID                types.ExposureID
	SessionID         types.SessionID
	RiskCauseID       types.RiskCauseID
	PotentialRiskID   types.PotentialRiskID
	GoalID            types.GoalID
	Scope             Scope
	ExposureValue     string
	ExposureUnit      string
	ExposureNotes     string
	MonitoredControls []types.ControlMeasureID
	RecordedAt        time.Time
	UpdatedAt         time.Time
}
