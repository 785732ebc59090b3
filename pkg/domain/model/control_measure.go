package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// ControlMeasure is an action mitigating a RiskCause. It is the leaf of the
// entity hierarchy; deleting one never cascades further.
type ControlMeasure struct {
	ID                  types.ControlMeasureID
	RiskCauseID         types.RiskCauseID
	PotentialRiskID     types.PotentialRiskID
	GoalID              types.GoalID
	Scope               Scope
	SequenceNumber      int
	ControlType         types.ControlType
	Description         string
	KeyControlIndicator string
	Target              string
	ResponsiblePerson   string
	Deadline            string
	Budget              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ControlMeasureUpdate is a partial update of a ControlMeasure.
// Nil fields are left unchanged; parents and scope are not patchable.
type ControlMeasureUpdate struct {
	ControlType         *types.ControlType
	Description         *string
	KeyControlIndicator *string
	Target              *string
	ResponsiblePerson   *string
	Deadline            *string
	Budget              *string
}
