package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// PotentialRisk is a risk identified as threatening a Goal.
// SequenceNumber is a 1-based ordinal unique within the parent goal.
type PotentialRisk struct {
	ID             types.PotentialRiskID
	GoalID         types.GoalID
	Scope          Scope
	SequenceNumber int
	Description    string
	Category       string
	Owner          string
	IdentifiedAt   time.Time
	UpdatedAt      time.Time
}

// PotentialRiskUpdate is a partial update of a PotentialRisk.
// Nil fields are left unchanged; parent and scope are not patchable.
type PotentialRiskUpdate struct {
	Description *string
	Category    *string
	Owner       *string
}
