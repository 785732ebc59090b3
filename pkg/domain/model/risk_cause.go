package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// RiskCause is a specific cause contributing to a PotentialRisk.
// Likelihood and Impact are filled by a later analysis step and stay empty
// until then; AnalysisUpdatedAt records when they last changed.
type RiskCause struct {
	ID               types.RiskCauseID
	PotentialRiskID  types.PotentialRiskID
	GoalID           types.GoalID
	Scope            Scope
	SequenceNumber   int
	Source           string
	Description      string
	KeyRiskIndicator string
	RiskTolerance    string
	Likelihood       types.Likelihood
	Impact           types.Impact
	CreatedAt        time.Time
	AnalysisUpdatedAt time.Time
}

// RiskLevel derives the exposure category from the recorded analysis
func (c *RiskCause) RiskLevel() (types.RiskLevel, *int) {
	return types.CalculateRiskLevel(c.Likelihood, c.Impact)
}

// RiskCauseUpdate is a partial update of a RiskCause. Nil fields are left
// unchanged. Analysis fields may be patched independently of the
// description fields; touching any of them bumps AnalysisUpdatedAt.
type RiskCauseUpdate struct {
	Description      *string
	Source           *string
	KeyRiskIndicator *string
	RiskTolerance    *string
	Likelihood       *types.Likelihood
	Impact           *types.Impact
}

// TouchesAnalysis reports whether the patch changes any analysis field
func (u RiskCauseUpdate) TouchesAnalysis() bool {
	return u.KeyRiskIndicator != nil || u.RiskTolerance != nil || u.Likelihood != nil || u.Impact != nil
}
