package model

import (
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// SuggestionRequest carries the context given to the LLM when asking for
// control measure suggestions for a risk cause.
type SuggestionRequest struct {
	RiskCauseDescription     string
	PotentialRiskDescription string
	GoalDescription          string
	RiskLevelText            types.RiskLevel
	Likelihood               types.Likelihood
	Impact                   types.Impact
}

// SuggestedControl is one control measure proposed by the LLM.
// ControlType is already validated, KCI and Target are empty when the
// model returned nothing usable for them.
type SuggestedControl struct {
	Description   string            `json:"description"`
	ControlType   types.ControlType `json:"suggestedControlType"`
	Justification string            `json:"justification"`
	KCI           string            `json:"suggestedKCI"`
	Target        string            `json:"suggestedTarget"`
}
