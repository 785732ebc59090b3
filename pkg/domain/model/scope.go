package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// Scope is the tenant context every record-keeping entity lives in.
// An entity is visible to a caller only when both fields match.
type Scope struct {
	UPRID  types.UPRID
	Period string
}

// Validate checks if the Scope is complete
func (s Scope) Validate() error {
	if err := s.UPRID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}
	if s.Period == "" {
		return goerr.New("scope period cannot be empty")
	}
	return nil
}

// Matches reports whether the other scope refers to the same UPR and period
func (s Scope) Matches(other Scope) bool {
	return s.UPRID == other.UPRID && s.Period == other.Period
}
