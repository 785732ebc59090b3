package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// UPR is an organizational unit (Unit Pemilik Risiko) owning scoped data
type UPR struct {
	ID               types.UPRID
	Name             string
	Description      string
	ActivePeriod     string
	AvailablePeriods []string
	RiskAppetite     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UPRUpdate is a partial update of a UPR
type UPRUpdate struct {
	Name             *string
	Description      *string
	ActivePeriod     *string
	AvailablePeriods *[]string
	RiskAppetite     *string
}
