package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// User is an application user profile. Authentication itself happens
// outside this module; only the profile document lives here.
type User struct {
	ID           types.UserID
	DisplayName  string
	Email        string
	UPRID        types.UPRID
	ActivePeriod string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileComplete reports whether the user can enter scoped pages.
// The navigation guard redirects to profile setup until this holds.
func (u *User) ProfileComplete() bool {
	return u.UPRID != "" && u.ActivePeriod != ""
}

// Scope returns the user's active tenant scope
func (u *User) Scope() Scope {
	return Scope{UPRID: u.UPRID, Period: u.ActivePeriod}
}

// UserUpdate is a partial update of a User profile
type UserUpdate struct {
	DisplayName  *string
	UPRID        *types.UPRID
	ActivePeriod *string
}
