package model

import (
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// Goal is a top-level organizational objective under which risks are tracked.
// Code is unique within the scope and derived from the first letter of the
// name plus an incrementing number.
type Goal struct {
	ID          types.GoalID
	Scope       Scope
	Name        string
	Description string
	Code        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GoalUpdate is a partial update of a Goal. Nil fields are left unchanged.
// Scope and Code are not patchable.
type GoalUpdate struct {
	Name        *string
	Description *string
}
