package interfaces

import (
	"context"

	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// UPRRepository persists organizational unit documents
type UPRRepository interface {
	Create(ctx context.Context, upr *model.UPR) (*model.UPR, error)
	Get(ctx context.Context, id types.UPRID) (*model.UPR, error)
	// List returns all units ordered by name ascending
	List(ctx context.Context) ([]*model.UPR, error)
	Update(ctx context.Context, id types.UPRID, update model.UPRUpdate) (*model.UPR, error)
	Delete(ctx context.Context, id types.UPRID) error
}

// UserRepository persists user profile documents
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Get(ctx context.Context, id types.UserID) (*model.User, error)
	Update(ctx context.Context, id types.UserID, update model.UserUpdate) (*model.User, error)
}
