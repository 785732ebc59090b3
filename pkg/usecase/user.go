package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// UserUseCase manages user profiles. A profile is complete once it names
// a unit and an active period; until then the frontend keeps the user on
// the profile setup page.
type UserUseCase struct {
	repo interfaces.Repository
}

func NewUserUseCase(repo interfaces.Repository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Get returns the profile, or nil when none exists yet for the ID
func (uc *UserUseCase) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user")
	}

	return user, nil
}

func (uc *UserUseCase) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		return nil, goerr.New("user ID is required")
	}

	created, err := uc.repo.User().Create(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user")
	}

	return created, nil
}

// UpdateProfile patches the profile. When the update names a unit, that
// unit must exist in the registry.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id types.UserID, update model.UserUpdate) (*model.User, error) {
	if update.UPRID != nil && *update.UPRID != "" {
		if _, err := uc.repo.UPR().Get(ctx, *update.UPRID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrParentNotFound, "UPR does not exist", goerr.V("uprID", *update.UPRID))
			}
			return nil, goerr.Wrap(err, "failed to get UPR", goerr.V("uprID", *update.UPRID))
		}
	}

	updated, err := uc.repo.User().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user profile", goerr.V("id", id))
	}

	return updated, nil
}
