package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

// UPRUseCase manages the organizational unit registry. Deleting a unit
// removes the registry document only; the scoped record-keeping data is
// left untouched and simply becomes unreachable through the unit list.
type UPRUseCase struct {
	repo interfaces.Repository
}

func NewUPRUseCase(repo interfaces.Repository) *UPRUseCase {
	return &UPRUseCase{repo: repo}
}

func (uc *UPRUseCase) Add(ctx context.Context, upr *model.UPR) (*model.UPR, error) {
	if upr.Name == "" {
		return nil, goerr.New("UPR name is required")
	}
	if upr.ActivePeriod != "" && !slices.Contains(upr.AvailablePeriods, upr.ActivePeriod) {
		upr.AvailablePeriods = append(upr.AvailablePeriods, upr.ActivePeriod)
	}

	created, err := uc.repo.UPR().Create(ctx, upr)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create UPR")
	}

	return created, nil
}

func (uc *UPRUseCase) List(ctx context.Context) ([]*model.UPR, error) {
	uprs, err := uc.repo.UPR().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list UPRs")
	}

	return uprs, nil
}

// Get returns the unit, or nil when it does not exist
func (uc *UPRUseCase) Get(ctx context.Context, id types.UPRID) (*model.UPR, error) {
	upr, err := uc.repo.UPR().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get UPR")
	}

	return upr, nil
}

func (uc *UPRUseCase) Update(ctx context.Context, id types.UPRID, update model.UPRUpdate) (*model.UPR, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, goerr.New("UPR name is required")
	}

	updated, err := uc.repo.UPR().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update UPR", goerr.V("id", id))
	}

	return updated, nil
}

func (uc *UPRUseCase) Delete(ctx context.Context, id types.UPRID) error {
	if err := uc.repo.UPR().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete UPR", goerr.V("id", id))
	}

	return nil
}
