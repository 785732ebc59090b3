package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/model/config"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
)

// PotentialRiskUseCase owns the second hierarchy level, under goals
type PotentialRiskUseCase struct {
	repo      interfaces.Repository
	appConfig *config.AppConfig
	riskCause *RiskCauseUseCase
}

func NewPotentialRiskUseCase(repo interfaces.Repository, cfg *config.AppConfig, riskCause *RiskCauseUseCase) *PotentialRiskUseCase {
	return &PotentialRiskUseCase{
		repo:      repo,
		appConfig: cfg,
		riskCause: riskCause,
	}
}

// PotentialRiskInput is the caller-supplied portion of a new potential risk
type PotentialRiskInput struct {
	Description string
	Category    string
	Owner       string
}

// NextSequenceNumber previews the ordinal the next potential risk under
// the goal would receive: max existing sibling sequence + 1. Gaps from
// deleted siblings are never reused.
func (uc *PotentialRiskUseCase) NextSequenceNumber(ctx context.Context, goalID types.GoalID, scope model.Scope) (int, error) {
	siblings, err := uc.repo.PotentialRisk().ListByGoal(ctx, goalID, scope)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list potential risks", goerr.V("goalID", goalID))
	}

	maxSeq := 0
	for _, s := range siblings {
		if s.SequenceNumber > maxSeq {
			maxSeq = s.SequenceNumber
		}
	}

	return maxSeq + 1, nil
}

// Add creates a potential risk under the goal. The parent must exist in
// the caller's scope; the sequence number is assigned internally.
func (uc *PotentialRiskUseCase) Add(ctx context.Context, scope model.Scope, goalID types.GoalID, input PotentialRiskInput) (*model.PotentialRisk, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if input.Description == "" {
		return nil, goerr.New("potential risk description is required")
	}
	if input.Category != "" && !uc.appConfig.ValidRiskCategory(input.Category) {
		return nil, goerr.New("unknown risk category", goerr.V("category", input.Category))
	}

	parent, err := uc.getParentGoal(ctx, goalID, scope)
	if err != nil {
		return nil, err
	}

	seq, err := uc.NextSequenceNumber(ctx, parent.ID, scope)
	if err != nil {
		return nil, err
	}

	risk := &model.PotentialRisk{
		GoalID:         parent.ID,
		Scope:          scope,
		SequenceNumber: seq,
		Description:    input.Description,
		Category:       input.Category,
		Owner:          input.Owner,
	}

	created, err := uc.repo.PotentialRisk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create potential risk")
	}

	return created, nil
}

// ListByGoal returns the goal's potential risks ordered by sequence
// number, ties broken by description
func (uc *PotentialRiskUseCase) ListByGoal(ctx context.Context, goalID types.GoalID, scope model.Scope) ([]*model.PotentialRisk, error) {
	risks, err := uc.repo.PotentialRisk().ListByGoal(ctx, goalID, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list potential risks", goerr.V("goalID", goalID))
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].SequenceNumber != risks[j].SequenceNumber {
			return risks[i].SequenceNumber < risks[j].SequenceNumber
		}
		return risks[i].Description < risks[j].Description
	})

	return risks, nil
}

// Get returns the potential risk, or nil when absent or out of scope
func (uc *PotentialRiskUseCase) Get(ctx context.Context, id types.PotentialRiskID, scope model.Scope) (*model.PotentialRisk, error) {
	risk, err := uc.repo.PotentialRisk().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get potential risk")
	}
	if !risk.Scope.Matches(scope) {
		return nil, nil
	}

	return risk, nil
}

func (uc *PotentialRiskUseCase) Update(ctx context.Context, id types.PotentialRiskID, scope model.Scope, update model.PotentialRiskUpdate) (*model.PotentialRisk, error) {
	if update.Description != nil && *update.Description == "" {
		return nil, goerr.New("potential risk description is required")
	}
	if update.Category != nil && *update.Category != "" && !uc.appConfig.ValidRiskCategory(*update.Category) {
		return nil, goerr.New("unknown risk category", goerr.V("category", *update.Category))
	}

	existing, err := uc.repo.PotentialRisk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get potential risk", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrScopeMismatch, "cannot update potential risk", goerr.V("id", id))
	}

	updated, err := uc.repo.PotentialRisk().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update potential risk", goerr.V("id", id))
	}

	return updated, nil
}

// DeleteCascading removes the potential risk and its risk causes with
// their control measures. Idempotent when the document is already gone.
func (uc *PotentialRiskUseCase) DeleteCascading(ctx context.Context, id types.PotentialRiskID, scope model.Scope) error {
	logger := logging.From(ctx)

	existing, err := uc.repo.PotentialRisk().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("potential risk already deleted", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to get potential risk",
			goerr.V("id", id), goerr.V("level", "potential_risk"))
	}
	if !existing.Scope.Matches(scope) {
		return goerr.Wrap(ErrScopeMismatch, "cannot delete potential risk", goerr.V("id", id))
	}

	causes, err := uc.repo.RiskCause().ListByPotentialRisk(ctx, id, scope)
	if err != nil {
		return goerr.Wrap(err, "failed to list risk causes for cascade",
			goerr.V("potentialRiskID", id), goerr.V("level", "risk_cause"))
	}

	for _, cause := range causes {
		if err := uc.riskCause.DeleteCascading(ctx, cause.ID, scope); err != nil {
			return goerr.Wrap(err, "cascade failed at risk cause",
				goerr.V("potentialRiskID", id),
				goerr.V("riskCauseID", cause.ID),
				goerr.V("level", "risk_cause"))
		}
	}

	if err := uc.repo.PotentialRisk().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("potential risk vanished during cascade", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to delete potential risk",
			goerr.V("id", id), goerr.V("level", "potential_risk"))
	}

	return nil
}

func (uc *PotentialRiskUseCase) getParentGoal(ctx context.Context, goalID types.GoalID, scope model.Scope) (*model.Goal, error) {
	goal, err := uc.repo.Goal().Get(ctx, goalID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrParentNotFound, "goal does not exist", goerr.V("goalID", goalID))
		}
		return nil, goerr.Wrap(err, "failed to get parent goal", goerr.V("goalID", goalID))
	}
	if !goal.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrParentNotFound, "goal belongs to another scope", goerr.V("goalID", goalID))
	}
	return goal, nil
}
