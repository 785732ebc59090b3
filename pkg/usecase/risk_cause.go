package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/model/config"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
)

// RiskCauseUseCase owns the third hierarchy level, under potential risks.
// Likelihood and impact analysis is recorded here; the derived risk level
// feeds the control measure suggestion flow.
type RiskCauseUseCase struct {
	repo           interfaces.Repository
	appConfig      *config.AppConfig
	controlMeasure *ControlMeasureUseCase
}

func NewRiskCauseUseCase(repo interfaces.Repository, cfg *config.AppConfig, controlMeasure *ControlMeasureUseCase) *RiskCauseUseCase {
	return &RiskCauseUseCase{
		repo:           repo,
		appConfig:      cfg,
		controlMeasure: controlMeasure,
	}
}

// RiskCauseInput is the caller-supplied portion of a new risk cause
type RiskCauseInput struct {
	Source      string
	Description string
}

// NextSequenceNumber previews the ordinal the next cause under the
// potential risk would receive
func (uc *RiskCauseUseCase) NextSequenceNumber(ctx context.Context, riskID types.PotentialRiskID, scope model.Scope) (int, error) {
	siblings, err := uc.repo.RiskCause().ListByPotentialRisk(ctx, riskID, scope)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list risk causes", goerr.V("potentialRiskID", riskID))
	}

	maxSeq := 0
	for _, s := range siblings {
		if s.SequenceNumber > maxSeq {
			maxSeq = s.SequenceNumber
		}
	}

	return maxSeq + 1, nil
}

// Add creates a risk cause under the potential risk. The sequence number
// is always assigned here, never by the caller. Ancestry (goal ID) is
// copied from the parent so a cause can not point at a different subtree.
func (uc *RiskCauseUseCase) Add(ctx context.Context, scope model.Scope, riskID types.PotentialRiskID, input RiskCauseInput) (*model.RiskCause, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if input.Description == "" {
		return nil, goerr.New("risk cause description is required")
	}
	if input.Source != "" && !uc.appConfig.ValidRiskCauseSource(input.Source) {
		return nil, goerr.New("unknown risk cause source", goerr.V("source", input.Source))
	}

	parent, err := uc.getParentRisk(ctx, riskID, scope)
	if err != nil {
		return nil, err
	}

	seq, err := uc.NextSequenceNumber(ctx, parent.ID, scope)
	if err != nil {
		return nil, err
	}

	cause := &model.RiskCause{
		PotentialRiskID: parent.ID,
		GoalID:          parent.GoalID,
		Scope:           scope,
		SequenceNumber:  seq,
		Source:          input.Source,
		Description:     input.Description,
	}

	created, err := uc.repo.RiskCause().Create(ctx, cause)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk cause")
	}

	return created, nil
}

// ListByPotentialRisk returns the risk's causes ordered by sequence number
func (uc *RiskCauseUseCase) ListByPotentialRisk(ctx context.Context, riskID types.PotentialRiskID, scope model.Scope) ([]*model.RiskCause, error) {
	causes, err := uc.repo.RiskCause().ListByPotentialRisk(ctx, riskID, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risk causes", goerr.V("potentialRiskID", riskID))
	}

	return causes, nil
}

// Get returns the risk cause, or nil when absent or out of scope
func (uc *RiskCauseUseCase) Get(ctx context.Context, id types.RiskCauseID, scope model.Scope) (*model.RiskCause, error) {
	cause, err := uc.repo.RiskCause().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get risk cause")
	}
	if !cause.Scope.Matches(scope) {
		return nil, nil
	}

	return cause, nil
}

// Update patches description and analysis fields independently. Non-empty
// likelihood and impact values must be recognized levels; empty strings
// clear the analysis.
func (uc *RiskCauseUseCase) Update(ctx context.Context, id types.RiskCauseID, scope model.Scope, update model.RiskCauseUpdate) (*model.RiskCause, error) {
	if update.Description != nil && *update.Description == "" {
		return nil, goerr.New("risk cause description is required")
	}
	if update.Source != nil && *update.Source != "" && !uc.appConfig.ValidRiskCauseSource(*update.Source) {
		return nil, goerr.New("unknown risk cause source", goerr.V("source", *update.Source))
	}
	if update.Likelihood != nil && *update.Likelihood != "" {
		if err := update.Likelihood.Validate(); err != nil {
			return nil, err
		}
	}
	if update.Impact != nil && *update.Impact != "" {
		if err := update.Impact.Validate(); err != nil {
			return nil, err
		}
	}

	existing, err := uc.repo.RiskCause().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk cause", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrScopeMismatch, "cannot update risk cause", goerr.V("id", id))
	}

	updated, err := uc.repo.RiskCause().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk cause", goerr.V("id", id))
	}

	return updated, nil
}

// DeleteCascading removes the risk cause and its control measures. The
// children are leaves, so each is deleted directly without further
// recursion. Idempotent when the document is already gone.
func (uc *RiskCauseUseCase) DeleteCascading(ctx context.Context, id types.RiskCauseID, scope model.Scope) error {
	logger := logging.From(ctx)

	existing, err := uc.repo.RiskCause().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("risk cause already deleted", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to get risk cause",
			goerr.V("id", id), goerr.V("level", "risk_cause"))
	}
	if !existing.Scope.Matches(scope) {
		return goerr.Wrap(ErrScopeMismatch, "cannot delete risk cause", goerr.V("id", id))
	}

	measures, err := uc.repo.ControlMeasure().ListByRiskCause(ctx, id, scope)
	if err != nil {
		return goerr.Wrap(err, "failed to list control measures for cascade",
			goerr.V("riskCauseID", id), goerr.V("level", "control_measure"))
	}

	for _, measure := range measures {
		if err := uc.controlMeasure.Delete(ctx, measure.ID, scope); err != nil {
			return goerr.Wrap(err, "cascade failed at control measure",
				goerr.V("riskCauseID", id),
				goerr.V("controlMeasureID", measure.ID),
				goerr.V("level", "control_measure"))
		}
	}

	if err := uc.repo.RiskCause().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("risk cause vanished during cascade", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to delete risk cause",
			goerr.V("id", id), goerr.V("level", "risk_cause"))
	}

	return nil
}

func (uc *RiskCauseUseCase) getParentRisk(ctx context.Context, riskID types.PotentialRiskID, scope model.Scope) (*model.PotentialRisk, error) {
	risk, err := uc.repo.PotentialRisk().Get(ctx, riskID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrParentNotFound, "potential risk does not exist", goerr.V("potentialRiskID", riskID))
		}
		return nil, goerr.Wrap(err, "failed to get parent potential risk", goerr.V("potentialRiskID", riskID))
	}
	if !risk.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrParentNotFound, "potential risk belongs to another scope", goerr.V("potentialRiskID", riskID))
	}
	return risk, nil
}
