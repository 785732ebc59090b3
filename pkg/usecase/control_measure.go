package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
)

// ControlMeasureUseCase owns the leaf level of the hierarchy.
// Deletes never cascade further.
type ControlMeasureUseCase struct {
	repo interfaces.Repository
}

func NewControlMeasureUseCase(repo interfaces.Repository) *ControlMeasureUseCase {
	return &ControlMeasureUseCase{repo: repo}
}

// ControlMeasureInput is the caller-supplied portion of a new control
// measure. ControlType is a raw string because the AI suggestion path
// writes through the same entry point: unrecognized values are coerced
// to preventive instead of rejected.
type ControlMeasureInput struct {
	ControlType         string
	Description         string
	KeyControlIndicator string
	Target              string
	ResponsiblePerson   string
	Deadline            string
	Budget              string
}

// Add creates a control measure under the risk cause. Ancestry is copied
// from the parent cause so the stored document can never reference a
// different subtree than its parent does.
func (uc *ControlMeasureUseCase) Add(ctx context.Context, scope model.Scope, causeID types.RiskCauseID, input ControlMeasureInput) (*model.ControlMeasure, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if input.Description == "" {
		return nil, goerr.New("control measure description is required")
	}

	parent, err := uc.getParentCause(ctx, causeID, scope)
	if err != nil {
		return nil, err
	}

	seq, err := uc.NextSequenceNumber(ctx, parent.ID, scope)
	if err != nil {
		return nil, err
	}

	measure := &model.ControlMeasure{
		RiskCauseID:         parent.ID,
		PotentialRiskID:     parent.PotentialRiskID,
		GoalID:              parent.GoalID,
		Scope:               scope,
		SequenceNumber:      seq,
		ControlType:         types.CoerceControlType(input.ControlType),
		Description:         input.Description,
		KeyControlIndicator: input.KeyControlIndicator,
		Target:              input.Target,
		ResponsiblePerson:   input.ResponsiblePerson,
		Deadline:            input.Deadline,
		Budget:              input.Budget,
	}

	created, err := uc.repo.ControlMeasure().Create(ctx, measure)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control measure")
	}

	return created, nil
}

// NextSequenceNumber previews the ordinal the next measure under the
// risk cause would receive
func (uc *ControlMeasureUseCase) NextSequenceNumber(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) (int, error) {
	siblings, err := uc.repo.ControlMeasure().ListByRiskCause(ctx, causeID, scope)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list control measures", goerr.V("riskCauseID", causeID))
	}

	maxSeq := 0
	for _, s := range siblings {
		if s.SequenceNumber > maxSeq {
			maxSeq = s.SequenceNumber
		}
	}

	return maxSeq + 1, nil
}

// ListByRiskCause returns the cause's measures ordered by sequence number
func (uc *ControlMeasureUseCase) ListByRiskCause(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) ([]*model.ControlMeasure, error) {
	measures, err := uc.repo.ControlMeasure().ListByRiskCause(ctx, causeID, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list control measures", goerr.V("riskCauseID", causeID))
	}

	return measures, nil
}

// Get returns the control measure, or nil when absent or out of scope
func (uc *ControlMeasureUseCase) Get(ctx context.Context, id types.ControlMeasureID, scope model.Scope) (*model.ControlMeasure, error) {
	measure, err := uc.repo.ControlMeasure().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get control measure")
	}
	if !measure.Scope.Matches(scope) {
		return nil, nil
	}

	return measure, nil
}

func (uc *ControlMeasureUseCase) Update(ctx context.Context, id types.ControlMeasureID, scope model.Scope, update model.ControlMeasureUpdate) (*model.ControlMeasure, error) {
	if update.Description != nil && *update.Description == "" {
		return nil, goerr.New("control measure description is required")
	}
	if update.ControlType != nil {
		coerced := types.CoerceControlType(update.ControlType.String())
		update.ControlType = &coerced
	}

	existing, err := uc.repo.ControlMeasure().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get control measure", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrScopeMismatch, "cannot update control measure", goerr.V("id", id))
	}

	updated, err := uc.repo.ControlMeasure().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update control measure", goerr.V("id", id))
	}

	return updated, nil
}

// Delete removes the control measure. Deleting an absent document is a
// success with a logged warning.
func (uc *ControlMeasureUseCase) Delete(ctx context.Context, id types.ControlMeasureID, scope model.Scope) error {
	existing, err := uc.repo.ControlMeasure().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Warn("control measure already deleted", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to get control measure", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return goerr.Wrap(ErrScopeMismatch, "cannot delete control measure", goerr.V("id", id))
	}

	if err := uc.repo.ControlMeasure().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Warn("control measure already deleted", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to delete control measure", goerr.V("id", id))
	}

	return nil
}

func (uc *ControlMeasureUseCase) getParentCause(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) (*model.RiskCause, error) {
	cause, err := uc.repo.RiskCause().Get(ctx, causeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrParentNotFound, "risk cause does not exist", goerr.V("riskCauseID", causeID))
		}
		return nil, goerr.Wrap(err, "failed to get parent risk cause", goerr.V("riskCauseID", causeID))
	}
	if !cause.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrParentNotFound, "risk cause belongs to another scope", goerr.V("riskCauseID", causeID))
	}
	return cause, nil
}
