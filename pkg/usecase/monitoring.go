package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
)

// MonitoringUseCase manages monitoring sessions and the risk exposures
// recorded during them
type MonitoringUseCase struct {
	repo interfaces.Repository
}

func NewMonitoringUseCase(repo interfaces.Repository) *MonitoringUseCase {
	return &MonitoringUseCase{repo: repo}
}

// SessionInput is the caller-supplied portion of a new monitoring session
type SessionInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

// ExposureInput is the recorded observation for one risk cause in a session
type ExposureInput struct {
	ExposureValue     string
	ExposureUnit      string
	ExposureNotes     string
	MonitoredControls []types.ControlMeasureID
}

func (uc *MonitoringUseCase) AddSession(ctx context.Context, scope model.Scope, input SessionInput) (*model.MonitoringSession, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, goerr.New("monitoring session name is required")
	}
	if !input.EndDate.IsZero() && !input.StartDate.IsZero() && input.EndDate.Before(input.StartDate) {
		return nil, goerr.New("monitoring session end date is before start date",
			goerr.V("startDate", input.StartDate), goerr.V("endDate", input.EndDate))
	}

	session := &model.MonitoringSession{
		Scope:     scope,
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    input.Status,
	}

	created, err := uc.repo.MonitoringSession().Create(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create monitoring session")
	}

	return created, nil
}

// ListSessions returns the scope's sessions, most recently ending first
func (uc *MonitoringUseCase) ListSessions(ctx context.Context, scope model.Scope) ([]*model.MonitoringSession, error) {
	sessions, err := uc.repo.MonitoringSession().List(ctx, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list monitoring sessions")
	}

	return sessions, nil
}

// GetSession returns the session, or nil when absent or out of scope
func (uc *MonitoringUseCase) GetSession(ctx context.Context, id types.SessionID, scope model.Scope) (*model.MonitoringSession, error) {
	session, err := uc.repo.MonitoringSession().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get monitoring session")
	}
	if !session.Scope.Matches(scope) {
		return nil, nil
	}

	return session, nil
}

func (uc *MonitoringUseCase) UpdateSession(ctx context.Context, id types.SessionID, scope model.Scope, update model.MonitoringSessionUpdate) (*model.MonitoringSession, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, goerr.New("monitoring session name is required")
	}

	existing, err := uc.repo.MonitoringSession().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get monitoring session", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrScopeMismatch, "cannot update monitoring session", goerr.V("id", id))
	}

	updated, err := uc.repo.MonitoringSession().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update monitoring session", goerr.V("id", id))
	}

	return updated, nil
}

// DeleteSession removes the session and every exposure recorded in it.
// Idempotent when the session is already gone.
func (uc *MonitoringUseCase) DeleteSession(ctx context.Context, id types.SessionID, scope model.Scope) error {
	logger := logging.From(ctx)

	existing, err := uc.repo.MonitoringSession().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("monitoring session already deleted", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to get monitoring session", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return goerr.Wrap(ErrScopeMismatch, "cannot delete monitoring session", goerr.V("id", id))
	}

	exposures, err := uc.repo.RiskExposure().ListBySession(ctx, id, scope)
	if err != nil {
		return goerr.Wrap(err, "failed to list exposures for session delete", goerr.V("sessionID", id))
	}
	for _, exposure := range exposures {
		if err := uc.repo.RiskExposure().Delete(ctx, exposure.ID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				logger.Warn("exposure vanished during session delete", "id", exposure.ID)
				continue
			}
			return goerr.Wrap(err, "failed to delete exposure",
				goerr.V("sessionID", id), goerr.V("exposureID", exposure.ID))
		}
	}

	if err := uc.repo.MonitoringSession().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("monitoring session vanished during delete", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to delete monitoring session", goerr.V("id", id))
	}

	return nil
}

// UpsertExposure records the observed exposure of a risk cause within a
// session. One document exists per (session, cause) pair: recording again
// overwrites the previous observation while keeping its identity and
// original recording time.
func (uc *MonitoringUseCase) UpsertExposure(ctx context.Context, scope model.Scope, sessionID types.SessionID, causeID types.RiskCauseID, input ExposureInput) (*model.RiskExposure, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	session, err := uc.GetSession(ctx, sessionID, scope)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, goerr.Wrap(ErrParentNotFound, "monitoring session does not exist", goerr.V("sessionID", sessionID))
	}

	cause, err := uc.getCause(ctx, causeID, scope)
	if err != nil {
		return nil, err
	}

	exposure := &model.RiskExposure{
		SessionID:         session.ID,
		RiskCauseID:       cause.ID,
		PotentialRiskID:   cause.PotentialRiskID,
		GoalID:            cause.GoalID,
		Scope:             scope,
		ExposureValue:     input.ExposureValue,
		ExposureUnit:      input.ExposureUnit,
		ExposureNotes:     input.ExposureNotes,
		MonitoredControls: input.MonitoredControls,
	}

	existing, err := uc.repo.RiskExposure().GetByKey(ctx, session.ID, cause.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			created, err := uc.repo.RiskExposure().Create(ctx, exposure)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to create risk exposure")
			}
			return created, nil
		}
		return nil, goerr.Wrap(err, "failed to look up risk exposure",
			goerr.V("sessionID", session.ID), goerr.V("riskCauseID", cause.ID))
	}

	updated, err := uc.repo.RiskExposure().Update(ctx, existing.ID, exposure)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk exposure", goerr.V("id", existing.ID))
	}

	return updated, nil
}

// ListExposures returns the session's exposures ordered by risk cause ID
func (uc *MonitoringUseCase) ListExposures(ctx context.Context, sessionID types.SessionID, scope model.Scope) ([]*model.RiskExposure, error) {
	session, err := uc.GetSession(ctx, sessionID, scope)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, goerr.Wrap(ErrParentNotFound, "monitoring session does not exist", goerr.V("sessionID", sessionID))
	}

	exposures, err := uc.repo.RiskExposure().ListBySession(ctx, sessionID, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risk exposures", goerr.V("sessionID", sessionID))
	}

	return exposures, nil
}

func (uc *MonitoringUseCase) getCause(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) (*model.RiskCause, error) {
	cause, err := uc.repo.RiskCause().Get(ctx, causeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrParentNotFound, "risk cause does not exist", goerr.V("riskCauseID", causeID))
		}
		return nil, goerr.Wrap(err, "failed to get risk cause", goerr.V("riskCauseID", causeID))
	}
	if !cause.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrParentNotFound, "risk cause belongs to another scope", goerr.V("riskCauseID", causeID))
	}
	return cause, nil
}
