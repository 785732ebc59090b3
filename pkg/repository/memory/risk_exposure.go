package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

type exposureRepository struct {
	mu        sync.RWMutex
	exposures map[types.ExposureID]*model.RiskExposure
}

func newExposureRepository() *exposureRepository {
	return &exposureRepository{
		exposures: make(map[types.ExposureID]*model.RiskExposure),
	}
}

func copyExposure(e *model.RiskExposure) *model.RiskExposure {
	c := *e
	c.MonitoredControls = append([]types.ControlMeasureID(nil), e.MonitoredControls...)
	return &c
}

func (r *exposureRepository) Create(ctx context.Context, exposure *model.RiskExposure) (*model.RiskExposure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyExposure(exposure)
	if created.ID == "" {
		created.ID = types.NewExposureID()
	}
	created.RecordedAt = now
	created.UpdatedAt = now

	r.exposures[created.ID] = created
	return copyExposure(created), nil
}

func (r *exposureRepository) GetByKey(ctx context.Context, sessionID types.SessionID, causeID types.RiskCauseID) (*model.RiskExposure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, exposure := range r.exposures {
		if exposure.SessionID == sessionID && exposure.RiskCauseID == causeID {
			return copyExposure(exposure), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "risk exposure not found",
		goerr.V("sessionID", sessionID), goerr.V("riskCauseID", causeID))
}

func (r *exposureRepository) ListBySession(ctx context.Context, sessionID types.SessionID, scope model.Scope) ([]*model.RiskExposure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var exposures []*model.RiskExposure
	for _, exposure := range r.exposures {
		if exposure.SessionID == sessionID && exposure.Scope.Matches(scope) {
			exposures = append(exposures, copyExposure(exposure))
		}
	}

	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].RiskCauseID < exposures[j].RiskCauseID
	})

	return exposures, nil
}

func (r *exposureRepository) Update(ctx context.Context, id types.ExposureID, exposure *model.RiskExposure) (*model.RiskExposure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.exposures[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk exposure not found", goerr.V("id", id))
	}

	updated := copyExposure(exposure)
	updated.ID = existing.ID
	updated.RecordedAt = existing.RecordedAt
	updated.UpdatedAt = time.Now().UTC()

	r.exposures[id] = updated
	return copyExposure(updated), nil
}

func (r *exposureRepository) Delete(ctx context.Context, id types.ExposureID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exposures[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk exposure not found", goerr.V("id", id))
	}

	delete(r.exposures, id)
	return nil
}
