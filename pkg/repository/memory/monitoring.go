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

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.MonitoringSession
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[types.SessionID]*model.MonitoringSession),
	}
}

func copySession(s *model.MonitoringSession) *model.MonitoringSession {
	c := *s
	return &c
}

func (r *sessionRepository) Create(ctx context.Context, session *model.MonitoringSession) (*model.MonitoringSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copySession(session)
	if created.ID == "" {
		created.ID = types.NewSessionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.sessions[created.ID] = created
	return copySession(created), nil
}

func (r *sessionRepository) Get(ctx context.Context, id types.SessionID) (*model.MonitoringSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "monitoring session not found", goerr.V("id", id))
	}

	return copySession(session), nil
}

func (r *sessionRepository) List(ctx context.Context, scope model.Scope) ([]*model.MonitoringSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*model.MonitoringSession
	for _, session := range r.sessions {
		if session.Scope.Matches(scope) {
			sessions = append(sessions, copySession(session))
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].EndDate.After(sessions[j].EndDate)
	})

	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, id types.SessionID, update model.MonitoringSessionUpdate) (*model.MonitoringSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "monitoring session not found", goerr.V("id", id))
	}

	updated := copySession(existing)
	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.StartDate != nil {
		updated.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		updated.EndDate = *update.EndDate
	}
	if update.Status != nil {
		updated.Status = *update.Status
	}
	updated.UpdatedAt = time.Now().UTC()

	r.sessions[id] = updated
	return copySession(updated), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id types.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return goerr.Wrap(ErrNotFound, "monitoring session not found", goerr.V("id", id))
	}

	delete(r.sessions, id)
	return nil
}
