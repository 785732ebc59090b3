package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type sessionDocument struct {
	ID        string    `firestore:"id"`
	UPRID     string    `firestore:"upr_id"`
	Period    string    `firestore:"period"`
	Name      string    `firestore:"name"`
	StartDate time.Time `firestore:"start_date"`
	EndDate   time.Time `firestore:"end_date"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (d *sessionDocument) toModel() *model.MonitoringSession {
	return &model.MonitoringSession{
		ID:        types.SessionID(d.ID),
		Scope:     model.Scope{UPRID: types.UPRID(d.UPRID), Period: d.Period},
		Name:      d.Name,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type sessionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSessionRepository(client *firestore.Client) *sessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_monitoring_sessions"
	}
	return "monitoring_sessions"
}

func (r *sessionRepository) Create(ctx context.Context, session *model.MonitoringSession) (*model.MonitoringSession, error) {
	id := session.ID
	if id == "" {
		id = types.NewSessionID()
	}

	now := time.Now().UTC()
	doc := &sessionDocument{
		ID:        id.String(),
		UPRID:     session.Scope.UPRID.String(),
		Period:    session.Scope.Period,
		Name:      session.Name,
		StartDate: session.StartDate,
		EndDate:   session.EndDate,
		Status:    session.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create monitoring session", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *sessionRepository) Get(ctx context.Context, id types.SessionID) (*model.MonitoringSession, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "monitoring session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get monitoring session", goerr.V("id", id))
	}

	var sessionDoc sessionDocument
	if err := doc.DataTo(&sessionDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal monitoring session", goerr.V("id", id))
	}

	return sessionDoc.toModel(), nil
}

func (r *sessionRepository) List(ctx context.Context, scope model.Scope) ([]*model.MonitoringSession, error) {
	iter := r.client.Collection(r.collection()).
		Where("upr_id", "==", scope.UPRID.String()).
		Where("period", "==", scope.Period).
		OrderBy("end_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var sessions []*model.MonitoringSession
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate monitoring sessions")
		}

		var sessionDoc sessionDocument
		if err := doc.DataTo(&sessionDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal monitoring session")
		}

		sessions = append(sessions, sessionDoc.toModel())
	}

	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, id types.SessionID, update model.MonitoringSessionUpdate) (*model.MonitoringSession, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "monitoring session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get monitoring session", goerr.V("id", id))
	}

	var existing sessionDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal monitoring session", goerr.V("id", id))
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.StartDate != nil {
		existing.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		existing.EndDate = *update.EndDate
	}
	if update.Status != nil {
		existing.Status = *update.Status
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update monitoring session", goerr.V("id", id))
	}

	return existing.toModel(), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id types.SessionID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "monitoring session not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get monitoring session", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete monitoring session", goerr.V("id", id))
	}

	return nil
}
