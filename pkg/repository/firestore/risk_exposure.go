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

type exposureDocument struct {
	ID                string    `firestore:"id"`
	SessionID         string    `firestore:"session_id"`
	RiskCauseID       string    `firestore:"risk_cause_id"`
	PotentialRiskID   string    `firestore:"potential_risk_id"`
	GoalID            string    `firestore:"goal_id"`
	UPRID             string    `firestore:"upr_id"`
	Period            string    `firestore:"period"`
	ExposureValue     string    `firestore:"exposure_value"`
	ExposureUnit      string    `firestore:"exposure_unit"`
	ExposureNotes     string    `firestore:"exposure_notes"`
	MonitoredControls []string  `firestore:"monitored_controls"`
	RecordedAt        time.Time `firestore:"recorded_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

func (d *exposureDocument) toModel() *model.RiskExposure {
	controls := make([]types.ControlMeasureID, 0, len(d.MonitoredControls))
	for _, c := range d.MonitoredControls {
		controls = append(controls, types.ControlMeasureID(c))
	}

	return &model.RiskExposure{
		ID:                types.ExposureID(d.ID),
		SessionID:         types.SessionID(d.SessionID),
		RiskCauseID:       types.RiskCauseID(d.RiskCauseID),
		PotentialRiskID:   types.PotentialRiskID(d.PotentialRiskID),
		GoalID:            types.GoalID(d.GoalID),
		Scope:             model.Scope{UPRID: types.UPRID(d.UPRID), Period: d.Period},
		ExposureValue:     d.ExposureValue,
		ExposureUnit:      d.ExposureUnit,
		ExposureNotes:     d.ExposureNotes,
		MonitoredControls: controls,
		RecordedAt:        d.RecordedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func exposureFromModel(e *model.RiskExposure) *exposureDocument {
	controls := make([]string, 0, len(e.MonitoredControls))
	for _, c := range e.MonitoredControls {
		controls = append(controls, c.String())
	}

	return &exposureDocument{
		ID:                e.ID.String(),
		SessionID:         e.SessionID.String(),
		RiskCauseID:       e.RiskCauseID.String(),
		PotentialRiskID:   e.PotentialRiskID.String(),
		GoalID:            e.GoalID.String(),
		UPRID:             e.Scope.UPRID.String(),
		Period:            e.Scope.Period,
		ExposureValue:     e.ExposureValue,
		ExposureUnit:      e.ExposureUnit,
		ExposureNotes:     e.ExposureNotes,
		MonitoredControls: controls,
		RecordedAt:        e.RecordedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

type exposureRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newExposureRepository(client *firestore.Client) *exposureRepository {
	return &exposureRepository{client: client}
}

func (r *exposureRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_exposures"
	}
	return "risk_exposures"
}

func (r *exposureRepository) Create(ctx context.Context, exposure *model.RiskExposure) (*model.RiskExposure, error) {
	id := exposure.ID
	if id == "" {
		id = types.NewExposureID()
	}

	now := time.Now().UTC()
	doc := exposureFromModel(exposure)
	doc.ID = id.String()
	doc.RecordedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk exposure", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *exposureRepository) GetByKey(ctx context.Context, sessionID types.SessionID, causeID types.RiskCauseID) (*model.RiskExposure, error) {
	iter := r.client.Collection(r.collection()).
		Where("session_id", "==", sessionID.String()).
		Where("risk_cause_id", "==", causeID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "risk exposure not found",
			goerr.V("sessionID", sessionID), goerr.V("riskCauseID", causeID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query risk exposure",
			goerr.V("sessionID", sessionID), goerr.V("riskCauseID", causeID))
	}

	var exposureDoc exposureDocument
	if err := doc.DataTo(&exposureDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk exposure")
	}

	return exposureDoc.toModel(), nil
}

func (r *exposureRepository) ListBySession(ctx context.Context, sessionID types.SessionID, scope model.Scope) ([]*model.RiskExposure, error) {
	iter := r.client.Collection(r.collection()).
		Where("session_id", "==", sessionID.String()).
		Where("upr_id", "==", scope.UPRID.String()).
		Where("period", "==", scope.Period).
		OrderBy("risk_cause_id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var exposures []*model.RiskExposure
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risk exposures", goerr.V("sessionID", sessionID))
		}

		var exposureDoc exposureDocument
		if err := doc.DataTo(&exposureDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk exposure")
		}

		exposures = append(exposures, exposureDoc.toModel())
	}

	return exposures, nil
}

func (r *exposureRepository) Update(ctx context.Context, id types.ExposureID, exposure *model.RiskExposure) (*model.RiskExposure, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk exposure not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk exposure", goerr.V("id", id))
	}

	var existing exposureDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk exposure", goerr.V("id", id))
	}

	updated := exposureFromModel(exposure)
	updated.ID = existing.ID
	updated.RecordedAt = existing.RecordedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk exposure", goerr.V("id", id))
	}

	return updated.toModel(), nil
}

func (r *exposureRepository) Delete(ctx context.Context, id types.ExposureID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk exposure not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk exposure", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk exposure", goerr.V("id", id))
	}

	return nil
}
