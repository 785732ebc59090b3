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

type controlMeasureDocument struct {
	ID                  string    `firestore:"id"`
	RiskCauseID         string    `firestore:"risk_cause_id"`
	PotentialRiskID     string    `firestore:"potential_risk_id"`
	GoalID              string    `firestore:"goal_id"`
	UPRID               string    `firestore:"upr_id"`
	Period              string    `firestore:"period"`
	SequenceNumber      int       `firestore:"sequence_number"`
	ControlType         string    `firestore:"control_type"`
	Description         string    `firestore:"description"`
	KeyControlIndicator string    `firestore:"key_control_indicator"`
	Target              string    `firestore:"target"`
	ResponsiblePerson   string    `firestore:"responsible_person"`
	Deadline            string    `firestore:"deadline"`
	Budget              string    `firestore:"budget"`
	CreatedAt           time.Time `firestore:"created_at"`
	UpdatedAt           time.Time `firestore:"updated_at"`
}

func (d *controlMeasureDocument) toModel() *model.ControlMeasure {
	return &model.ControlMeasure{
		ID:                  types.ControlMeasureID(d.ID),
		RiskCauseID:         types.RiskCauseID(d.RiskCauseID),
		PotentialRiskID:     types.PotentialRiskID(d.PotentialRiskID),
		GoalID:              types.GoalID(d.GoalID),
		Scope:               model.Scope{UPRID: types.UPRID(d.UPRID), Period: d.Period},
		SequenceNumber:      d.SequenceNumber,
		ControlType:         types.ControlType(d.ControlType),
		Description:         d.Description,
		KeyControlIndicator: d.KeyControlIndicator,
		Target:              d.Target,
		ResponsiblePerson:   d.ResponsiblePerson,
		Deadline:            d.Deadline,
		Budget:              d.Budget,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

type controlMeasureRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newControlMeasureRepository(client *firestore.Client) *controlMeasureRepository {
	return &controlMeasureRepository{client: client}
}

func (r *controlMeasureRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_control_measures"
	}
	return "control_measures"
}

func (r *controlMeasureRepository) Create(ctx context.Context, measure *model.ControlMeasure) (*model.ControlMeasure, error) {
	id := measure.ID
	if id == "" {
		id = types.NewControlMeasureID()
	}

	now := time.Now().UTC()
	doc := &controlMeasureDocument{
		ID:                  id.String(),
		RiskCauseID:         measure.RiskCauseID.String(),
		PotentialRiskID:     measure.PotentialRiskID.String(),
		GoalID:              measure.GoalID.String(),
		UPRID:               measure.Scope.UPRID.String(),
		Period:              measure.Scope.Period,
		SequenceNumber:      measure.SequenceNumber,
		ControlType:         measure.ControlType.String(),
		Description:         measure.Description,
		KeyControlIndicator: measure.KeyControlIndicator,
		Target:              measure.Target,
		ResponsiblePerson:   measure.ResponsiblePerson,
		Deadline:            measure.Deadline,
		Budget:              measure.Budget,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create control measure", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *controlMeasureRepository) Get(ctx context.Context, id types.ControlMeasureID) (*model.ControlMeasure, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control measure not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control measure", goerr.V("id", id))
	}

	var measureDoc controlMeasureDocument
	if err := doc.DataTo(&measureDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control measure", goerr.V("id", id))
	}

	return measureDoc.toModel(), nil
}

func (r *controlMeasureRepository) ListByRiskCause(ctx context.Context, causeID types.RiskCauseID, scope model.Scope) ([]*model.ControlMeasure, error) {
	iter := r.client.Collection(r.collection()).
		Where("risk_cause_id", "==", causeID.String()).
		Where("upr_id", "==", scope.UPRID.String()).
		Where("period", "==", scope.Period).
		OrderBy("sequence_number", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var measures []*model.ControlMeasure
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate control measures", goerr.V("riskCauseID", causeID))
		}

		var measureDoc controlMeasureDocument
		if err := doc.DataTo(&measureDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal control measure")
		}

		measures = append(measures, measureDoc.toModel())
	}

	return measures, nil
}

func (r *controlMeasureRepository) Update(ctx context.Context, id types.ControlMeasureID, update model.ControlMeasureUpdate) (*model.ControlMeasure, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control measure not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control measure", goerr.V("id", id))
	}

	var existing controlMeasureDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control measure", goerr.V("id", id))
	}

	if update.ControlType != nil {
		existing.ControlType = update.ControlType.String()
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.KeyControlIndicator != nil {
		existing.KeyControlIndicator = *update.KeyControlIndicator
	}
	if update.Target != nil {
		existing.Target = *update.Target
	}
	if update.ResponsiblePerson != nil {
		existing.ResponsiblePerson = *update.ResponsiblePerson
	}
	if update.Deadline != nil {
		existing.Deadline = *update.Deadline
	}
	if update.Budget != nil {
		existing.Budget = *update.Budget
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update control measure", goerr.V("id", id))
	}

	return existing.toModel(), nil
}

func (r *controlMeasureRepository) Delete(ctx context.Context, id types.ControlMeasureID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "control measure not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get control measure", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete control measure", goerr.V("id", id))
	}

	return nil
}
