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

type potentialRiskDocument struct {
	ID             string    `firestore:"id"`
	GoalID         string    `firestore:"goal_id"`
	UPRID          string    `firestore:"upr_id"`
	Period         string    `firestore:"period"`
	SequenceNumber int       `firestore:"sequence_number"`
	Description    string    `firestore:"description"`
	Category       string    `firestore:"category"`
	Owner          string    `firestore:"owner"`
	IdentifiedAt   time.Time `firestore:"identified_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func (d *potentialRiskDocument) toModel() *model.PotentialRisk {
	return &model.PotentialRisk{
		ID:             types.PotentialRiskID(d.ID),
		GoalID:         types.GoalID(d.GoalID),
		Scope:          model.Scope{UPRID: types.UPRID(d.UPRID), Period: d.Period},
		SequenceNumber: d.SequenceNumber,
		Description:    d.Description,
		Category:       d.Category,
		Owner:          d.Owner,
		IdentifiedAt:   d.IdentifiedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type potentialRiskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPotentialRiskRepository(client *firestore.Client) *potentialRiskRepository {
	return &potentialRiskRepository{client: client}
}

func (r *potentialRiskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_potential_risks"
	}
	return "potential_risks"
}

func (r *potentialRiskRepository) Create(ctx context.Context, risk *model.PotentialRisk) (*model.PotentialRisk, error) {
	id := risk.ID
	if id == "" {
		id = types.NewPotentialRiskID()
	}

	now := time.Now().UTC()
	doc := &potentialRiskDocument{
		ID:             id.String(),
		GoalID:         risk.GoalID.String(),
		UPRID:          risk.Scope.UPRID.String(),
		Period:         risk.Scope.Period,
		SequenceNumber: risk.SequenceNumber,
		Description:    risk.Description,
		Category:       risk.Category,
		Owner:          risk.Owner,
		IdentifiedAt:   now,
		UpdatedAt:      now,
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create potential risk", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *potentialRiskRepository) Get(ctx context.Context, id types.PotentialRiskID) (*model.PotentialRisk, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "potential risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get potential risk", goerr.V("id", id))
	}

	var riskDoc potentialRiskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal potential risk", goerr.V("id", id))
	}

	return riskDoc.toModel(), nil
}

func (r *potentialRiskRepository) ListByGoal(ctx context.Context, goalID types.GoalID, scope model.Scope) ([]*model.PotentialRisk, error) {
	iter := r.client.Collection(r.collection()).
		Where("goal_id", "==", goalID.String()).
		Where("upr_id", "==", scope.UPRID.String()).
		Where("period", "==", scope.Period).
		OrderBy("sequence_number", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var risks []*model.PotentialRisk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate potential risks", goerr.V("goalID", goalID))
		}

		var riskDoc potentialRiskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal potential risk")
		}

		risks = append(risks, riskDoc.toModel())
	}

	return risks, nil
}

func (r *potentialRiskRepository) Update(ctx context.Context, id types.PotentialRiskID, update model.PotentialRiskUpdate) (*model.PotentialRisk, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "potential risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get potential risk", goerr.V("id", id))
	}

	var existing potentialRiskDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal potential risk", goerr.V("id", id))
	}

	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Category != nil {
		existing.Category = *update.Category
	}
	if update.Owner != nil {
		existing.Owner = *update.Owner
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update potential risk", goerr.V("id", id))
	}

	return existing.toModel(), nil
}

func (r *potentialRiskRepository) Delete(ctx context.Context, id types.PotentialRiskID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "potential risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get potential risk", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete potential risk", goerr.V("id", id))
	}

	return nil
}
