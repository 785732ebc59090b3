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

type goalDocument struct {
	ID          string    `firestore:"id"`
	UPRID       string    `firestore:"upr_id"`
	Period      string    `firestore:"period"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	Code        string    `firestore:"code"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (d *goalDocument) toModel() *model.Goal {
	return &model.Goal{
		ID:          types.GoalID(d.ID),
		Scope:       model.Scope{UPRID: types.UPRID(d.UPRID), Period: d.Period},
		Name:        d.Name,
		Description: d.Description,
		Code:        d.Code,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type goalRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGoalRepository(client *firestore.Client) *goalRepository {
	return &goalRepository{client: client}
}

func (r *goalRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_goals"
	}
	return "goals"
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	id := goal.ID
	if id == "" {
		id = types.NewGoalID()
	}

	now := time.Now().UTC()
	doc := &goalDocument{
		ID:          id.String(),
		UPRID:       goal.Scope.UPRID.String(),
		Period:      goal.Scope.Period,
		Name:        goal.Name,
		Description: goal.Description,
		Code:        goal.Code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create goal", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *goalRepository) Get(ctx context.Context, id types.GoalID) (*model.Goal, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "goal not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get goal", goerr.V("id", id))
	}

	var goalDoc goalDocument
	if err := doc.DataTo(&goalDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal goal", goerr.V("id", id))
	}

	return goalDoc.toModel(), nil
}

func (r *goalRepository) List(ctx context.Context, scope model.Scope) ([]*model.Goal, error) {
	iter := r.client.Collection(r.collection()).
		Where("upr_id", "==", scope.UPRID.String()).
		Where("period", "==", scope.Period).
		OrderBy("code", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var goals []*model.Goal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate goals")
		}

		var goalDoc goalDocument
		if err := doc.DataTo(&goalDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal goal")
		}

		goals = append(goals, goalDoc.toModel())
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, id types.GoalID, update model.GoalUpdate) (*model.Goal, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "goal not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get goal", goerr.V("id", id))
	}

	var existing goalDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal goal", goerr.V("id", id))
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update goal", goerr.V("id", id))
	}

	return existing.toModel(), nil
}

func (r *goalRepository) Delete(ctx context.Context, id types.GoalID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "goal not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get goal", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete goal", goerr.V("id", id))
	}

	return nil
}
