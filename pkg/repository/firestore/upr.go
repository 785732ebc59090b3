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

type uprDocument struct {
	ID               string    `firestore:"id"`
	Name             string    `firestore:"name"`
	Description      string    `firestore:"description"`
	ActivePeriod     string    `firestore:"active_period"`
	AvailablePeriods []string  `firestore:"available_periods"`
	RiskAppetite     string    `firestore:"risk_appetite"`
	CreatedAt        time.Time `firestore:"created_at"`
	UpdatedAt        time.Time `firestore:"updated_at"`
}

func (d *uprDocument) toModel() *model.UPR {
	return &model.UPR{
		ID:               types.UPRID(d.ID),
		Name:             d.Name,
		Description:      d.Description,
		ActivePeriod:     d.ActivePeriod,
		AvailablePeriods: append([]string(nil), d.AvailablePeriods...),
		RiskAppetite:     d.RiskAppetite,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type uprRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUPRRepository(client *firestore.Client) *uprRepository {
	return &uprRepository{client: client}
}

func (r *uprRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_uprs"
	}
	return "uprs"
}

func (r *uprRepository) Create(ctx context.Context, upr *model.UPR) (*model.UPR, error) {
	id := upr.ID
	if id == "" {
		id = types.NewUPRID()
	}

	now := time.Now().UTC()
	doc := &uprDocument{
		ID:               id.String(),
		Name:             upr.Name,
		Description:      upr.Description,
		ActivePeriod:     upr.ActivePeriod,
		AvailablePeriods: append([]string(nil), upr.AvailablePeriods...),
		RiskAppetite:     upr.RiskAppetite,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create UPR", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *uprRepository) Get(ctx context.Context, id types.UPRID) (*model.UPR, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "UPR not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get UPR", goerr.V("id", id))
	}

	var uprDoc uprDocument
	if err := doc.DataTo(&uprDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal UPR", goerr.V("id", id))
	}

	return uprDoc.toModel(), nil
}

func (r *uprRepository) List(ctx context.Context) ([]*model.UPR, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var uprs []*model.UPR
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate UPRs")
		}

		var uprDoc uprDocument
		if err := doc.DataTo(&uprDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal UPR")
		}

		uprs = append(uprs, uprDoc.toModel())
	}

	return uprs, nil
}

func (r *uprRepository) Update(ctx context.Context, id types.UPRID, update model.UPRUpdate) (*model.UPR, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "UPR not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get UPR", goerr.V("id", id))
	}

	var existing uprDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal UPR", goerr.V("id", id))
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.ActivePeriod != nil {
		existing.ActivePeriod = *update.ActivePeriod
	}
	if update.AvailablePeriods != nil {
		existing.AvailablePeriods = append([]string(nil), *update.AvailablePeriods...)
	}
	if update.RiskAppetite != nil {
		existing.RiskAppetite = *update.RiskAppetite
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update UPR", goerr.V("id", id))
	}

	return existing.toModel(), nil
}

func (r *uprRepository) Delete(ctx context.Context, id types.UPRID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "UPR not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get UPR", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete UPR", goerr.V("id", id))
	}

	return nil
}
