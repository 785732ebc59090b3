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

type riskCauseDocument struct {
	ID                string    `firestore:"id"`
	PotentialRiskID   string    `firestore:"potential_risk_id"`
	GoalID            string    `firestore:"goal_id"`
	UPRID             string    `firestore:"upr_id"`
	Period            string    `firestore:"period"`
	SequenceNumber    int       `firestore:"sequence_number"`
	Source            string    `firestore:"source"`
	Description       string    `firestore:"description"`
	KeyRiskIndicator  string    `firestore:"key_risk_indicator"`
	RiskTolerance     string    `firestore:"risk_tolerance"`
	Likelihood        string    `firestore:"likelihood"`
	Impact            string    `firestore:"impact"`
	CreatedAt         time.Time `firestore:"created_at"`
	AnalysisUpdatedAt time.Time `firestore:"analysis_updated_at"`
}

func (d *riskCauseDocument) toModel() *model.RiskCause {
	return &model.RiskCause{
		ID:                types.RiskCauseID(d.ID),
		PotentialRiskID:   types.PotentialRiskID(d.PotentialRiskID),
		GoalID:            types.GoalID(d.GoalID),
		Scope:             model.Scope{UPRID: types.UPRID(d.UPRID), Period: d.Period},
		SequenceNumber:    d.SequenceNumber,
		Source:            d.Source,
		Description:       d.Description,
		KeyRiskIndicator:  d.KeyRiskIndicator,
		RiskTolerance:     d.RiskTolerance,
		Likelihood:        types.Likelihood(d.Likelihood),
		Impact:            types.Impact(d.Impact),
		CreatedAt:         d.CreatedAt,
		AnalysisUpdatedAt: d.AnalysisUpdatedAt,
	}
}

type riskCauseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskCauseRepository(client *firestore.Client) *riskCauseRepository {
	return &riskCauseRepository{client: client}
}

func (r *riskCauseRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_causes"
	}
	return "risk_causes"
}

func (r *riskCauseRepository) Create(ctx context.Context, cause *model.RiskCause) (*model.RiskCause, error) {
	id := cause.ID
	if id == "" {
		id = types.NewRiskCauseID()
	}

	doc := &riskCauseDocument{
		ID:               id.String(),
		PotentialRiskID:  cause.PotentialRiskID.String(),
		GoalID:           cause.GoalID.String(),
		UPRID:            cause.Scope.UPRID.String(),
		Period:           cause.Scope.Period,
		SequenceNumber:   cause.SequenceNumber,
		Source:           cause.Source,
		Description:      cause.Description,
		KeyRiskIndicator: cause.KeyRiskIndicator,
		RiskTolerance:    cause.RiskTolerance,
		Likelihood:       cause.Likelihood.String(),
		Impact:           cause.Impact.String(),
		CreatedAt:        time.Now().UTC(),
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk cause", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *riskCauseRepository) Get(ctx context.Context, id types.RiskCauseID) (*model.RiskCause, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk cause not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk cause", goerr.V("id", id))
	}

	var causeDoc riskCauseDocument
	if err := doc.DataTo(&causeDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk cause", goerr.V("id", id))
	}

	return causeDoc.toModel(), nil
}

func (r *riskCauseRepository) ListByPotentialRisk(ctx context.Context, riskID types.PotentialRiskID, scope model.Scope) ([]*model.RiskCause, error) {
	iter := r.client.Collection(r.collection()).
		Where("potential_risk_id", "==", riskID.String()).
		Where("upr_id", "==", scope.UPRID.String()).
		Where("period", "==", scope.Period).
		OrderBy("sequence_number", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var causes []*model.RiskCause
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risk causes", goerr.V("potentialRiskID", riskID))
		}

		var causeDoc riskCauseDocument
		if err := doc.DataTo(&causeDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk cause")
		}

		causes = append(causes, causeDoc.toModel())
	}

	return causes, nil
}

func (r *riskCauseRepository) Update(ctx context.Context, id types.RiskCauseID, update model.RiskCauseUpdate) (*model.RiskCause, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk cause not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk cause", goerr.V("id", id))
	}

	var existing riskCauseDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk cause", goerr.V("id", id))
	}

	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Source != nil {
		existing.Source = *update.Source
	}
	if update.KeyRiskIndicator != nil {
		existing.KeyRiskIndicator = *update.KeyRiskIndicator
	}
	if update.RiskTolerance != nil {
		existing.RiskTolerance = *update.RiskTolerance
	}
	if update.Likelihood != nil {
		existing.Likelihood = update.Likelihood.String()
	}
	if update.Impact != nil {
		existing.Impact = update.Impact.String()
	}
	if update.TouchesAnalysis() {
		existing.AnalysisUpdatedAt = time.Now().UTC()
	}

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk cause", goerr.V("id", id))
	}

	return existing.toModel(), nil
}

func (r *riskCauseRepository) Delete(ctx context.Context, id types.RiskCauseID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk cause not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk cause", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk cause", goerr.V("id", id))
	}

	return nil
}
