package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
)

// Firestore is the production repository backed by Cloud Firestore
type Firestore struct {
	client         *firestore.Client
	goal           *goalRepository
	potentialRisk  *potentialRiskRepository
	riskCause      *riskCauseRepository
	controlMeasure *controlMeasureRepository
	session        *sessionRepository
	exposure       *exposureRepository
	upr            *uprRepository
	user           *userRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, used to share one
// database between environments
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.goal.collectionPrefix = prefix
		f.potentialRisk.collectionPrefix = prefix
		f.riskCause.collectionPrefix = prefix
		f.controlMeasure.collectionPrefix = prefix
		f.session.collectionPrefix = prefix
		f.exposure.collectionPrefix = prefix
		f.upr.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:         client,
		goal:           newGoalRepository(client),
		potentialRisk:  newPotentialRiskRepository(client),
		riskCause:      newRiskCauseRepository(client),
		controlMeasure: newControlMeasureRepository(client),
		session:        newSessionRepository(client),
		exposure:       newExposureRepository(client),
		upr:            newUPRRepository(client),
		user:           newUserRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Goal() interfaces.GoalRepository {
	return f.goal
}

func (f *Firestore) PotentialRisk() interfaces.PotentialRiskRepository {
	return f.potentialRisk
}

func (f *Firestore) RiskCause() interfaces.RiskCauseRepository {
	return f.riskCause
}

func (f *Firestore) ControlMeasure() interfaces.ControlMeasureRepository {
	return f.controlMeasure
}

func (f *Firestore) MonitoringSession() interfaces.MonitoringSessionRepository {
	return f.session
}

func (f *Firestore) RiskExposure() interfaces.RiskExposureRepository {
	return f.exposure
}

func (f *Firestore) UPR() interfaces.UPRRepository {
	return f.upr
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
