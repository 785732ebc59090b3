package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userDocument struct {
	ID           string    `firestore:"id"`
	DisplayName  string    `firestore:"display_name"`
	Email        string    `firestore:"email"`
	UPRID        string    `firestore:"upr_id"`
	ActivePeriod string    `firestore:"active_period"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:           types.UserID(d.ID),
		DisplayName:  d.DisplayName,
		Email:        d.Email,
		UPRID:        types.UPRID(d.UPRID),
		ActivePeriod: d.ActivePeriod,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_users"
	}
	return "users"
}

// Create stores a user profile keyed by the caller-supplied identity
// provider ID. An empty ID is rejected because the document path depends
// on it.
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		return nil, goerr.New("user ID is required")
	}

	now := time.Now().UTC()
	doc := &userDocument{
		ID:           user.ID.String(),
		DisplayName:  user.DisplayName,
		Email:        user.Email,
		UPRID:        user.UPRID.String(),
		ActivePeriod: user.ActivePeriod,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	docRef := r.client.Collection(r.collection()).Doc(user.ID.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("id", user.ID))
	}

	return doc.toModel(), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("id", id))
	}

	return userDoc.toModel(), nil
}

func (r *userRepository) Update(ctx context.Context, id types.UserID, update model.UserUpdate) (*model.User, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var existing userDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("id", id))
	}

	if update.DisplayName != nil {
		existing.DisplayName = *update.DisplayName
	}
	if update.UPRID != nil {
		existing.UPRID = update.UPRID.String()
	}
	if update.ActivePeriod != nil {
		existing.ActivePeriod = *update.ActivePeriod
	}
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("id", id))
	}

	return existing.toModel(), nil
}
