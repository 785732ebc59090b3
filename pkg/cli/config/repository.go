package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/repository/cached"
	"github.com/upr-lab/riskwise/pkg/repository/firestore"
	"github.com/upr-lab/riskwise/pkg/repository/memory"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	projectID  string
	databaseID string
	cacheTTL   time.Duration
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Value:       "firestore",
			Sources:     cli.EnvVars("RISKWISE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("RISKWISE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("RISKWISE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.DurationFlag{
			Name:        "repository-cache-ttl",
			Usage:       "TTL for the read-through repository cache (0 disables caching)",
			Sources:     cli.EnvVars("RISKWISE_REPOSITORY_CACHE_TTL"),
			Destination: &r.cacheTTL,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	var repo interfaces.Repository

	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		fs, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		repo = fs

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		repo = memory.New()

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}

	if r.cacheTTL > 0 {
		logging.Default().Info("Repository cache enabled", "ttl", r.cacheTTL.String())
		repo = cached.New(repo, cached.WithTTL(r.cacheTTL))
	}

	return repo, nil
}
