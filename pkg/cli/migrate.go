package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("RISKWISE_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("RISKWISE_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			indexConfig := getIndexConfig()

			client, err := fireconf.NewClient(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				plan, err := client.GetMigrationPlan(ctx, indexConfig)
				if err != nil {
					return goerr.Wrap(err, "failed to create migration plan")
				}

				if len(plan.Steps) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, step := range plan.Steps {
					logger.Info("Migration step",
						"collection", step.Collection,
						"operation", step.Operation,
						"description", step.Description,
						"destructive", step.Destructive)
				}
			} else {
				logger.Info("Applying migrations")
				if err := client.Migrate(ctx, indexConfig); err != nil {
					return goerr.Wrap(err, "failed to apply migrations")
				}
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig() *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: "goals",
				Indexes: []fireconf.Index{
					// List: upr_id ASC, period ASC, code ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "upr_id", Order: fireconf.OrderAscending},
							{Path: "period", Order: fireconf.OrderAscending},
							{Path: "code", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "potential_risks",
				Indexes: []fireconf.Index{
					// ListByGoal: goal_id + scope ASC, sequence_number ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "goal_id", Order: fireconf.OrderAscending},
							{Path: "upr_id", Order: fireconf.OrderAscending},
							{Path: "period", Order: fireconf.OrderAscending},
							{Path: "sequence_number", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "risk_causes",
				Indexes: []fireconf.Index{
					// ListByPotentialRisk: potential_risk_id + scope ASC, sequence_number ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "potential_risk_id", Order: fireconf.OrderAscending},
							{Path: "upr_id", Order: fireconf.OrderAscending},
							{Path: "period", Order: fireconf.OrderAscending},
							{Path: "sequence_number", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "control_measures",
				Indexes: []fireconf.Index{
					// ListByRiskCause: risk_cause_id + scope ASC, sequence_number ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "risk_cause_id", Order: fireconf.OrderAscending},
							{Path: "upr_id", Order: fireconf.OrderAscending},
							{Path: "period", Order: fireconf.OrderAscending},
							{Path: "sequence_number", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "monitoring_sessions",
				Indexes: []fireconf.Index{
					// ListByScope: upr_id ASC, period ASC, end_date DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "upr_id", Order: fireconf.OrderAscending},
							{Path: "period", Order: fireconf.OrderAscending},
							{Path: "end_date", Order: fireconf.OrderDescending},
						},
					},
				},
			},
			{
				Name: "risk_exposures",
				Indexes: []fireconf.Index{
					// GetBySessionAndCause: session_id ASC, risk_cause_id ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "session_id", Order: fireconf.OrderAscending},
							{Path: "risk_cause_id", Order: fireconf.OrderAscending},
						},
					},
					// ListBySession: session_id + scope ASC, risk_cause_id ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "session_id", Order: fireconf.OrderAscending},
							{Path: "upr_id", Order: fireconf.OrderAscending},
							{Path: "period", Order: fireconf.OrderAscending},
							{Path: "risk_cause_id", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
