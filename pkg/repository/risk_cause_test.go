package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

func runRiskCauseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	scope := model.Scope{UPRID: "upr-1", Period: "2025"}
	riskID := types.PotentialRiskID("risk-1")

	t.Run("Create leaves analysis fields empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskCause().Create(ctx, &model.RiskCause{
			PotentialRiskID: riskID,
			GoalID:          "goal-1",
			Scope:           scope,
			SequenceNumber:  1,
			Source:          "Internal",
			Description:     "Kapasitas server tidak memadai",
		})
		if err != nil {
			t.Fatalf("failed to create risk cause: %v", err)
		}

		if created.ID == "" {
			t.Error("expected generated ID")
		}
		if created.Likelihood != "" || created.Impact != "" {
			t.Errorf("expected empty analysis, got likelihood=%s impact=%s",
				created.Likelihood, created.Impact)
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
		if !created.AnalysisUpdatedAt.IsZero() {
			t.Errorf("expected zero AnalysisUpdatedAt, got %v", created.AnalysisUpdatedAt)
		}
	})

	t.Run("ListByPotentialRisk filters and orders by sequence", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, c := range []*model.RiskCause{
			{PotentialRiskID: riskID, Scope: scope, SequenceNumber: 2, Description: "Penyebab kedua"},
			{PotentialRiskID: riskID, Scope: scope, SequenceNumber: 1, Description: "Penyebab pertama"},
			{PotentialRiskID: "risk-2", Scope: scope, SequenceNumber: 1, Description: "Risiko lain"},
		} {
			if _, err := repo.RiskCause().Create(ctx, c); err != nil {
				t.Fatalf("failed to create risk cause: %v", err)
			}
		}

		causes, err := repo.RiskCause().ListByPotentialRisk(ctx, riskID, scope)
		if err != nil {
			t.Fatalf("failed to list risk causes: %v", err)
		}

		if len(causes) != 2 {
			t.Fatalf("expected 2 causes, got %d", len(causes))
		}
		if causes[0].SequenceNumber != 1 || causes[1].SequenceNumber != 2 {
			t.Errorf("expected sequences [1 2], got [%d %d]",
				causes[0].SequenceNumber, causes[1].SequenceNumber)
		}
	})

	t.Run("Update of analysis fields bumps AnalysisUpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskCause().Create(ctx, &model.RiskCause{
			PotentialRiskID: riskID,
			Scope:           scope,
			SequenceNumber:  1,
			Description:     "Penyebab",
		})
		if err != nil {
			t.Fatalf("failed to create risk cause: %v", err)
		}

		likelihood := types.LikelihoodOccasional
		impact := types.ImpactSignificant
		updated, err := repo.RiskCause().Update(ctx, created.ID, model.RiskCauseUpdate{
			Likelihood: &likelihood,
			Impact:     &impact,
		})
		if err != nil {
			t.Fatalf("failed to update risk cause: %v", err)
		}

		if updated.Likelihood != likelihood {
			t.Errorf("expected likelihood=%s, got %s", likelihood, updated.Likelihood)
		}
		if updated.Impact != impact {
			t.Errorf("expected impact=%s, got %s", impact, updated.Impact)
		}
		if updated.AnalysisUpdatedAt.IsZero() {
			t.Error("expected AnalysisUpdatedAt to be set")
		}
	})

	t.Run("Update of description alone keeps AnalysisUpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskCause().Create(ctx, &model.RiskCause{
			PotentialRiskID: riskID,
			Scope:           scope,
			SequenceNumber:  1,
			Description:     "Penyebab",
		})
		if err != nil {
			t.Fatalf("failed to create risk cause: %v", err)
		}

		likelihood := types.LikelihoodRare
		analyzed, err := repo.RiskCause().Update(ctx, created.ID, model.RiskCauseUpdate{
			Likelihood: &likelihood,
		})
		if err != nil {
			t.Fatalf("failed to record analysis: %v", err)
		}

		time.Sleep(10 * time.Millisecond)

		newDesc := "Penyebab diperbarui"
		updated, err := repo.RiskCause().Update(ctx, created.ID, model.RiskCauseUpdate{
			Description: &newDesc,
		})
		if err != nil {
			t.Fatalf("failed to update risk cause: %v", err)
		}

		if updated.Description != newDesc {
			t.Errorf("expected description=%s, got %s", newDesc, updated.Description)
		}
		if !updated.AnalysisUpdatedAt.Equal(analyzed.AnalysisUpdatedAt) {
			t.Errorf("AnalysisUpdatedAt should be unchanged: %v vs %v",
				updated.AnalysisUpdatedAt, analyzed.AnalysisUpdatedAt)
		}
	})

	t.Run("Delete removes risk cause", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskCause().Create(ctx, &model.RiskCause{
			PotentialRiskID: riskID,
			Scope:           scope,
			SequenceNumber:  1,
			Description:     "Akan dihapus",
		})
		if err != nil {
			t.Fatalf("failed to create risk cause: %v", err)
		}

		if err := repo.RiskCause().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete risk cause: %v", err)
		}

		_, err = repo.RiskCause().Get(ctx, created.ID)
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestMemoryRiskCauseRepository(t *testing.T) {
	runRiskCauseRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreRiskCauseRepository(t *testing.T) {
	runRiskCauseRepositoryTest(t, newFirestoreRepository)
}
