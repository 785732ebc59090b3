package repository_test

import (
	"context"
	"testing"

	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

func runPotentialRiskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	scope := model.Scope{UPRID: "upr-1", Period: "2025"}
	goalID := types.GoalID("goal-1")

	t.Run("Create assigns ID and identification timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.PotentialRisk().Create(ctx, &model.PotentialRisk{
			GoalID:         goalID,
			Scope:          scope,
			SequenceNumber: 1,
			Description:    "Gangguan layanan pusat data",
			Category:       "Risiko Operasional",
			Owner:          "Kepala Subbagian TI",
		})
		if err != nil {
			t.Fatalf("failed to create potential risk: %v", err)
		}

		if created.ID == "" {
			t.Error("expected generated ID")
		}
		if created.SequenceNumber != 1 {
			t.Errorf("expected sequence=1, got %d", created.SequenceNumber)
		}
		if created.IdentifiedAt.IsZero() {
			t.Error("expected non-zero IdentifiedAt")
		}
	})

	t.Run("ListByGoal filters by goal and scope, ordered by sequence", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, r := range []*model.PotentialRisk{
			{GoalID: goalID, Scope: scope, SequenceNumber: 2, Description: "Risiko kedua"},
			{GoalID: goalID, Scope: scope, SequenceNumber: 1, Description: "Risiko pertama"},
			{GoalID: "goal-2", Scope: scope, SequenceNumber: 1, Description: "Sasaran lain"},
			{GoalID: goalID, Scope: model.Scope{UPRID: "upr-2", Period: "2025"}, SequenceNumber: 1, Description: "Unit lain"},
		} {
			if _, err := repo.PotentialRisk().Create(ctx, r); err != nil {
				t.Fatalf("failed to create potential risk: %v", err)
			}
		}

		risks, err := repo.PotentialRisk().ListByGoal(ctx, goalID, scope)
		if err != nil {
			t.Fatalf("failed to list potential risks: %v", err)
		}

		if len(risks) != 2 {
			t.Fatalf("expected 2 risks, got %d", len(risks))
		}
		if risks[0].SequenceNumber != 1 || risks[1].SequenceNumber != 2 {
			t.Errorf("expected sequences [1 2], got [%d %d]",
				risks[0].SequenceNumber, risks[1].SequenceNumber)
		}
	})

	t.Run("Update patches fields but not sequence or parent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.PotentialRisk().Create(ctx, &model.PotentialRisk{
			GoalID:         goalID,
			Scope:          scope,
			SequenceNumber: 3,
			Description:    "Deskripsi awal",
			Category:       "Risiko Operasional",
		})
		if err != nil {
			t.Fatalf("failed to create potential risk: %v", err)
		}

		newOwner := "Kepala Bagian Umum"
		updated, err := repo.PotentialRisk().Update(ctx, created.ID, model.PotentialRiskUpdate{Owner: &newOwner})
		if err != nil {
			t.Fatalf("failed to update potential risk: %v", err)
		}

		if updated.Owner != newOwner {
			t.Errorf("expected owner=%s, got %s", newOwner, updated.Owner)
		}
		if updated.Description != "Deskripsi awal" {
			t.Errorf("description should be unchanged, got %s", updated.Description)
		}
		if updated.SequenceNumber != 3 {
			t.Errorf("sequence should be unchanged, got %d", updated.SequenceNumber)
		}
		if updated.GoalID != goalID {
			t.Errorf("goal should be unchanged, got %s", updated.GoalID)
		}
	})

	t.Run("Delete removes potential risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.PotentialRisk().Create(ctx, &model.PotentialRisk{
			GoalID:         goalID,
			Scope:          scope,
			SequenceNumber: 1,
			Description:    "Akan dihapus",
		})
		if err != nil {
			t.Fatalf("failed to create potential risk: %v", err)
		}

		if err := repo.PotentialRisk().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete potential risk: %v", err)
		}

		_, err = repo.PotentialRisk().Get(ctx, created.ID)
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestMemoryPotentialRiskRepository(t *testing.T) {
	runPotentialRiskRepositoryTest(t, newMemoryRepository)
}

func TestFirestorePotentialRiskRepository(t *testing.T) {
	runPotentialRiskRepositoryTest(t, newFirestoreRepository)
}
