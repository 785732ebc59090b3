package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/repository/firestore"
	"github.com/upr-lab/riskwise/pkg/repository/memory"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func runGoalRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	scope := model.Scope{UPRID: "upr-1", Period: "2025"}

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Goal().Create(ctx, &model.Goal{
			Scope:       scope,
			Code:        "M1",
			Name:        "Meningkatkan kualitas layanan",
			Description: "Sasaran strategis utama",
		})
		if err != nil {
			t.Fatalf("failed to create goal: %v", err)
		}

		if created.ID == "" {
			t.Error("expected generated ID")
		}
		if created.Code != "M1" {
			t.Errorf("expected code=M1, got %s", created.Code)
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
		if created.UpdatedAt.IsZero() {
			t.Error("expected non-zero UpdatedAt")
		}
	})

	t.Run("Get retrieves existing goal", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Goal().Create(ctx, &model.Goal{
			Scope: scope,
			Code:  "M1",
			Name:  "Meningkatkan kualitas layanan",
		})
		if err != nil {
			t.Fatalf("failed to create goal: %v", err)
		}

		retrieved, err := repo.Goal().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get goal: %v", err)
		}

		if retrieved.ID != created.ID {
			t.Errorf("expected ID=%s, got %s", created.ID, retrieved.ID)
		}
		if retrieved.Name != created.Name {
			t.Errorf("expected name=%s, got %s", created.Name, retrieved.Name)
		}
		if retrieved.Scope != scope {
			t.Errorf("expected scope=%v, got %v", scope, retrieved.Scope)
		}
	})

	t.Run("Get returns ErrNotFound for missing goal", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Goal().Get(ctx, "no-such-goal")
		if err == nil {
			t.Fatal("expected error for missing goal")
		}
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List filters by scope and orders by code", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, g := range []*model.Goal{
			{Scope: scope, Code: "S2", Name: "Sasaran dua"},
			{Scope: scope, Code: "M1", Name: "Sasaran satu"},
			{Scope: model.Scope{UPRID: "upr-1", Period: "2024"}, Code: "A1", Name: "Periode lain"},
			{Scope: model.Scope{UPRID: "upr-2", Period: "2025"}, Code: "B1", Name: "Unit lain"},
		} {
			if _, err := repo.Goal().Create(ctx, g); err != nil {
				t.Fatalf("failed to create goal: %v", err)
			}
		}

		goals, err := repo.Goal().List(ctx, scope)
		if err != nil {
			t.Fatalf("failed to list goals: %v", err)
		}

		if len(goals) != 2 {
			t.Fatalf("expected 2 goals, got %d", len(goals))
		}
		if goals[0].Code != "M1" || goals[1].Code != "S2" {
			t.Errorf("expected codes [M1 S2], got [%s %s]", goals[0].Code, goals[1].Code)
		}
	})

	t.Run("Update patches only provided fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Goal().Create(ctx, &model.Goal{
			Scope:       scope,
			Code:        "M1",
			Name:        "Nama awal",
			Description: "Deskripsi awal",
		})
		if err != nil {
			t.Fatalf("failed to create goal: %v", err)
		}

		time.Sleep(10 * time.Millisecond)

		newName := "Nama baru"
		updated, err := repo.Goal().Update(ctx, created.ID, model.GoalUpdate{Name: &newName})
		if err != nil {
			t.Fatalf("failed to update goal: %v", err)
		}

		if updated.Name != "Nama baru" {
			t.Errorf("expected name='Nama baru', got %s", updated.Name)
		}
		if updated.Description != "Deskripsi awal" {
			t.Errorf("description should be unchanged, got %s", updated.Description)
		}
		if updated.Code != "M1" {
			t.Errorf("code should be unchanged, got %s", updated.Code)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Errorf("UpdatedAt should advance, got %v", updated.UpdatedAt)
		}
	})

	t.Run("Update returns ErrNotFound for missing goal", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		name := "x"
		_, err := repo.Goal().Update(ctx, "no-such-goal", model.GoalUpdate{Name: &name})
		if err == nil {
			t.Fatal("expected error for missing goal")
		}
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete removes goal", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Goal().Create(ctx, &model.Goal{
			Scope: scope,
			Code:  "M1",
			Name:  "Akan dihapus",
		})
		if err != nil {
			t.Fatalf("failed to create goal: %v", err)
		}

		if err := repo.Goal().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete goal: %v", err)
		}

		_, err = repo.Goal().Get(ctx, created.ID)
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		err = repo.Goal().Delete(ctx, created.ID)
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestMemoryGoalRepository(t *testing.T) {
	runGoalRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreGoalRepository(t *testing.T) {
	runGoalRepositoryTest(t, newFirestoreRepository)
}
