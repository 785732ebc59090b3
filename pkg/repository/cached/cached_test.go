package cached_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/repository/cached"
	"github.com/upr-lab/riskwise/pkg/repository/memory"
)

func TestUPRCacheServesStaleReads(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	repo := cached.New(base)

	created, err := repo.UPR().Create(ctx, &model.UPR{
		Name:         "Direktorat TI",
		ActivePeriod: "2025",
	})
	gt.NoError(t, err)

	// Write around the cache; the stale name proves reads are cached
	newName := "Direktorat Teknologi Informasi"
	_, err = base.UPR().Update(ctx, created.ID, model.UPRUpdate{Name: &newName})
	gt.NoError(t, err)

	got, err := repo.UPR().Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.Value(t, got.Name).Equal("Direktorat TI")
}

func TestUPRCacheExpires(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	repo := cached.New(base, cached.WithTTL(time.Nanosecond))

	created, err := repo.UPR().Create(ctx, &model.UPR{
		Name:         "Direktorat TI",
		ActivePeriod: "2025",
	})
	gt.NoError(t, err)

	newName := "Direktorat Teknologi Informasi"
	_, err = base.UPR().Update(ctx, created.ID, model.UPRUpdate{Name: &newName})
	gt.NoError(t, err)

	time.Sleep(time.Millisecond)

	got, err := repo.UPR().Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.Value(t, got.Name).Equal(newName)
}

func TestUPRCacheRefreshedOnUpdate(t *testing.T) {
	ctx := context.Background()
	repo := cached.New(memory.New())

	created, err := repo.UPR().Create(ctx, &model.UPR{
		Name:         "Direktorat TI",
		ActivePeriod: "2025",
	})
	gt.NoError(t, err)

	newPeriod := "2026"
	_, err = repo.UPR().Update(ctx, created.ID, model.UPRUpdate{ActivePeriod: &newPeriod})
	gt.NoError(t, err)

	got, err := repo.UPR().Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.Value(t, got.ActivePeriod).Equal("2026")
}

func TestUPRCacheInvalidatedOnDelete(t *testing.T) {
	ctx := context.Background()
	repo := cached.New(memory.New())

	created, err := repo.UPR().Create(ctx, &model.UPR{
		Name:         "Direktorat TI",
		ActivePeriod: "2025",
	})
	gt.NoError(t, err)

	gt.NoError(t, repo.UPR().Delete(ctx, created.ID))

	_, err = repo.UPR().Get(ctx, created.ID)
	gt.Error(t, err)
}

func TestUserCacheServesStaleReads(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	repo := cached.New(base)

	created, err := repo.User().Create(ctx, &model.User{
		ID:          "user-1",
		DisplayName: "Budi",
		Email:       "budi@example.go.id",
	})
	gt.NoError(t, err)

	newName := "Budi Santoso"
	_, err = base.User().Update(ctx, created.ID, model.UserUpdate{DisplayName: &newName})
	gt.NoError(t, err)

	got, err := repo.User().Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.Value(t, got.DisplayName).Equal("Budi")

	// Writing through the cache refreshes the entry
	_, err = repo.User().Update(ctx, created.ID, model.UserUpdate{DisplayName: &newName})
	gt.NoError(t, err)

	got, err = repo.User().Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.Value(t, got.DisplayName).Equal("Budi Santoso")
}

func TestHierarchyIsPassThrough(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	repo := cached.New(base)

	created, err := repo.Goal().Create(ctx, &model.Goal{
		Scope:       model.Scope{UPRID: "upr-1", Period: "2025"},
		Code:        "S1",
		Name:        "Meningkatkan layanan publik",
		Description: "Sasaran strategis",
	})
	gt.NoError(t, err)

	newName := "Meningkatkan kualitas layanan publik"
	_, err = base.Goal().Update(ctx, created.ID, model.GoalUpdate{Name: &newName})
	gt.NoError(t, err)

	got, err := repo.Goal().Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.Value(t, got.Name).Equal(newName)
}
