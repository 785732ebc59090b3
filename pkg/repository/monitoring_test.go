package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
)

func runMonitoringRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	scope := model.Scope{UPRID: "upr-1", Period: "2025"}

	t.Run("Session list orders by end date descending", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		q1End := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		q2End := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		for _, s := range []*model.MonitoringSession{
			{Scope: scope, Name: "Triwulan I", StartDate: q1End.AddDate(0, -3, 0), EndDate: q1End, Status: "Selesai"},
			{Scope: scope, Name: "Triwulan II", StartDate: q2End.AddDate(0, -3, 0), EndDate: q2End, Status: "Aktif"},
			{Scope: model.Scope{UPRID: "upr-2", Period: "2025"}, Name: "Unit lain", EndDate: q2End},
		} {
			if _, err := repo.MonitoringSession().Create(ctx, s); err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
		}

		sessions, err := repo.MonitoringSession().List(ctx, scope)
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}

		if len(sessions) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(sessions))
		}
		if sessions[0].Name != "Triwulan II" || sessions[1].Name != "Triwulan I" {
			t.Errorf("unexpected order: [%s %s]", sessions[0].Name, sessions[1].Name)
		}
	})

	t.Run("Session update patches status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.MonitoringSession().Create(ctx, &model.MonitoringSession{
			Scope:  scope,
			Name:   "Triwulan I",
			Status: "Aktif",
		})
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		done := "Selesai"
		updated, err := repo.MonitoringSession().Update(ctx, created.ID, model.MonitoringSessionUpdate{Status: &done})
		if err != nil {
			t.Fatalf("failed to update session: %v", err)
		}

		if updated.Status != "Selesai" {
			t.Errorf("expected status=Selesai, got %s", updated.Status)
		}
		if updated.Name != "Triwulan I" {
			t.Errorf("name should be unchanged, got %s", updated.Name)
		}
	})

	t.Run("Exposure GetByKey finds the session and cause pair", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskExposure().Create(ctx, &model.RiskExposure{
			SessionID:     "session-1",
			RiskCauseID:   "cause-1",
			Scope:         scope,
			ExposureValue: "12",
			ExposureUnit:  "insiden",
		})
		if err != nil {
			t.Fatalf("failed to create exposure: %v", err)
		}

		got, err := repo.RiskExposure().GetByKey(ctx, "session-1", "cause-1")
		if err != nil {
			t.Fatalf("failed to get exposure by key: %v", err)
		}
		if got.ID != created.ID {
			t.Errorf("expected ID=%s, got %s", created.ID, got.ID)
		}
		if got.ExposureValue != "12" {
			t.Errorf("expected value=12, got %s", got.ExposureValue)
		}

		_, err = repo.RiskExposure().GetByKey(ctx, "session-1", "cause-2")
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound for missing pair, got %v", err)
		}
	})

	t.Run("Exposure update preserves identity and recording time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskExposure().Create(ctx, &model.RiskExposure{
			SessionID:     "session-1",
			RiskCauseID:   "cause-1",
			Scope:         scope,
			ExposureValue: "12",
			MonitoredControls: []types.ControlMeasureID{
				"measure-1",
			},
		})
		if err != nil {
			t.Fatalf("failed to create exposure: %v", err)
		}

		time.Sleep(10 * time.Millisecond)

		updated, err := repo.RiskExposure().Update(ctx, created.ID, &model.RiskExposure{
			SessionID:     created.SessionID,
			RiskCauseID:   created.RiskCauseID,
			Scope:         scope,
			ExposureValue: "15",
			MonitoredControls: []types.ControlMeasureID{
				"measure-1", "measure-2",
			},
		})
		if err != nil {
			t.Fatalf("failed to update exposure: %v", err)
		}

		if updated.ID != created.ID {
			t.Errorf("ID should not change, got %s", updated.ID)
		}
		if !updated.RecordedAt.Equal(created.RecordedAt) {
			t.Errorf("RecordedAt should not change: %v vs %v",
				updated.RecordedAt, created.RecordedAt)
		}
		if updated.ExposureValue != "15" {
			t.Errorf("expected value=15, got %s", updated.ExposureValue)
		}
		if len(updated.MonitoredControls) != 2 {
			t.Errorf("expected 2 monitored controls, got %d", len(updated.MonitoredControls))
		}
	})

	t.Run("Exposure list filters by session and scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, e := range []*model.RiskExposure{
			{SessionID: "session-1", RiskCauseID: "cause-b", Scope: scope},
			{SessionID: "session-1", RiskCauseID: "cause-a", Scope: scope},
			{SessionID: "session-2", RiskCauseID: "cause-a", Scope: scope},
		} {
			if _, err := repo.RiskExposure().Create(ctx, e); err != nil {
				t.Fatalf("failed to create exposure: %v", err)
			}
		}

		exposures, err := repo.RiskExposure().ListBySession(ctx, "session-1", scope)
		if err != nil {
			t.Fatalf("failed to list exposures: %v", err)
		}

		if len(exposures) != 2 {
			t.Fatalf("expected 2 exposures, got %d", len(exposures))
		}
		if exposures[0].RiskCauseID != "cause-a" || exposures[1].RiskCauseID != "cause-b" {
			t.Errorf("unexpected order: [%s %s]",
				exposures[0].RiskCauseID, exposures[1].RiskCauseID)
		}
	})

	t.Run("Exposure delete removes the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskExposure().Create(ctx, &model.RiskExposure{
			SessionID:   "session-1",
			RiskCauseID: "cause-1",
			Scope:       scope,
		})
		if err != nil {
			t.Fatalf("failed to create exposure: %v", err)
		}

		if err := repo.RiskExposure().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete exposure: %v", err)
		}

		_, err = repo.RiskExposure().GetByKey(ctx, "session-1", "cause-1")
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestMemoryMonitoringRepository(t *testing.T) {
	runMonitoringRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreMonitoringRepository(t *testing.T) {
	runMonitoringRepositoryTest(t, newFirestoreRepository)
}
