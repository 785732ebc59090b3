package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/usecase"
)

func TestMonitoringUseCase_AddSession(t *testing.T) {
	t.Run("creates a session", func(t *testing.T) {
		uc := newTestUseCases()

		session, err := uc.Monitoring.AddSession(context.Background(), testScope, usecase.SessionInput{
			Name:      "Pemantauan Triwulan I",
			StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			Status:    "Aktif",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, session.ID).NotEqual(types.SessionID(""))
		gt.Value(t, session.Name).Equal("Pemantauan Triwulan I")
	})

	t.Run("end date before start date rejected", func(t *testing.T) {
		uc := newTestUseCases()

		_, err := uc.Monitoring.AddSession(context.Background(), testScope, usecase.SessionInput{
			Name:      "Pemantauan",
			StartDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		gt.Error(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		uc := newTestUseCases()
		_, err := uc.Monitoring.AddSession(context.Background(), testScope, usecase.SessionInput{})
		gt.Error(t, err)
	})
}

func TestMonitoringUseCase_UpsertExposure(t *testing.T) {
	t.Run("create then overwrite keeps one document", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		session, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{Name: "Pemantauan"})
		gt.NoError(t, err).Required()

		first, err := uc.Monitoring.UpsertExposure(ctx, testScope, session.ID, cause.ID, usecase.ExposureInput{
			ExposureValue: "3",
			ExposureUnit:  "kejadian",
		})
		gt.NoError(t, err).Required()

		second, err := uc.Monitoring.UpsertExposure(ctx, testScope, session.ID, cause.ID, usecase.ExposureInput{
			ExposureValue: "5",
			ExposureUnit:  "kejadian",
			ExposureNotes: "meningkat",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(first.ID)
		gt.Value(t, second.ExposureValue).Equal("5")

		exposures, err := uc.Monitoring.ListExposures(ctx, session.ID, testScope)
		gt.NoError(t, err).Required()
		gt.Array(t, exposures).Length(1)
	})

	t.Run("missing session fails", func(t *testing.T) {
		uc := newTestUseCases()
		cause := seedRiskCause(t, uc, testScope)

		_, err := uc.Monitoring.UpsertExposure(context.Background(), testScope, "no-such-session", cause.ID, usecase.ExposureInput{})
		gt.Bool(t, errors.Is(err, usecase.ErrParentNotFound)).True()
	})

	t.Run("missing cause fails", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()

		session, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{Name: "Pemantauan"})
		gt.NoError(t, err).Required()

		_, err = uc.Monitoring.UpsertExposure(ctx, testScope, session.ID, "no-such-cause", usecase.ExposureInput{})
		gt.Bool(t, errors.Is(err, usecase.ErrParentNotFound)).True()
	})

	t.Run("records monitored controls", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		measure, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Pengendalian"})
		gt.NoError(t, err).Required()

		session, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{Name: "Pemantauan"})
		gt.NoError(t, err).Required()

		exposure, err := uc.Monitoring.UpsertExposure(ctx, testScope, session.ID, cause.ID, usecase.ExposureInput{
			MonitoredControls: []types.ControlMeasureID{measure.ID},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, exposure.MonitoredControls).Length(1).Required()
		gt.Value(t, exposure.MonitoredControls[0]).Equal(measure.ID)
	})
}

func TestMonitoringUseCase_DeleteSession(t *testing.T) {
	t.Run("removes the session and its exposures", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		session, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{Name: "Pemantauan"})
		gt.NoError(t, err).Required()

		_, err = uc.Monitoring.UpsertExposure(ctx, testScope, session.ID, cause.ID, usecase.ExposureInput{ExposureValue: "1"})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Monitoring.DeleteSession(ctx, session.ID, testScope)).Required()

		gone, err := uc.Monitoring.GetSession(ctx, session.ID, testScope)
		gt.NoError(t, err)
		gt.Value(t, gone).Nil()

		_, err = uc.Monitoring.ListExposures(ctx, session.ID, testScope)
		gt.Bool(t, errors.Is(err, usecase.ErrParentNotFound)).True()
	})

	t.Run("deleting a missing session succeeds", func(t *testing.T) {
		uc := newTestUseCases()
		gt.NoError(t, uc.Monitoring.DeleteSession(context.Background(), "no-such-session", testScope))
	})

	t.Run("wrong scope rejected", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()

		session, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{Name: "Pemantauan"})
		gt.NoError(t, err).Required()

		err = uc.Monitoring.DeleteSession(ctx, session.ID, model.Scope{UPRID: "upr-other", Period: "2025"})
		gt.Bool(t, errors.Is(err, usecase.ErrScopeMismatch)).True()
	})
}

func TestMonitoringUseCase_ListSessions(t *testing.T) {
	uc := newTestUseCases()
	ctx := context.Background()

	older, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{
		Name:    "Triwulan I",
		EndDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	gt.NoError(t, err).Required()
	newer, err := uc.Monitoring.AddSession(ctx, testScope, usecase.SessionInput{
		Name:    "Triwulan II",
		EndDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	gt.NoError(t, err).Required()

	sessions, err := uc.Monitoring.ListSessions(ctx, testScope)
	gt.NoError(t, err).Required()
	gt.Array(t, sessions).Length(2).Required()
	gt.Value(t, sessions[0].ID).Equal(newer.ID)
	gt.Value(t, sessions[1].ID).Equal(older.ID)
}
