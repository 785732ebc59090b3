package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/usecase"
)

func seedRiskCause(t *testing.T, uc *usecase.UseCases, scope model.Scope) *model.RiskCause {
	t.Helper()
	risk := seedPotentialRisk(t, uc, scope)
	cause, err := uc.RiskCause.Add(context.Background(), scope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab uji"})
	gt.NoError(t, err).Required()
	return cause
}

func TestControlMeasureUseCase_Add(t *testing.T) {
	t.Run("keeps a recognized control type", func(t *testing.T) {
		uc := newTestUseCases()
		cause := seedRiskCause(t, uc, testScope)

		measure, err := uc.ControlMeasure.Add(context.Background(), testScope, cause.ID, usecase.ControlMeasureInput{
			ControlType:         "RM",
			Description:         "Pengendalian",
			KeyControlIndicator: "KCI",
			Target:              "95%",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, measure.ControlType).Equal(types.ControlTypeMitigation)
		gt.Value(t, measure.RiskCauseID).Equal(cause.ID)
		gt.Value(t, measure.PotentialRiskID).Equal(cause.PotentialRiskID)
		gt.Value(t, measure.GoalID).Equal(cause.GoalID)
	})

	t.Run("coerces unrecognized control types to preventive", func(t *testing.T) {
		uc := newTestUseCases()
		cause := seedRiskCause(t, uc, testScope)

		for _, v := range []string{"", "Detektif", "prv"} {
			measure, err := uc.ControlMeasure.Add(context.Background(), testScope, cause.ID, usecase.ControlMeasureInput{
				ControlType: v,
				Description: "Pengendalian",
			})
			gt.NoError(t, err).Required()
			gt.Value(t, measure.ControlType).Equal(types.ControlTypePreventive)
		}
	})

	t.Run("missing parent cause fails", func(t *testing.T) {
		uc := newTestUseCases()
		_, err := uc.ControlMeasure.Add(context.Background(), testScope, "no-such-cause", usecase.ControlMeasureInput{Description: "Pengendalian"})
		gt.Bool(t, errors.Is(err, usecase.ErrParentNotFound)).True()
	})

	t.Run("empty description fails", func(t *testing.T) {
		uc := newTestUseCases()
		cause := seedRiskCause(t, uc, testScope)

		_, err := uc.ControlMeasure.Add(context.Background(), testScope, cause.ID, usecase.ControlMeasureInput{})
		gt.Error(t, err)
	})

	t.Run("siblings get increasing sequence numbers", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		first, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Pertama"})
		gt.NoError(t, err).Required()
		second, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Kedua"})
		gt.NoError(t, err).Required()

		gt.Value(t, first.SequenceNumber).Equal(1)
		gt.Value(t, second.SequenceNumber).Equal(2)
	})
}

func TestControlMeasureUseCase_Update(t *testing.T) {
	t.Run("coerces a patched control type", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		measure, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{
			ControlType: "Crr",
			Description: "Pengendalian",
		})
		gt.NoError(t, err).Required()

		bogus := types.ControlType("Detektif")
		updated, err := uc.ControlMeasure.Update(ctx, measure.ID, testScope, model.ControlMeasureUpdate{ControlType: &bogus})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ControlType).Equal(types.ControlTypePreventive)
	})

	t.Run("wrong scope rejected", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		measure, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Pengendalian"})
		gt.NoError(t, err).Required()

		desc := "lain"
		_, err = uc.ControlMeasure.Update(ctx, measure.ID, model.Scope{UPRID: "upr-other", Period: "2025"}, model.ControlMeasureUpdate{Description: &desc})
		gt.Bool(t, errors.Is(err, usecase.ErrScopeMismatch)).True()
	})
}

func TestControlMeasureUseCase_Delete(t *testing.T) {
	t.Run("removes the measure", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		measure, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Pengendalian"})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.ControlMeasure.Delete(ctx, measure.ID, testScope)).Required()

		gone, err := uc.ControlMeasure.Get(ctx, measure.ID, testScope)
		gt.NoError(t, err)
		gt.Value(t, gone).Nil()
	})

	t.Run("deleting twice succeeds", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		cause := seedRiskCause(t, uc, testScope)

		measure, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Pengendalian"})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.ControlMeasure.Delete(ctx, measure.ID, testScope))
		gt.NoError(t, uc.ControlMeasure.Delete(ctx, measure.ID, testScope))
	})
}
