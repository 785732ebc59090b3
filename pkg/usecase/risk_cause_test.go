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

func seedPotentialRisk(t *testing.T, uc *usecase.UseCases, scope model.Scope) *model.PotentialRisk {
	t.Helper()
	goal := seedGoal(t, uc, scope)
	risk, err := uc.PotentialRisk.Add(context.Background(), scope, goal.ID, usecase.PotentialRiskInput{Description: "Risiko uji"})
	gt.NoError(t, err).Required()
	return risk
}

func TestRiskCauseUseCase_Add(t *testing.T) {
	t.Run("copies ancestry from the parent", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(ctx, testScope, risk.ID, usecase.RiskCauseInput{
			Source:      "Internal",
			Description: "Penyebab",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, cause.PotentialRiskID).Equal(risk.ID)
		gt.Value(t, cause.GoalID).Equal(risk.GoalID)
		gt.Value(t, cause.SequenceNumber).Equal(1)
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		uc := newTestUseCases()
		risk := seedPotentialRisk(t, uc, testScope)

		_, err := uc.RiskCause.Add(context.Background(), testScope, risk.ID, usecase.RiskCauseInput{
			Source:      "Luar Angkasa",
			Description: "Penyebab",
		})
		gt.Error(t, err)
	})

	t.Run("missing parent fails", func(t *testing.T) {
		uc := newTestUseCases()
		_, err := uc.RiskCause.Add(context.Background(), testScope, "no-such-risk", usecase.RiskCauseInput{Description: "Penyebab"})
		gt.Bool(t, errors.Is(err, usecase.ErrParentNotFound)).True()
	})

	t.Run("new cause starts unanalyzed", func(t *testing.T) {
		uc := newTestUseCases()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(context.Background(), testScope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab"})
		gt.NoError(t, err).Required()
		level, score := cause.RiskLevel()
		gt.Value(t, level).Equal(types.RiskLevelNA)
		gt.Value(t, score).Nil()
	})
}

func TestRiskCauseUseCase_Update(t *testing.T) {
	t.Run("records analysis and derives the level", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(ctx, testScope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab"})
		gt.NoError(t, err).Required()

		likelihood := types.LikelihoodAlmostCertain
		impact := types.ImpactVerySignificant
		updated, err := uc.RiskCause.Update(ctx, cause.ID, testScope, model.RiskCauseUpdate{
			Likelihood: &likelihood,
			Impact:     &impact,
		})
		gt.NoError(t, err).Required()

		level, score := updated.RiskLevel()
		gt.Value(t, level).Equal(types.RiskLevelVeryHigh)
		gt.Value(t, score).NotNil()
		gt.Value(t, *score).Equal(25)
	})

	t.Run("unrecognized likelihood rejected", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(ctx, testScope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab"})
		gt.NoError(t, err).Required()

		bogus := types.Likelihood("Mungkin saja")
		_, err = uc.RiskCause.Update(ctx, cause.ID, testScope, model.RiskCauseUpdate{Likelihood: &bogus})
		gt.Error(t, err)
	})

	t.Run("empty likelihood clears the analysis", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(ctx, testScope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab"})
		gt.NoError(t, err).Required()

		likelihood := types.LikelihoodRare
		impact := types.ImpactMinor
		_, err = uc.RiskCause.Update(ctx, cause.ID, testScope, model.RiskCauseUpdate{
			Likelihood: &likelihood,
			Impact:     &impact,
		})
		gt.NoError(t, err).Required()

		empty := types.Likelihood("")
		updated, err := uc.RiskCause.Update(ctx, cause.ID, testScope, model.RiskCauseUpdate{Likelihood: &empty})
		gt.NoError(t, err).Required()

		level, _ := updated.RiskLevel()
		gt.Value(t, level).Equal(types.RiskLevelNA)
	})

	t.Run("wrong scope rejected", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(ctx, testScope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab"})
		gt.NoError(t, err).Required()

		desc := "lain"
		_, err = uc.RiskCause.Update(ctx, cause.ID, model.Scope{UPRID: "upr-other", Period: "2025"}, model.RiskCauseUpdate{Description: &desc})
		gt.Bool(t, errors.Is(err, usecase.ErrScopeMismatch)).True()
	})
}

func TestRiskCauseUseCase_DeleteCascading(t *testing.T) {
	t.Run("removes the cause and its measures", func(t *testing.T) {
		uc := newTestUseCases()
		ctx := context.Background()
		risk := seedPotentialRisk(t, uc, testScope)

		cause, err := uc.RiskCause.Add(ctx, testScope, risk.ID, usecase.RiskCauseInput{Description: "Penyebab"})
		gt.NoError(t, err).Required()

		measure, err := uc.ControlMeasure.Add(ctx, testScope, cause.ID, usecase.ControlMeasureInput{Description: "Pengendalian"})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.RiskCause.DeleteCascading(ctx, cause.ID, testScope)).Required()

		gone, err := uc.RiskCause.Get(ctx, cause.ID, testScope)
		gt.NoError(t, err)
		gt.Value(t, gone).Nil()

		goneMeasure, err := uc.ControlMeasure.Get(ctx, measure.ID, testScope)
		gt.NoError(t, err)
		gt.Value(t, goneMeasure).Nil()

		// The parent risk is untouched
		kept, err := uc.PotentialRisk.Get(ctx, risk.ID, testScope)
		gt.NoError(t, err)
		gt.Value(t, kept).NotNil()
	})

	t.Run("deleting a missing cause succeeds", func(t *testing.T) {
		uc := newTestUseCases()
		gt.NoError(t, uc.RiskCause.DeleteCascading(context.Background(), "no-such-cause", testScope))
	})
}
