package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/usecase"
	"github.com/upr-lab/riskwise/pkg/utils/errutil"
)

type potentialRiskResponse struct {
	ID             types.PotentialRiskID `json:"id"`
	GoalID         types.GoalID          `json:"goalId"`
	UPRID          types.UPRID           `json:"uprId"`
	Period         string                `json:"period"`
	SequenceNumber int                   `json:"sequenceNumber"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	Owner          string                `json:"owner"`
	IdentifiedAt   time.Time             `json:"identifiedAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func toPotentialRiskResponse(p *model.PotentialRisk) potentialRiskResponse {
	return potentialRiskResponse{
		ID:             p.ID,
		GoalID:         p.GoalID,
		UPRID:          p.Scope.UPRID,
		Period:         p.Scope.Period,
		SequenceNumber: p.SequenceNumber,
		Description:    p.Description,
		Category:       p.Category,
		Owner:          p.Owner,
		IdentifiedAt:   p.IdentifiedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func listPotentialRisksHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		risks, err := uc.PotentialRisk.ListByGoal(r.Context(), types.GoalID(chi.URLParam(r, "goalID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]potentialRiskResponse, 0, len(risks))
		for _, p := range risks {
			resp = append(resp, toPotentialRiskResponse(p))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createPotentialRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		Owner       string `json:"owner"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		if req.Description == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("potential risk description is required"), http.StatusBadRequest)
			return
		}

		risk, err := uc.PotentialRisk.Add(r.Context(), scope, types.GoalID(chi.URLParam(r, "goalID")), usecase.PotentialRiskInput{
			Description: req.Description,
			Category:    req.Category,
			Owner:       req.Owner,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toPotentialRiskResponse(risk))
	}
}

func getPotentialRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		risk, err := uc.PotentialRisk.Get(r.Context(), types.PotentialRiskID(chi.URLParam(r, "riskID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if risk == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "potential risk not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toPotentialRiskResponse(risk))
	}
}

func updatePotentialRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Owner       *string `json:"owner"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		if req.Description != nil && *req.Description == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("potential risk description is required"), http.StatusBadRequest)
			return
		}

		risk, err := uc.PotentialRisk.Update(r.Context(), types.PotentialRiskID(chi.URLParam(r, "riskID")), scope, model.PotentialRiskUpdate{
			Description: req.Description,
			Category:    req.Category,
			Owner:       req.Owner,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toPotentialRiskResponse(risk))
	}
}

func deletePotentialRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.PotentialRisk.DeleteCascading(r.Context(), types.PotentialRiskID(chi.URLParam(r, "riskID")), scope); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
