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

type goalResponse struct {
	ID          types.GoalID `json:"id"`
	UPRID       types.UPRID  `json:"uprId"`
	Period      string       `json:"period"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Code        string       `json:"code"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func toGoalResponse(g *model.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		UPRID:       g.Scope.UPRID,
		Period:      g.Scope.Period,
		Name:        g.Name,
		Description: g.Description,
		Code:        g.Code,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func listGoalsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		goals, err := uc.Goal.List(r.Context(), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]goalResponse, 0, len(goals))
		for _, g := range goals {
			resp = append(resp, toGoalResponse(g))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createGoalHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name        string `json:"name"`
		Description string `json:"description"`
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
		if req.Name == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("goal name is required"), http.StatusBadRequest)
			return
		}

		goal, err := uc.Goal.Add(r.Context(), scope, req.Name, req.Description)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toGoalResponse(goal))
	}
}

func getGoalHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		goal, err := uc.Goal.Get(r.Context(), types.GoalID(chi.URLParam(r, "goalID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if goal == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "goal not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toGoalResponse(goal))
	}
}

func updateGoalHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
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
		if req.Name != nil && *req.Name == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("goal name is required"), http.StatusBadRequest)
			return
		}

		goal, err := uc.Goal.Update(r.Context(), types.GoalID(chi.URLParam(r, "goalID")), scope, model.GoalUpdate{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toGoalResponse(goal))
	}
}

func deleteGoalHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.Goal.Delete(r.Context(), types.GoalID(chi.URLParam(r, "goalID")), scope); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
