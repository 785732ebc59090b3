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

type riskCauseResponse struct {
	ID                types.RiskCauseID     `json:"id"`
	PotentialRiskID   types.PotentialRiskID `json:"potentialRiskId"`
	GoalID            types.GoalID          `json:"goalId"`
	UPRID             types.UPRID           `json:"uprId"`
	Period            string                `json:"period"`
	SequenceNumber    int                   `json:"sequenceNumber"`
	Source            string                `json:"source"`
	Description       string                `json:"description"`
	KeyRiskIndicator  string                `json:"keyRiskIndicator"`
	RiskTolerance     string                `json:"riskTolerance"`
	Likelihood        string                `json:"likelihood"`
	Impact            string                `json:"impact"`
	RiskLevel         string                `json:"riskLevel"`
	RiskScore         *int                  `json:"riskScore"`
	CreatedAt         time.Time             `json:"createdAt"`
	AnalysisUpdatedAt time.Time             `json:"analysisUpdatedAt"`
}

func toRiskCauseResponse(c *model.RiskCause) riskCauseResponse {
	level, score := c.RiskLevel()
	return riskCauseResponse{
		ID:                c.ID,
		PotentialRiskID:   c.PotentialRiskID,
		GoalID:            c.GoalID,
		UPRID:             c.Scope.UPRID,
		Period:            c.Scope.Period,
		SequenceNumber:    c.SequenceNumber,
		Source:            c.Source,
		Description:       c.Description,
		KeyRiskIndicator:  c.KeyRiskIndicator,
		RiskTolerance:     c.RiskTolerance,
		Likelihood:        string(c.Likelihood),
		Impact:            string(c.Impact),
		RiskLevel:         level.String(),
		RiskScore:         score,
		CreatedAt:         c.CreatedAt,
		AnalysisUpdatedAt: c.AnalysisUpdatedAt,
	}
}

func listRiskCausesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		causes, err := uc.RiskCause.ListByPotentialRisk(r.Context(), types.PotentialRiskID(chi.URLParam(r, "riskID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]riskCauseResponse, 0, len(causes))
		for _, c := range causes {
			resp = append(resp, toRiskCauseResponse(c))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createRiskCauseHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Source      string `json:"source"`
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
		if req.Description == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("risk cause description is required"), http.StatusBadRequest)
			return
		}

		cause, err := uc.RiskCause.Add(r.Context(), scope, types.PotentialRiskID(chi.URLParam(r, "riskID")), usecase.RiskCauseInput{
			Source:      req.Source,
			Description: req.Description,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toRiskCauseResponse(cause))
	}
}

func getRiskCauseHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		cause, err := uc.RiskCause.Get(r.Context(), types.RiskCauseID(chi.URLParam(r, "causeID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if cause == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "risk cause not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toRiskCauseResponse(cause))
	}
}

func updateRiskCauseHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Description      *string `json:"description"`
		Source           *string `json:"source"`
		KeyRiskIndicator *string `json:"keyRiskIndicator"`
		RiskTolerance    *string `json:"riskTolerance"`
		Likelihood       *string `json:"likelihood"`
		Impact           *string `json:"impact"`
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
			errutil.HandleHTTP(r.Context(), w, goerr.New("risk cause description is required"), http.StatusBadRequest)
			return
		}

		update := model.RiskCauseUpdate{
			Description:      req.Description,
			Source:           req.Source,
			KeyRiskIndicator: req.KeyRiskIndicator,
			RiskTolerance:    req.RiskTolerance,
		}
		if req.Likelihood != nil {
			l := types.Likelihood(*req.Likelihood)
			if *req.Likelihood != "" {
				if err := l.Validate(); err != nil {
					errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
					return
				}
			}
			update.Likelihood = &l
		}
		if req.Impact != nil {
			v := types.Impact(*req.Impact)
			if *req.Impact != "" {
				if err := v.Validate(); err != nil {
					errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
					return
				}
			}
			update.Impact = &v
		}

		cause, err := uc.RiskCause.Update(r.Context(), types.RiskCauseID(chi.URLParam(r, "causeID")), scope, update)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toRiskCauseResponse(cause))
	}
}

func deleteRiskCauseHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.RiskCause.DeleteCascading(r.Context(), types.RiskCauseID(chi.URLParam(r, "causeID")), scope); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func suggestControlsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type suggestionResponse struct {
		SuggestedControls []model.SuggestedControl `json:"suggestedControls"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		suggestions, err := uc.Suggest.Suggest(r.Context(), scope, types.RiskCauseID(chi.URLParam(r, "causeID")))
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, suggestionResponse{SuggestedControls: suggestions})
	}
}
