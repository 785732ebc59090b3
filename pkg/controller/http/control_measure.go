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

type controlMeasureResponse struct {
	ID                  types.ControlMeasureID `json:"id"`
	RiskCauseID         types.RiskCauseID      `json:"riskCauseId"`
	PotentialRiskID     types.PotentialRiskID  `json:"potentialRiskId"`
	GoalID              types.GoalID           `json:"goalId"`
	UPRID               types.UPRID            `json:"uprId"`
	Period              string                 `json:"period"`
	SequenceNumber      int                    `json:"sequenceNumber"`
	ControlType         string                 `json:"controlType"`
	ControlTypeName     string                 `json:"controlTypeName"`
	Description         string                 `json:"description"`
	KeyControlIndicator string                 `json:"keyControlIndicator"`
	Target              string                 `json:"target"`
	ResponsiblePerson   string                 `json:"responsiblePerson"`
	Deadline            string                 `json:"deadline"`
	Budget              string                 `json:"budget"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func toControlMeasureResponse(m *model.ControlMeasure) controlMeasureResponse {
	return controlMeasureResponse{
		ID:                  m.ID,
		RiskCauseID:         m.RiskCauseID,
		PotentialRiskID:     m.PotentialRiskID,
		GoalID:              m.GoalID,
		UPRID:               m.Scope.UPRID,
		Period:              m.Scope.Period,
		SequenceNumber:      m.SequenceNumber,
		ControlType:         m.ControlType.String(),
		ControlTypeName:     m.ControlType.Name(),
		Description:         m.Description,
		KeyControlIndicator: m.KeyControlIndicator,
		Target:              m.Target,
		ResponsiblePerson:   m.ResponsiblePerson,
		Deadline:            m.Deadline,
		Budget:              m.Budget,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func listControlMeasuresHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		measures, err := uc.ControlMeasure.ListByRiskCause(r.Context(), types.RiskCauseID(chi.URLParam(r, "causeID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]controlMeasureResponse, 0, len(measures))
		for _, m := range measures {
			resp = append(resp, toControlMeasureResponse(m))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createControlMeasureHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		ControlType         string `json:"controlType"`
		Description         string `json:"description"`
		KeyControlIndicator string `json:"keyControlIndicator"`
		Target              string `json:"target"`
		ResponsiblePerson   string `json:"responsiblePerson"`
		Deadline            string `json:"deadline"`
		Budget              string `json:"budget"`
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
			errutil.HandleHTTP(r.Context(), w, goerr.New("control measure description is required"), http.StatusBadRequest)
			return
		}

		measure, err := uc.ControlMeasure.Add(r.Context(), scope, types.RiskCauseID(chi.URLParam(r, "causeID")), usecase.ControlMeasureInput{
			ControlType:         req.ControlType,
			Description:         req.Description,
			KeyControlIndicator: req.KeyControlIndicator,
			Target:              req.Target,
			ResponsiblePerson:   req.ResponsiblePerson,
			Deadline:            req.Deadline,
			Budget:              req.Budget,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toControlMeasureResponse(measure))
	}
}

func getControlMeasureHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		measure, err := uc.ControlMeasure.Get(r.Context(), types.ControlMeasureID(chi.URLParam(r, "controlID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if measure == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "control measure not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toControlMeasureResponse(measure))
	}
}

func updateControlMeasureHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		ControlType         *string `json:"controlType"`
		Description         *string `json:"description"`
		KeyControlIndicator *string `json:"keyControlIndicator"`
		Target              *string `json:"target"`
		ResponsiblePerson   *string `json:"responsiblePerson"`
		Deadline            *string `json:"deadline"`
		Budget              *string `json:"budget"`
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
			errutil.HandleHTTP(r.Context(), w, goerr.New("control measure description is required"), http.StatusBadRequest)
			return
		}

		update := model.ControlMeasureUpdate{
			Description:         req.Description,
			KeyControlIndicator: req.KeyControlIndicator,
			Target:              req.Target,
			ResponsiblePerson:   req.ResponsiblePerson,
			Deadline:            req.Deadline,
			Budget:              req.Budget,
		}
		if req.ControlType != nil {
			t := types.CoerceControlType(*req.ControlType)
			update.ControlType = &t
		}

		measure, err := uc.ControlMeasure.Update(r.Context(), types.ControlMeasureID(chi.URLParam(r, "controlID")), scope, update)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toControlMeasureResponse(measure))
	}
}

func deleteControlMeasureHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.ControlMeasure.Delete(r.Context(), types.ControlMeasureID(chi.URLParam(r, "controlID")), scope); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
