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

type sessionResponse struct {
	ID        types.SessionID `json:"id"`
	UPRID     types.UPRID     `json:"uprId"`
	Period    string          `json:"period"`
	Name      string          `json:"name"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toSessionResponse(s *model.MonitoringSession) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		UPRID:     s.Scope.UPRID,
		Period:    s.Scope.Period,
		Name:      s.Name,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type exposureResponse struct {
	ID                types.ExposureID         `json:"id"`
	SessionID         types.SessionID          `json:"sessionId"`
	RiskCauseID       types.RiskCauseID        `json:"riskCauseId"`
	PotentialRiskID   types.PotentialRiskID    `json:"potentialRiskId"`
	GoalID            types.GoalID             `json:"goalId"`
	ExposureValue     string                   `json:"exposureValue"`
	ExposureUnit      string                   `json:"exposureUnit"`
	ExposureNotes     string                   `json:"exposureNotes"`
	MonitoredControls []types.ControlMeasureID `json:"monitoredControls"`
	RecordedAt        time.Time                `json:"recordedAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

func toExposureResponse(e *model.RiskExposure) exposureResponse {
	controls := e.MonitoredControls
	if controls == nil {
		controls = []types.ControlMeasureID{}
	}
	return exposureResponse{
		ID:                e.ID,
		SessionID:         e.SessionID,
		RiskCauseID:       e.RiskCauseID,
		PotentialRiskID:   e.PotentialRiskID,
		GoalID:            e.GoalID,
		ExposureValue:     e.ExposureValue,
		ExposureUnit:      e.ExposureUnit,
		ExposureNotes:     e.ExposureNotes,
		MonitoredControls: controls,
		RecordedAt:        e.RecordedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func listSessionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		sessions, err := uc.Monitoring.ListSessions(r.Context(), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]sessionResponse, 0, len(sessions))
		for _, s := range sessions {
			resp = append(resp, toSessionResponse(s))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name      string    `json:"name"`
		StartDate time.Time `json:"startDate"`
		EndDate   time.Time `json:"endDate"`
		Status    string    `json:"status"`
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
			errutil.HandleHTTP(r.Context(), w, goerr.New("monitoring session name is required"), http.StatusBadRequest)
			return
		}

		session, err := uc.Monitoring.AddSession(r.Context(), scope, usecase.SessionInput{
			Name:      req.Name,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Status:    req.Status,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toSessionResponse(session))
	}
}

func getSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		session, err := uc.Monitoring.GetSession(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if session == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "monitoring session not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toSessionResponse(session))
	}
}

func updateSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name      *string    `json:"name"`
		StartDate *time.Time `json:"startDate"`
		EndDate   *time.Time `json:"endDate"`
		Status    *string    `json:"status"`
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
			errutil.HandleHTTP(r.Context(), w, goerr.New("monitoring session name is required"), http.StatusBadRequest)
			return
		}

		session, err := uc.Monitoring.UpdateSession(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), scope, model.MonitoringSessionUpdate{
			Name:      req.Name,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Status:    req.Status,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toSessionResponse(session))
	}
}

func deleteSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.Monitoring.DeleteSession(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), scope); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func listExposuresHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		exposures, err := uc.Monitoring.ListExposures(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), scope)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]exposureResponse, 0, len(exposures))
		for _, e := range exposures {
			resp = append(resp, toExposureResponse(e))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func upsertExposureHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		ExposureValue     string                   `json:"exposureValue"`
		ExposureUnit      string                   `json:"exposureUnit"`
		ExposureNotes     string                   `json:"exposureNotes"`
		MonitoredControls []types.ControlMeasureID `json:"monitoredControls"`
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

		exposure, err := uc.Monitoring.UpsertExposure(r.Context(), scope,
			types.SessionID(chi.URLParam(r, "sessionID")),
			types.RiskCauseID(chi.URLParam(r, "causeID")),
			usecase.ExposureInput{
				ExposureValue:     req.ExposureValue,
				ExposureUnit:      req.ExposureUnit,
				ExposureNotes:     req.ExposureNotes,
				MonitoredControls: req.MonitoredControls,
			})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toExposureResponse(exposure))
	}
}
