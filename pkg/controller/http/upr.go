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

type uprResponse struct {
	ID               types.UPRID `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	ActivePeriod     string      `json:"activePeriod"`
	AvailablePeriods []string    `json:"availablePeriods"`
	RiskAppetite     string      `json:"riskAppetite"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

func toUPRResponse(u *model.UPR) uprResponse {
	periods := u.AvailablePeriods
	if periods == nil {
		periods = []string{}
	}
	return uprResponse{
		ID:               u.ID,
		Name:             u.Name,
		Description:      u.Description,
		ActivePeriod:     u.ActivePeriod,
		AvailablePeriods: periods,
		RiskAppetite:     u.RiskAppetite,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func listUPRsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uprs, err := uc.UPR.List(r.Context())
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := make([]uprResponse, 0, len(uprs))
		for _, u := range uprs {
			resp = append(resp, toUPRResponse(u))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createUPRHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		ActivePeriod string `json:"activePeriod"`
		RiskAppetite string `json:"riskAppetite"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("UPR name is required"), http.StatusBadRequest)
			return
		}

		upr, err := uc.UPR.Add(r.Context(), &model.UPR{
			Name:         req.Name,
			Description:  req.Description,
			ActivePeriod: req.ActivePeriod,
			RiskAppetite: req.RiskAppetite,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toUPRResponse(upr))
	}
}

func getUPRHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upr, err := uc.UPR.Get(r.Context(), types.UPRID(chi.URLParam(r, "uprID")))
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if upr == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "UPR not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUPRResponse(upr))
	}
}

func updateUPRHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name             *string   `json:"name"`
		Description      *string   `json:"description"`
		ActivePeriod     *string   `json:"activePeriod"`
		AvailablePeriods *[]string `json:"availablePeriods"`
		RiskAppetite     *string   `json:"riskAppetite"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		if req.Name != nil && *req.Name == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("UPR name is required"), http.StatusBadRequest)
			return
		}

		upr, err := uc.UPR.Update(r.Context(), types.UPRID(chi.URLParam(r, "uprID")), model.UPRUpdate{
			Name:             req.Name,
			Description:      req.Description,
			ActivePeriod:     req.ActivePeriod,
			AvailablePeriods: req.AvailablePeriods,
			RiskAppetite:     req.RiskAppetite,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUPRResponse(upr))
	}
}

func deleteUPRHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.UPR.Delete(r.Context(), types.UPRID(chi.URLParam(r, "uprID"))); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
