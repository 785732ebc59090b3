package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/usecase"
	"github.com/upr-lab/riskwise/pkg/utils/errutil"
)

// Authentication happens outside this service, so the caller identifies
// itself with the user_id query parameter on the /api/me routes.

type userResponse struct {
	ID              types.UserID `json:"id"`
	DisplayName     string       `json:"displayName"`
	Email           string       `json:"email"`
	UPRID           types.UPRID  `json:"uprId"`
	ActivePeriod    string       `json:"activePeriod"`
	ProfileComplete bool         `json:"profileComplete"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:              u.ID,
		DisplayName:     u.DisplayName,
		Email:           u.Email,
		UPRID:           u.UPRID,
		ActivePeriod:    u.ActivePeriod,
		ProfileComplete: u.ProfileComplete(),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func requestUserID(r *http.Request) (types.UserID, error) {
	id := types.UserID(r.URL.Query().Get("user_id"))
	if id == "" {
		return "", goerr.New("user_id query parameter is required")
	}
	return id, nil
}

func meHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		user, err := uc.User.Get(r.Context(), userID)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		if user == nil {
			writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
	}
}

func createUserHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		ID          types.UserID `json:"id"`
		DisplayName string       `json:"displayName"`
		Email       string       `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("user ID is required"), http.StatusBadRequest)
			return
		}

		user, err := uc.User.Create(r.Context(), &model.User{
			ID:          req.ID,
			DisplayName: req.DisplayName,
			Email:       req.Email,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toUserResponse(user))
	}
}

func updateProfileHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		DisplayName  *string      `json:"displayName"`
		UPRID        *types.UPRID `json:"uprId"`
		ActivePeriod *string      `json:"activePeriod"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		user, err := uc.User.UpdateProfile(r.Context(), userID, model.UserUpdate{
			DisplayName:  req.DisplayName,
			UPRID:        req.UPRID,
			ActivePeriod: req.ActivePeriod,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
	}
}
