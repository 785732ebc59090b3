package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/usecase"
	"github.com/upr-lab/riskwise/pkg/utils/errutil"
	"github.com/upr-lab/riskwise/pkg/utils/safe"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// requestScope extracts the tenant scope from the upr_id and period query
// parameters. Scoped routes require both.
func requestScope(r *http.Request) (model.Scope, error) {
	scope := model.Scope{
		UPRID:  types.UPRID(r.URL.Query().Get("upr_id")),
		Period: r.URL.Query().Get("period"),
	}
	if err := scope.Validate(); err != nil {
		return model.Scope{}, goerr.Wrap(err, "upr_id and period query parameters are required")
	}
	return scope, nil
}

func decodeBody(r *http.Request, dst any) error {
	defer safe.Close(r.Context(), r.Body)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// handleUseCaseError maps manager errors onto HTTP status codes: scope
// mismatches are forbidden, missing parents are not found, an unconfigured
// suggestion flow is unavailable, everything else is internal.
func handleUseCaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrScopeMismatch):
		errutil.HandleHTTP(ctx, w, err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrParentNotFound), errors.Is(err, interfaces.ErrNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrSuggestionUnavailable):
		errutil.HandleHTTP(ctx, w, err, http.StatusServiceUnavailable)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}
