package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/upr-lab/riskwise/pkg/domain/model/config"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/usecase"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", configHandler(uc.AppConfig()))

		r.Get("/me", meHandler(uc))
		r.Post("/me", createUserHandler(uc))
		r.Patch("/me", updateProfileHandler(uc))

		r.Route("/uprs", func(r chi.Router) {
			r.Get("/", listUPRsHandler(uc))
			r.Post("/", createUPRHandler(uc))
			r.Get("/{uprID}", getUPRHandler(uc))
			r.Patch("/{uprID}", updateUPRHandler(uc))
			r.Delete("/{uprID}", deleteUPRHandler(uc))
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", listGoalsHandler(uc))
			r.Post("/", createGoalHandler(uc))
			r.Get("/{goalID}", getGoalHandler(uc))
			r.Patch("/{goalID}", updateGoalHandler(uc))
			r.Delete("/{goalID}", deleteGoalHandler(uc))
			r.Get("/{goalID}/potential-risks", listPotentialRisksHandler(uc))
			r.Post("/{goalID}/potential-risks", createPotentialRiskHandler(uc))
		})

		r.Route("/potential-risks", func(r chi.Router) {
			r.Get("/{riskID}", getPotentialRiskHandler(uc))
			r.Patch("/{riskID}", updatePotentialRiskHandler(uc))
			r.Delete("/{riskID}", deletePotentialRiskHandler(uc))
			r.Get("/{riskID}/causes", listRiskCausesHandler(uc))
			r.Post("/{riskID}/causes", createRiskCauseHandler(uc))
		})

		r.Route("/risk-causes", func(r chi.Router) {
			r.Get("/{causeID}", getRiskCauseHandler(uc))
			r.Patch("/{causeID}", updateRiskCauseHandler(uc))
			r.Delete("/{causeID}", deleteRiskCauseHandler(uc))
			r.Get("/{causeID}/controls", listControlMeasuresHandler(uc))
			r.Post("/{causeID}/controls", createControlMeasureHandler(uc))
			r.Post("/{causeID}/suggest-controls", suggestControlsHandler(uc))
		})

		r.Route("/control-measures", func(r chi.Router) {
			r.Get("/{controlID}", getControlMeasureHandler(uc))
			r.Patch("/{controlID}", updateControlMeasureHandler(uc))
			r.Delete("/{controlID}", deleteControlMeasureHandler(uc))
		})

		r.Route("/monitoring-sessions", func(r chi.Router) {
			r.Get("/", listSessionsHandler(uc))
			r.Post("/", createSessionHandler(uc))
			r.Get("/{sessionID}", getSessionHandler(uc))
			r.Patch("/{sessionID}", updateSessionHandler(uc))
			r.Delete("/{sessionID}", deleteSessionHandler(uc))
			r.Get("/{sessionID}/exposures", listExposuresHandler(uc))
			r.Put("/{sessionID}/exposures/{causeID}", upsertExposureHandler(uc))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// configHandler serves the form vocabularies so clients render the same
// option lists the managers validate against
func configHandler(cfg *config.AppConfig) http.HandlerFunc {
	type levelOption struct {
		Label string `json:"label"`
		Score int    `json:"score"`
	}
	type controlTypeOption struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	type response struct {
		RiskCategories        []string            `json:"riskCategories"`
		RiskCauseSources      []string            `json:"riskCauseSources"`
		MonitoringFrequencies []string            `json:"monitoringFrequencies"`
		Likelihoods           []levelOption       `json:"likelihoods"`
		Impacts               []levelOption       `json:"impacts"`
		ControlTypes          []controlTypeOption `json:"controlTypes"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := response{
			RiskCategories:        cfg.RiskCategories,
			RiskCauseSources:      cfg.RiskCauseSources,
			MonitoringFrequencies: cfg.MonitoringFrequencies,
		}
		for i, l := range types.Likelihoods() {
			resp.Likelihoods = append(resp.Likelihoods, levelOption{Label: string(l), Score: i + 1})
		}
		for i, v := range types.Impacts() {
			resp.Impacts = append(resp.Impacts, levelOption{Label: string(v), Score: i + 1})
		}
		for _, t := range types.AllControlTypes() {
			resp.ControlTypes = append(resp.ControlTypes, controlTypeOption{Key: t.String(), Name: t.Name()})
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
