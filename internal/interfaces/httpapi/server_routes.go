package httpapi

import (
	"net/http"

	"github.com/gridironhq/gridiron/internal/platform/logging"
)

func registerRoutes(mux *http.ServeMux, h *Handler, verifier TokenVerifier, internalJobToken string, logger *logging.Logger) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), logger, w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /v1/teams", h.Teams)
	mux.HandleFunc("GET /v1/teams/{id}", h.Team)
	mux.HandleFunc("GET /v1/scoreboard", h.Scoreboard)
	mux.HandleFunc("GET /v1/team-stats", h.TeamStats)

	mux.Handle("POST /v1/predictions", RequireAuth(verifier, logger, http.HandlerFunc(h.Predict)))
	mux.Handle("POST /v1/me/profile", RequireAuth(verifier, logger, http.HandlerFunc(h.EnsureProfile)))
	mux.Handle("GET /v1/me/predictions", RequireAuth(verifier, logger, http.HandlerFunc(h.MyPredictions)))
	mux.Handle("GET /v1/me/metrics", RequireAuth(verifier, logger, http.HandlerFunc(h.MyMetrics)))

	mux.Handle("POST /v1/internal/jobs/score-sync",
		RequireInternalJobToken(internalJobToken, logger, http.HandlerFunc(h.ScoreSync)))
	mux.Handle("POST /v1/internal/jobs/score-backfill",
		RequireInternalJobToken(internalJobToken, logger, http.HandlerFunc(h.ScoreBackfill)))
}
