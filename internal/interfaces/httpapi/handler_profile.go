package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/prediction"
	"github.com/gridironhq/gridiron/internal/domain/profile"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type profileDTO struct {
	UserID              string `json:"userId"`
	Email               string `json:"email,omitempty"`
	IsPremium           bool   `json:"isPremium"`
	FreePredictionsUsed int    `json:"freePredictionsUsed"`
}

func toProfileDTO(p profile.Profile) profileDTO {
	return profileDTO{
		UserID:              p.UserID,
		Email:               p.Email,
		IsPremium:           p.IsPremium,
		FreePredictionsUsed: p.FreePredictionsUsed,
	}
}

func (h *Handler) EnsureProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnsureProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, h.logger, w, fmt.Errorf("%w: no principal", usecase.ErrUnauthorized))
		return
	}

	created, err := h.profiles.EnsureProfile(ctx, principal)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, toProfileDTO(created))
}

type historyItemDTO struct {
	ID                 string    `json:"id"`
	GameID             *string   `json:"gameId,omitempty"`
	SeasonYear         int       `json:"seasonYear"`
	Mode               string    `json:"mode"`
	HomeTeamID         string    `json:"homeTeamId"`
	AwayTeamID         string    `json:"awayTeamId"`
	HomeAbbreviation   string    `json:"homeAbbreviation"`
	HomeName           string    `json:"homeName"`
	AwayAbbreviation   string    `json:"awayAbbreviation"`
	AwayName           string    `json:"awayName"`
	PredictedHomeScore float64   `json:"predictedHomeScore"`
	PredictedAwayScore float64   `json:"predictedAwayScore"`
	ActualHomeScore    *int      `json:"actualHomeScore,omitempty"`
	ActualAwayScore    *int      `json:"actualAwayScore,omitempty"`
	WasAccurate        *bool     `json:"wasAccurate,omitempty"`
	ModelVersion       *string   `json:"modelVersion,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (h *Handler) MyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MyPredictions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, h.logger, w, fmt.Errorf("%w: no principal", usecase.ErrUnauthorized))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, h.logger, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	items, err := h.profiles.History(ctx, principal.UserID, limit)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	out := make([]historyItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, historyItemDTO{
			ID:                 item.Prediction.ID,
			GameID:             item.Prediction.GameID,
			SeasonYear:         item.Prediction.SeasonYear,
			Mode:               string(item.Prediction.Mode),
			HomeTeamID:         item.Prediction.HomeTeamID,
			AwayTeamID:         item.Prediction.AwayTeamID,
			HomeAbbreviation:   item.HomeAbbreviation,
			HomeName:           item.HomeName,
			AwayAbbreviation:   item.AwayAbbreviation,
			AwayName:           item.AwayName,
			PredictedHomeScore: item.Prediction.PredictedHomeScore,
			PredictedAwayScore: item.Prediction.PredictedAwayScore,
			ActualHomeScore:    item.Prediction.ActualHomeScore,
			ActualAwayScore:    item.Prediction.ActualAwayScore,
			WasAccurate:        item.Prediction.WasAccurate,
			ModelVersion:       item.ModelVersion,
			CreatedAt:          item.Prediction.CreatedAt,
		})
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, out)
}

type teamAccuracyDTO struct {
	TeamID       string  `json:"teamId"`
	Abbreviation string  `json:"abbreviation"`
	Predictions  int     `json:"predictions"`
	Accurate     int     `json:"accurate"`
	AccuracyPct  float64 `json:"accuracyPct"`
}

type metricsDTO struct {
	TotalPredictions    int               `json:"totalPredictions"`
	ScoredPredictions   int               `json:"scoredPredictions"`
	AccuratePredictions int               `json:"accuratePredictions"`
	AccuracyPct         float64           `json:"accuracyPct"`
	PerTeam             []teamAccuracyDTO `json:"perTeam"`
}

func toMetricsDTO(m prediction.Metrics) metricsDTO {
	perTeam := make([]teamAccuracyDTO, 0, len(m.PerTeam))
	for _, t := range m.PerTeam {
		perTeam = append(perTeam, teamAccuracyDTO{
			TeamID:       t.TeamID,
			Abbreviation: t.Abbreviation,
			Predictions:  t.Predictions,
			Accurate:     t.Accurate,
			AccuracyPct:  t.AccuracyPct,
		})
	}
	return metricsDTO{
		TotalPredictions:    m.TotalPredictions,
		ScoredPredictions:   m.ScoredPredictions,
		AccuratePredictions: m.AccuratePredictions,
		AccuracyPct:         m.AccuracyPct,
		PerTeam:             perTeam,
	}
}

func (h *Handler) MyMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MyMetrics")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, h.logger, w, fmt.Errorf("%w: no principal", usecase.ErrUnauthorized))
		return
	}

	metrics, err := h.profiles.Metrics(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, toMetricsDTO(metrics))
}
