package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/prediction"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type predictRequest struct {
	HomeTeamID                      string `json:"homeTeamId" validate:"required,uuid"`
	AwayTeamID                      string `json:"awayTeamId" validate:"required,uuid"`
	SeasonYear                      int    `json:"seasonYear" validate:"omitempty,min=2020,max=2030"`
	SeasonType                      string `json:"seasonType" validate:"omitempty,oneof=REG POST"`
	ForceNewPredictionForPostseason bool   `json:"forceNewPredictionForPostseason"`
}

type predictResponse struct {
	Mode               string   `json:"mode"`
	UserPredictionID   string   `json:"userPredictionId"`
	ModelVersion       string   `json:"modelVersion,omitempty"`
	Week               *int     `json:"week,omitempty"`
	PredictedHomeScore *float64 `json:"predictedHomeScore,omitempty"`
	PredictedAwayScore *float64 `json:"predictedAwayScore,omitempty"`
	ActualHomeScore    *int     `json:"actualHomeScore,omitempty"`
	ActualAwayScore    *int     `json:"actualAwayScore,omitempty"`
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Predict")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, h.logger, w, fmt.Errorf("%w: no principal", usecase.ErrUnauthorized))
		return
	}

	var req predictRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	if err := h.validateRequest(r, req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	out, err := h.predictions.Predict(ctx, usecase.PredictInput{
		UserID:          principal.UserID,
		HomeTeamID:      req.HomeTeamID,
		AwayTeamID:      req.AwayTeamID,
		SeasonYear:      req.SeasonYear,
		SeasonType:      game.SeasonType(req.SeasonType),
		ForceProjection: req.ForceNewPredictionForPostseason,
	})
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	writeJSON(ctx, h.logger, w, http.StatusOK, toPredictResponse(out))
}

func toPredictResponse(out usecase.PredictOutput) predictResponse {
	resp := predictResponse{
		Mode:             string(out.Mode),
		UserPredictionID: out.PredictionID,
		Week:             out.Week,
		ActualHomeScore:  out.ActualHomeScore,
		ActualAwayScore:  out.ActualAwayScore,
	}
	if out.Mode == prediction.ModePredicted {
		home, away := out.PredictedHomeScore, out.PredictedAwayScore
		resp.PredictedHomeScore = &home
		resp.PredictedAwayScore = &away
		resp.ModelVersion = out.ModelVersion
	}
	return resp
}
