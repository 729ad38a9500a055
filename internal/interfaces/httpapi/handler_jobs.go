package httpapi

import (
	"net/http"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type scoreSyncRequest struct {
	Year       int    `json:"year" validate:"omitempty,min=2020,max=2030"`
	Week       int    `json:"week" validate:"omitempty,min=1,max=30"`
	SeasonType string `json:"seasonType" validate:"omitempty,oneof=PRE REG POST"`
}

type syncSummaryDTO struct {
	RunID         string    `json:"runId"`
	Year          int       `json:"year"`
	Week          int       `json:"week"`
	SeasonType    string    `json:"seasonType"`
	GamesFetched  int       `json:"gamesFetched"`
	GamesSkipped  int       `json:"gamesSkipped"`
	GamesUpserted int       `json:"gamesUpserted"`
	StatsFetched  int       `json:"statsFetched"`
	StatsSkipped  int       `json:"statsSkipped"`
	StatsUpserted int       `json:"statsUpserted"`
	ProcessedAt   time.Time `json:"processedAt"`
}

func toSyncSummaryDTO(summary usecase.SyncSummary) syncSummaryDTO {
	return syncSummaryDTO{
		RunID:         summary.RunID,
		Year:          summary.Year,
		Week:          summary.Week,
		SeasonType:    string(summary.SeasonType),
		GamesFetched:  summary.GamesFetched,
		GamesSkipped:  summary.GamesSkipped,
		GamesUpserted: summary.GamesUpserted,
		StatsFetched:  summary.StatsFetched,
		StatsSkipped:  summary.StatsSkipped,
		StatsUpserted: summary.StatsUpserted,
		ProcessedAt:   summary.ProcessedAt,
	}
}

func (h *Handler) ScoreSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreSync")
	defer span.End()

	var req scoreSyncRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	if err := h.validateRequest(r, req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	summary, err := h.sync.Sync(ctx, usecase.SyncInput{
		Year:       req.Year,
		Week:       req.Week,
		SeasonType: game.SeasonType(req.SeasonType),
	})
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, toSyncSummaryDTO(summary))
}

type scoreBackfillRequest struct {
	Year        int    `json:"year" validate:"required,min=2020,max=2030"`
	SeasonType  string `json:"seasonType" validate:"omitempty,oneof=PRE REG POST"`
	FromWeek    int    `json:"fromWeek" validate:"required,min=1,max=30"`
	ToWeek      int    `json:"toWeek" validate:"required,min=1,max=30"`
	Concurrency int    `json:"concurrency" validate:"omitempty,min=1,max=16"`
}

type backfillSummaryDTO struct {
	Year       int              `json:"year"`
	SeasonType string           `json:"seasonType"`
	Weeks      []syncSummaryDTO `json:"weeks"`
	Failed     int              `json:"failed"`
}

func (h *Handler) ScoreBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreBackfill")
	defer span.End()

	var req scoreBackfillRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	if err := h.validateRequest(r, req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	summary, err := h.sync.Backfill(ctx, usecase.BackfillInput{
		Year:        req.Year,
		SeasonType:  game.SeasonType(req.SeasonType),
		FromWeek:    req.FromWeek,
		ToWeek:      req.ToWeek,
		Concurrency: req.Concurrency,
	})
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	weeks := make([]syncSummaryDTO, 0, len(summary.Weeks))
	for _, week := range summary.Weeks {
		weeks = append(weeks, toSyncSummaryDTO(week))
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, backfillSummaryDTO{
		Year:       summary.Year,
		SeasonType: string(summary.SeasonType),
		Weeks:      weeks,
		Failed:     summary.Failed,
	})
}
