package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/team"
	"github.com/gridironhq/gridiron/internal/domain/teamstats"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type teamDTO struct {
	ID             string `json:"id"`
	Abbreviation   string `json:"abbreviation"`
	Name           string `json:"name"`
	Conference     string `json:"conference"`
	Division       string `json:"division"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
}

func toTeamDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:             t.ID,
		Abbreviation:   t.Abbreviation,
		Name:           t.Name,
		Conference:     t.Conference,
		Division:       t.Division,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
		LogoURL:        t.LogoURL,
	}
}

func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Teams")
	defer span.End()

	teams, err := h.teams.ListTeams(ctx)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamDTO(t))
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, out)
}

func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Team")
	defer span.End()

	t, err := h.teams.GetTeam(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, toTeamDTO(t))
}

type scoreboardGameDTO struct {
	ID          string     `json:"id"`
	Year        int        `json:"year"`
	Week        int        `json:"week"`
	SeasonType  string     `json:"seasonType"`
	Status      string     `json:"status"`
	KickoffTime *time.Time `json:"kickoffTime,omitempty"`
	HomeTeam    teamDTO    `json:"homeTeam"`
	AwayTeam    teamDTO    `json:"awayTeam"`
	HomeScore   *int       `json:"homeScore,omitempty"`
	AwayScore   *int       `json:"awayScore,omitempty"`
}

func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Scoreboard")
	defer span.End()

	year, err := intQueryParam(r, "year")
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	week, err := intQueryParam(r, "week")
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	scoreboard, err := h.teams.Scoreboard(ctx, year, week)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	out := make([]scoreboardGameDTO, 0, len(scoreboard))
	for _, entry := range scoreboard {
		out = append(out, scoreboardGameDTO{
			ID:          entry.Game.ID,
			Year:        entry.Game.Year,
			Week:        entry.Game.Week,
			SeasonType:  string(entry.Game.SeasonType),
			Status:      string(entry.Game.Status),
			KickoffTime: entry.Game.KickoffTime,
			HomeTeam:    toTeamDTO(entry.HomeTeam),
			AwayTeam:    toTeamDTO(entry.AwayTeam),
			HomeScore:   entry.Game.HomeScore,
			AwayScore:   entry.Game.AwayScore,
		})
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, out)
}

type teamStatsDTO struct {
	TeamID   string             `json:"teamId"`
	Year     int                `json:"year"`
	AsOfWeek int                `json:"asOfWeek"`
	Metrics  map[string]float64 `json:"metrics"`
}

var statMetricNames = []string{
	"off_points_per_game", "off_total_yards_per_game", "off_passing_yards_per_game",
	"off_rushing_yards_per_game", "off_red_zone_efficiency", "off_third_down_efficiency",
	"off_turnovers_per_game", "off_time_of_possession",
	"def_points_allowed_per_game", "def_total_yards_allowed_per_game",
	"def_passing_yards_allowed_per_game", "def_rushing_yards_allowed_per_game",
	"def_red_zone_efficiency", "def_third_down_efficiency",
	"def_turnovers_forced_per_game", "def_sacks_per_game",
	"turnover_margin", "penalty_yards_per_game",
}

func toTeamStatsDTO(snap teamstats.Snapshot) teamStatsDTO {
	metrics := make(map[string]float64, len(statMetricNames))
	for _, name := range statMetricNames {
		metrics[name] = snap.Metric(name)
	}
	return teamStatsDTO{
		TeamID:   snap.TeamID,
		Year:     snap.Year,
		AsOfWeek: snap.AsOfWeek,
		Metrics:  metrics,
	}
}

func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamStats")
	defer span.End()

	year, err := intQueryParam(r, "year")
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	week, latest, err := usecase.ParseAsOfWeek(r.URL.Query().Get("asOfWeek"))
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	snapshots, err := h.teams.TeamStats(ctx, year, week, latest)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	out := make([]teamStatsDTO, 0, len(snapshots))
	for _, snap := range snapshots {
		out = append(out, toTeamStatsDTO(snap))
	}
	writeJSON(ctx, h.logger, w, http.StatusOK, out)
}

func intQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s query parameter is required", usecase.ErrInvalidInput, name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
