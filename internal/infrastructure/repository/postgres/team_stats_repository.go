package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/teamstats"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

var teamStatsColumns = []string{
	"team_id", "year", "as_of_week",
	"off_points_per_game", "off_total_yards_per_game", "off_passing_yards_per_game",
	"off_rushing_yards_per_game", "off_red_zone_efficiency", "off_third_down_efficiency",
	"off_turnovers_per_game", "off_time_of_possession",
	"def_points_allowed_per_game", "def_total_yards_allowed_per_game",
	"def_passing_yards_allowed_per_game", "def_rushing_yards_allowed_per_game",
	"def_red_zone_efficiency", "def_third_down_efficiency",
	"def_turnovers_forced_per_game", "def_sacks_per_game",
	"turnover_margin", "penalty_yards_per_game", "updated_at",
}

type teamStatsRow struct {
	TeamID   string `db:"team_id"`
	Year     int    `db:"year"`
	AsOfWeek int    `db:"as_of_week"`

	OffPointsPerGame       float64 `db:"off_points_per_game"`
	OffTotalYardsPerGame   float64 `db:"off_total_yards_per_game"`
	OffPassingYardsPerGame float64 `db:"off_passing_yards_per_game"`
	OffRushingYardsPerGame float64 `db:"off_rushing_yards_per_game"`
	OffRedZoneEfficiency   float64 `db:"off_red_zone_efficiency"`
	OffThirdDownEfficiency float64 `db:"off_third_down_efficiency"`
	OffTurnoversPerGame    float64 `db:"off_turnovers_per_game"`
	OffTimeOfPossession    float64 `db:"off_time_of_possession"`

	DefPointsAllowedPerGame       float64 `db:"def_points_allowed_per_game"`
	DefTotalYardsAllowedPerGame   float64 `db:"def_total_yards_allowed_per_game"`
	DefPassingYardsAllowedPerGame float64 `db:"def_passing_yards_allowed_per_game"`
	DefRushingYardsAllowedPerGame float64 `db:"def_rushing_yards_allowed_per_game"`
	DefRedZoneEfficiency          float64 `db:"def_red_zone_efficiency"`
	DefThirdDownEfficiency        float64 `db:"def_third_down_efficiency"`
	DefTurnoversForcedPerGame     float64 `db:"def_turnovers_forced_per_game"`
	DefSacksPerGame               float64 `db:"def_sacks_per_game"`

	TurnoverMargin      float64 `db:"turnover_margin"`
	PenaltyYardsPerGame float64 `db:"penalty_yards_per_game"`

	UpdatedAt time.Time `db:"updated_at"`
}

func (r teamStatsRow) toDomain() teamstats.Snapshot {
	return teamstats.Snapshot{
		TeamID:   r.TeamID,
		Year:     r.Year,
		AsOfWeek: r.AsOfWeek,

		OffPointsPerGame:       r.OffPointsPerGame,
		OffTotalYardsPerGame:   r.OffTotalYardsPerGame,
		OffPassingYardsPerGame: r.OffPassingYardsPerGame,
		OffRushingYardsPerGame: r.OffRushingYardsPerGame,
		OffRedZoneEfficiency:   r.OffRedZoneEfficiency,
		OffThirdDownEfficiency: r.OffThirdDownEfficiency,
		OffTurnoversPerGame:    r.OffTurnoversPerGame,
		OffTimeOfPossession:    r.OffTimeOfPossession,

		DefPointsAllowedPerGame:       r.DefPointsAllowedPerGame,
		DefTotalYardsAllowedPerGame:   r.DefTotalYardsAllowedPerGame,
		DefPassingYardsAllowedPerGame: r.DefPassingYardsAllowedPerGame,
		DefRushingYardsAllowedPerGame: r.DefRushingYardsAllowedPerGame,
		DefRedZoneEfficiency:          r.DefRedZoneEfficiency,
		DefThirdDownEfficiency:        r.DefThirdDownEfficiency,
		DefTurnoversForcedPerGame:     r.DefTurnoversForcedPerGame,
		DefSacksPerGame:               r.DefSacksPerGame,

		TurnoverMargin:      r.TurnoverMargin,
		PenaltyYardsPerGame: r.PenaltyYardsPerGame,

		UpdatedAt: r.UpdatedAt,
	}
}

type teamStatsInsertRow struct {
	TeamID   string `db:"team_id"`
	Year     int    `db:"year"`
	AsOfWeek int    `db:"as_of_week"`

	OffPointsPerGame       float64 `db:"off_points_per_game"`
	OffTotalYardsPerGame   float64 `db:"off_total_yards_per_game"`
	OffPassingYardsPerGame float64 `db:"off_passing_yards_per_game"`
	OffRushingYardsPerGame float64 `db:"off_rushing_yards_per_game"`
	OffRedZoneEfficiency   float64 `db:"off_red_zone_efficiency"`
	OffThirdDownEfficiency float64 `db:"off_third_down_efficiency"`
	OffTurnoversPerGame    float64 `db:"off_turnovers_per_game"`
	OffTimeOfPossession    float64 `db:"off_time_of_possession"`

	DefPointsAllowedPerGame       float64 `db:"def_points_allowed_per_game"`
	DefTotalYardsAllowedPerGame   float64 `db:"def_total_yards_allowed_per_game"`
	DefPassingYardsAllowedPerGame float64 `db:"def_passing_yards_allowed_per_game"`
	DefRushingYardsAllowedPerGame float64 `db:"def_rushing_yards_allowed_per_game"`
	DefRedZoneEfficiency          float64 `db:"def_red_zone_efficiency"`
	DefThirdDownEfficiency        float64 `db:"def_third_down_efficiency"`
	DefTurnoversForcedPerGame     float64 `db:"def_turnovers_forced_per_game"`
	DefSacksPerGame               float64 `db:"def_sacks_per_game"`

	TurnoverMargin      float64 `db:"turnover_margin"`
	PenaltyYardsPerGame float64 `db:"penalty_yards_per_game"`
}

const teamStatsUpsertSuffix = `ON CONFLICT (team_id, year, as_of_week)
DO UPDATE SET off_points_per_game = EXCLUDED.off_points_per_game,
	off_total_yards_per_game = EXCLUDED.off_total_yards_per_game,
	off_passing_yards_per_game = EXCLUDED.off_passing_yards_per_game,
	off_rushing_yards_per_game = EXCLUDED.off_rushing_yards_per_game,
	off_red_zone_efficiency = EXCLUDED.off_red_zone_efficiency,
	off_third_down_efficiency = EXCLUDED.off_third_down_efficiency,
	off_turnovers_per_game = EXCLUDED.off_turnovers_per_game,
	off_time_of_possession = EXCLUDED.off_time_of_possession,
	def_points_allowed_per_game = EXCLUDED.def_points_allowed_per_game,
	def_total_yards_allowed_per_game = EXCLUDED.def_total_yards_allowed_per_game,
	def_passing_yards_allowed_per_game = EXCLUDED.def_passing_yards_allowed_per_game,
	def_rushing_yards_allowed_per_game = EXCLUDED.def_rushing_yards_allowed_per_game,
	def_red_zone_efficiency = EXCLUDED.def_red_zone_efficiency,
	def_third_down_efficiency = EXCLUDED.def_third_down_efficiency,
	def_turnovers_forced_per_game = EXCLUDED.def_turnovers_forced_per_game,
	def_sacks_per_game = EXCLUDED.def_sacks_per_game,
	turnover_margin = EXCLUDED.turnover_margin,
	penalty_yards_per_game = EXCLUDED.penalty_yards_per_game,
	updated_at = now()`

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) UpsertBatch(ctx context.Context, snapshots []teamstats.Snapshot) (int, error) {
	if len(snapshots) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin team stats upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upserted := 0
	for _, snap := range snapshots {
		query, args, err := qb.InsertModel("team_stats", toInsertRow(snap), teamStatsUpsertSuffix)
		if err != nil {
			return 0, fmt.Errorf("build team stats upsert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert team stats %s/%d/%d: %w", snap.TeamID, snap.Year, snap.AsOfWeek, err)
		}
		upserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit team stats upsert: %w", err)
	}
	return upserted, nil
}

func (r *TeamStatsRepository) ListLatestByTeams(ctx context.Context, year int, teamIDs []string) ([]teamstats.Snapshot, error) {
	ids := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select(latestColumns()...).
		From("team_stats").
		Where(qb.Eq("year", year), qb.In("team_id", ids)).
		OrderBy("team_id", "as_of_week DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build latest team stats query: %w", err)
	}
	return r.selectSnapshots(ctx, query, args)
}

func (r *TeamStatsRepository) ListLatest(ctx context.Context, year int) ([]teamstats.Snapshot, error) {
	query, args, err := qb.Select(latestColumns()...).
		From("team_stats").
		Where(qb.Eq("year", year)).
		OrderBy("team_id", "as_of_week DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build latest team stats query: %w", err)
	}
	return r.selectSnapshots(ctx, query, args)
}

func (r *TeamStatsRepository) ListAsOf(ctx context.Context, year, week int) ([]teamstats.Snapshot, error) {
	query, args, err := qb.Select(teamStatsColumns...).
		From("team_stats").
		Where(qb.Eq("year", year), qb.Eq("as_of_week", week)).
		OrderBy("team_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build team stats query: %w", err)
	}
	return r.selectSnapshots(ctx, query, args)
}

func (r *TeamStatsRepository) selectSnapshots(ctx context.Context, query string, args []any) ([]teamstats.Snapshot, error) {
	var rows []teamStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team stats: %w", err)
	}

	snapshots := make([]teamstats.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, row.toDomain())
	}
	return snapshots, nil
}

// latestColumns keeps one row per team: the one with the highest as_of_week.
func latestColumns() []string {
	columns := make([]string, len(teamStatsColumns))
	copy(columns, teamStatsColumns)
	columns[0] = "DISTINCT ON (team_id) team_id"
	return columns
}

func toInsertRow(snap teamstats.Snapshot) teamStatsInsertRow {
	return teamStatsInsertRow{
		TeamID:   snap.TeamID,
		Year:     snap.Year,
		AsOfWeek: snap.AsOfWeek,

		OffPointsPerGame:       snap.OffPointsPerGame,
		OffTotalYardsPerGame:   snap.OffTotalYardsPerGame,
		OffPassingYardsPerGame: snap.OffPassingYardsPerGame,
		OffRushingYardsPerGame: snap.OffRushingYardsPerGame,
		OffRedZoneEfficiency:   snap.OffRedZoneEfficiency,
		OffThirdDownEfficiency: snap.OffThirdDownEfficiency,
		OffTurnoversPerGame:    snap.OffTurnoversPerGame,
		OffTimeOfPossession:    snap.OffTimeOfPossession,

		DefPointsAllowedPerGame:       snap.DefPointsAllowedPerGame,
		DefTotalYardsAllowedPerGame:   snap.DefTotalYardsAllowedPerGame,
		DefPassingYardsAllowedPerGame: snap.DefPassingYardsAllowedPerGame,
		DefRushingYardsAllowedPerGame: snap.DefRushingYardsAllowedPerGame,
		DefRedZoneEfficiency:          snap.DefRedZoneEfficiency,
		DefThirdDownEfficiency:        snap.DefThirdDownEfficiency,
		DefTurnoversForcedPerGame:     snap.DefTurnoversForcedPerGame,
		DefSacksPerGame:               snap.DefSacksPerGame,

		TurnoverMargin:      snap.TurnoverMargin,
		PenaltyYardsPerGame: snap.PenaltyYardsPerGame,
	}
}
