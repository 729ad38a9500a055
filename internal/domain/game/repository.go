package game

import "context"

type Repository interface {
	// UpsertBatch inserts or refreshes games keyed on
	// (year, week, season_type, home_team_id, away_team_id).
	UpsertBatch(ctx context.Context, games []Game) (int, error)
	ListByWeek(ctx context.Context, year, week int) ([]Game, error)
	// FindFinal returns the completed regular-season game for the matchup, if any.
	FindFinal(ctx context.Context, year int, homeTeamID, awayTeamID string) (Game, bool, error)
}
