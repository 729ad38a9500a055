package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/game"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

var gameColumns = []string{
	"id", "year", "week", "season_type", "home_team_id", "away_team_id",
	"kickoff_time", "status", "home_score", "away_score", "created_at", "updated_at",
}

type gameRow struct {
	ID          string     `db:"id"`
	Year        int        `db:"year"`
	Week        int        `db:"week"`
	SeasonType  string     `db:"season_type"`
	HomeTeamID  string     `db:"home_team_id"`
	AwayTeamID  string     `db:"away_team_id"`
	KickoffTime *time.Time `db:"kickoff_time"`
	Status      string     `db:"status"`
	HomeScore   *int       `db:"home_score"`
	AwayScore   *int       `db:"away_score"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r gameRow) toDomain() game.Game {
	return game.Game{
		ID:          r.ID,
		Year:        r.Year,
		Week:        r.Week,
		SeasonType:  game.SeasonType(r.SeasonType),
		HomeTeamID:  r.HomeTeamID,
		AwayTeamID:  r.AwayTeamID,
		KickoffTime: r.KickoffTime,
		Status:      game.Status(r.Status),
		HomeScore:   r.HomeScore,
		AwayScore:   r.AwayScore,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// gameInsertRow omits id and timestamps so the database defaults apply.
type gameInsertRow struct {
	Year        int        `db:"year"`
	Week        int        `db:"week"`
	SeasonType  string     `db:"season_type"`
	HomeTeamID  string     `db:"home_team_id"`
	AwayTeamID  string     `db:"away_team_id"`
	KickoffTime *time.Time `db:"kickoff_time"`
	Status      string     `db:"status"`
	HomeScore   *int       `db:"home_score"`
	AwayScore   *int       `db:"away_score"`
}

const gameUpsertSuffix = `ON CONFLICT (year, week, season_type, home_team_id, away_team_id)
DO UPDATE SET kickoff_time = EXCLUDED.kickoff_time,
	status = EXCLUDED.status,
	home_score = EXCLUDED.home_score,
	away_score = EXCLUDED.away_score,
	updated_at = now()`

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) UpsertBatch(ctx context.Context, games []game.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin games upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upserted := 0
	for _, g := range games {
		row := gameInsertRow{
			Year:        g.Year,
			Week:        g.Week,
			SeasonType:  string(g.SeasonType),
			HomeTeamID:  g.HomeTeamID,
			AwayTeamID:  g.AwayTeamID,
			KickoffTime: g.KickoffTime,
			Status:      string(g.Status),
			HomeScore:   g.HomeScore,
			AwayScore:   g.AwayScore,
		}
		query, args, err := qb.InsertModel("games", row, gameUpsertSuffix)
		if err != nil {
			return 0, fmt.Errorf("build game upsert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert game %d/%d %s vs %s: %w", g.Year, g.Week, g.HomeTeamID, g.AwayTeamID, err)
		}
		upserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit games upsert: %w", err)
	}
	return upserted, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, year, week int) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		Where(qb.Eq("year", year), qb.Eq("week", week)).
		OrderBy("kickoff_time ASC", "home_team_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build games query: %w", err)
	}

	var rows []gameRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	games := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.toDomain())
	}
	return games, nil
}

func (r *GameRepository) FindFinal(ctx context.Context, year int, homeTeamID, awayTeamID string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		Where(
			qb.Eq("year", year),
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
			qb.Eq("status", string(game.StatusFinal)),
		).
		OrderBy("week DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build final game query: %w", err)
	}

	var row gameRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select final game: %w", err)
	}
	return row.toDomain(), true, nil
}
