package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/team"
	"github.com/gridironhq/gridiron/internal/domain/teamstats"
	"github.com/gridironhq/gridiron/internal/platform/cache"
	"github.com/gridironhq/gridiron/internal/platform/logging"
)

const (
	scoreboardWeekMax = 18
	statsWeekMax      = 30

	teamsCacheKey = "teams"
)

type TeamService struct {
	teams  team.Repository
	games  game.Repository
	stats  teamstats.Repository
	cache  *cache.Store
	logger *logging.Logger
}

func NewTeamService(teams team.Repository, games game.Repository, stats teamstats.Repository, store *cache.Store, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{teams: teams, games: games, stats: stats, cache: store, logger: logger}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	if s.cache == nil {
		teams, err := s.teams.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return teams, nil
	}

	value, err := s.cache.GetOrLoad(ctx, teamsCacheKey, func(ctx context.Context) (any, error) {
		return s.teams.List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams, ok := value.([]team.Team)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T for teams", value)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	if id == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, found, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, id)
	}
	return t, nil
}

// ScoreboardGame is a scheduled game joined with both teams' identities.
type ScoreboardGame struct {
	Game     game.Game
	HomeTeam team.Team
	AwayTeam team.Team
}

func (s *TeamService) Scoreboard(ctx context.Context, year, week int) ([]ScoreboardGame, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Scoreboard")
	defer span.End()

	if year < seasonYearMin || year > seasonYearMax {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, seasonYearMin, seasonYearMax)
	}
	if week < 1 || week > scoreboardWeekMax {
		return nil, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, scoreboardWeekMax)
	}

	games, err := s.games.ListByWeek(ctx, year, week)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	scoreboard := make([]ScoreboardGame, 0, len(games))
	for _, g := range games {
		scoreboard = append(scoreboard, ScoreboardGame{
			Game:     g,
			HomeTeam: byID[g.HomeTeamID],
			AwayTeam: byID[g.AwayTeamID],
		})
	}
	return scoreboard, nil
}

// ParseAsOfWeek interprets the asOfWeek query parameter: "latest" (or empty)
// selects the newest snapshot per team, otherwise a concrete week number.
func ParseAsOfWeek(raw string) (week int, latest bool, err error) {
	if raw == "" || raw == "latest" {
		return 0, true, nil
	}
	week, convErr := strconv.Atoi(raw)
	if convErr != nil || week < 1 || week > statsWeekMax {
		return 0, false, fmt.Errorf("%w: asOfWeek must be \"latest\" or a week between 1 and %d", ErrInvalidInput, statsWeekMax)
	}
	return week, false, nil
}

func (s *TeamService) TeamStats(ctx context.Context, year, week int, latest bool) ([]teamstats.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.TeamStats")
	defer span.End()

	if year < seasonYearMin || year > seasonYearMax {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, seasonYearMin, seasonYearMax)
	}

	if latest {
		snapshots, err := s.stats.ListLatest(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("list latest team stats: %w", err)
		}
		return snapshots, nil
	}

	if week < 1 || week > statsWeekMax {
		return nil, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, statsWeekMax)
	}
	snapshots, err := s.stats.ListAsOf(ctx, year, week)
	if err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}
	return snapshots, nil
}
