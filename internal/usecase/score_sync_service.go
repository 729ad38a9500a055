package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/team"
	"github.com/gridironhq/gridiron/internal/domain/teamstats"
	"github.com/gridironhq/gridiron/internal/platform/id"
	"github.com/gridironhq/gridiron/internal/platform/logging"
)

const (
	backfillWeekMax            = 30
	defaultBackfillConcurrency = 4
)

// ScoreSyncService reconciles the provider's schedule and season stats into
// our store. Per-record mapping failures are skipped and counted; fetch and
// upsert failures abort the run.
type ScoreSyncService struct {
	provider ScoreProvider
	teams    team.Repository
	games    game.Repository
	stats    teamstats.Repository
	ids      id.Generator
	logger   *logging.Logger

	now func() time.Time
}

func NewScoreSyncService(
	provider ScoreProvider,
	teams team.Repository,
	games game.Repository,
	stats teamstats.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *ScoreSyncService {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreSyncService{
		provider: provider,
		teams:    teams,
		games:    games,
		stats:    stats,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

type SyncInput struct {
	Year       int
	Week       int
	SeasonType game.SeasonType
}

type SyncSummary struct {
	RunID      string
	Year       int
	Week       int
	SeasonType game.SeasonType

	GamesFetched  int
	GamesSkipped  int
	GamesUpserted int
	StatsFetched  int
	StatsSkipped  int
	StatsUpserted int

	ProcessedAt time.Time
}

func (s *ScoreSyncService) Sync(ctx context.Context, input SyncInput) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoreSyncService.Sync")
	defer span.End()

	scope := s.resolveScope(ctx, input)

	runID, err := s.ids.NewID()
	if err != nil {
		return SyncSummary{}, fmt.Errorf("generate run id: %w", err)
	}
	summary := SyncSummary{
		RunID:      runID,
		Year:       scope.Year,
		Week:       scope.Week,
		SeasonType: scope.SeasonType,
	}

	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return summary, err
	}
	if resolver.Size() == 0 {
		return summary, fmt.Errorf("%w: no team mappings loaded", ErrConfiguration)
	}

	if err := s.syncGames(ctx, scope, resolver, &summary); err != nil {
		return summary, err
	}
	if err := s.syncTeamStats(ctx, scope, resolver, &summary); err != nil {
		return summary, err
	}

	summary.ProcessedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "score sync completed",
		"run_id", summary.RunID,
		"year", summary.Year,
		"week", summary.Week,
		"season_type", string(summary.SeasonType),
		"games_fetched", summary.GamesFetched,
		"games_skipped", summary.GamesSkipped,
		"games_upserted", summary.GamesUpserted,
		"stats_fetched", summary.StatsFetched,
		"stats_skipped", summary.StatsSkipped,
		"stats_upserted", summary.StatsUpserted,
	)
	return summary, nil
}

// resolveScope fills missing parameters from the provider's current week,
// falling back to week 1 of the current year's regular season.
func (s *ScoreSyncService) resolveScope(ctx context.Context, input SyncInput) ProviderScope {
	scope := ProviderScope{Year: input.Year, Week: input.Week, SeasonType: input.SeasonType}
	if scope.SeasonType == "" {
		scope.SeasonType = game.SeasonTypeReg
	}
	if scope.Year > 0 && scope.Week > 0 {
		return scope
	}

	current, err := s.provider.CurrentScope(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "current scope lookup failed, using defaults", "error", err)
		current = ProviderScope{Year: s.now().Year(), Week: 1, SeasonType: game.SeasonTypeReg}
	}
	if scope.Year <= 0 {
		scope.Year = current.Year
	}
	if scope.Week <= 0 {
		scope.Week = current.Week
	}
	if input.SeasonType == "" && current.SeasonType != "" {
		scope.SeasonType = current.SeasonType
	}
	return scope
}

func (s *ScoreSyncService) buildResolver(ctx context.Context) (*TeamResolver, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	aliases, err := s.teams.ListAliasesByProvider(ctx, team.ProviderSportsData)
	if err != nil {
		return nil, fmt.Errorf("list team aliases: %w", err)
	}
	return NewTeamResolver(teams, aliases), nil
}

func (s *ScoreSyncService) syncGames(ctx context.Context, scope ProviderScope, resolver *TeamResolver, summary *SyncSummary) error {
	raw, err := s.provider.GamesByWeek(ctx, scope)
	if err != nil {
		return fmt.Errorf("fetch games: %w", err)
	}
	summary.GamesFetched = len(raw)

	mapped := make([]game.Game, 0, len(raw))
	for _, pg := range raw {
		homeID, err := resolver.Resolve(pg.HomeTeamKey)
		if err != nil {
			summary.GamesSkipped++
			s.logger.WarnContext(ctx, "skipping game with unresolved home team",
				"run_id", summary.RunID, "home_team", pg.HomeTeamKey, "away_team", pg.AwayTeamKey)
			continue
		}
		awayID, err := resolver.Resolve(pg.AwayTeamKey)
		if err != nil {
			summary.GamesSkipped++
			s.logger.WarnContext(ctx, "skipping game with unresolved away team",
				"run_id", summary.RunID, "home_team", pg.HomeTeamKey, "away_team", pg.AwayTeamKey)
			continue
		}

		year := pg.Year
		if year <= 0 {
			year = scope.Year
		}
		week := pg.Week
		if week <= 0 {
			week = scope.Week
		}
		seasonType := pg.SeasonType
		if seasonType == "" {
			seasonType = scope.SeasonType
		}
		mapped = append(mapped, game.Game{
			Year:        year,
			Week:        week,
			SeasonType:  seasonType,
			HomeTeamID:  homeID,
			AwayTeamID:  awayID,
			KickoffTime: pg.KickoffTime,
			Status:      game.ClassifyStatus(pg.RawStatus),
			HomeScore:   pg.HomeScore,
			AwayScore:   pg.AwayScore,
		})
	}

	upserted, err := s.games.UpsertBatch(ctx, mapped)
	if err != nil {
		return fmt.Errorf("upsert games: %w", err)
	}
	summary.GamesUpserted = upserted
	return nil
}

func (s *ScoreSyncService) syncTeamStats(ctx context.Context, scope ProviderScope, resolver *TeamResolver, summary *SyncSummary) error {
	raw, err := s.provider.TeamSeasonStats(ctx, scope.Year, scope.SeasonType)
	if err != nil {
		return fmt.Errorf("fetch team season stats: %w", err)
	}
	summary.StatsFetched = len(raw)

	mapped := make([]teamstats.Snapshot, 0, len(raw))
	for _, stats := range raw {
		teamID, err := resolver.Resolve(stats.TeamKey)
		if err != nil {
			summary.StatsSkipped++
			s.logger.WarnContext(ctx, "skipping stats for unresolved team",
				"run_id", summary.RunID, "team", stats.TeamKey)
			continue
		}
		snap := NormalizeTeamSeasonStats(teamID, stats, scope.Week)
		if snap.Year <= 0 {
			snap.Year = scope.Year
		}
		mapped = append(mapped, snap)
	}

	upserted, err := s.stats.UpsertBatch(ctx, mapped)
	if err != nil {
		return fmt.Errorf("upsert team stats: %w", err)
	}
	summary.StatsUpserted = upserted
	return nil
}

type BackfillInput struct {
	Year        int
	SeasonType  game.SeasonType
	FromWeek    int
	ToWeek      int
	Concurrency int
}

type BackfillSummary struct {
	Year       int
	SeasonType game.SeasonType
	Weeks      []SyncSummary
	Failed     int
}

// Backfill re-syncs a contiguous week range on a bounded worker pool. Week
// failures are counted, not fatal, so one bad week cannot sink the rest.
func (s *ScoreSyncService) Backfill(ctx context.Context, input BackfillInput) (BackfillSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoreSyncService.Backfill")
	defer span.End()

	if input.Year < seasonYearMin || input.Year > seasonYearMax {
		return BackfillSummary{}, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, seasonYearMin, seasonYearMax)
	}
	if input.FromWeek < 1 || input.ToWeek > backfillWeekMax || input.FromWeek > input.ToWeek {
		return BackfillSummary{}, fmt.Errorf("%w: week range %d-%d is invalid", ErrInvalidInput, input.FromWeek, input.ToWeek)
	}
	seasonType := input.SeasonType
	if seasonType == "" {
		seasonType = game.SeasonTypeReg
	}
	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBackfillConcurrency
	}

	workers, err := ants.NewPool(concurrency)
	if err != nil {
		return BackfillSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	summary := BackfillSummary{Year: input.Year, SeasonType: seasonType}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for week := input.FromWeek; week <= input.ToWeek; week++ {
		week := week
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			weekSummary, err := s.Sync(ctx, SyncInput{Year: input.Year, Week: week, SeasonType: seasonType})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				s.logger.WarnContext(ctx, "backfill week failed",
					"year", input.Year, "week", week, "season_type", string(seasonType), "error", err)
				return
			}
			summary.Weeks = append(summary.Weeks, weekSummary)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			summary.Failed++
			mu.Unlock()
			s.logger.WarnContext(ctx, "backfill week submit failed", "week", week, "error", submitErr)
		}
	}
	wg.Wait()

	sort.Slice(summary.Weeks, func(i, j int) bool { return summary.Weeks[i].Week < summary.Weeks[j].Week })
	return summary, nil
}
