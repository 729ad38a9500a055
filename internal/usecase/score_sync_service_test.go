package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/team"
	"github.com/gridironhq/gridiron/internal/platform/logging"
)

func syncTeams() []team.Team {
	return []team.Team{
		{ID: "team-chiefs", Abbreviation: "KC"},
		{ID: "team-bills", Abbreviation: "BUF"},
		{ID: "team-eagles", Abbreviation: "PHI"},
	}
}

func newSyncService(provider *stubProvider, teams *stubTeamRepo, games *stubGameRepo, stats *stubStatsRepo) *ScoreSyncService {
	return NewScoreSyncService(provider, teams, games, stats, nil, logging.NewNop())
}

func TestSyncMapsAndUpserts(t *testing.T) {
	t.Parallel()

	homeScore, awayScore := 27, 20
	provider := &stubProvider{
		games: []ProviderGame{
			{HomeTeamKey: "KC", AwayTeamKey: "BUF", RawStatus: "Final", HomeScore: &homeScore, AwayScore: &awayScore},
			{HomeTeamKey: "XYZ", AwayTeamKey: "PHI", RawStatus: "Scheduled"},
		},
		stats: []ProviderTeamSeasonStats{
			{TeamKey: "KC", Year: 2025, Games: 4, PointsFor: 108},
			{TeamKey: "XYZ", Year: 2025, Games: 4},
		},
	}
	teams := &stubTeamRepo{teams: syncTeams()}
	games := &stubGameRepo{}
	stats := &stubStatsRepo{}

	svc := newSyncService(provider, teams, games, stats)

	summary, err := svc.Sync(context.Background(), SyncInput{Year: 2025, Week: 4, SeasonType: game.SeasonTypeReg})
	if err != nil {
		t.Fatalf("Sync returned %v", err)
	}

	if summary.RunID == "" {
		t.Fatalf("summary has no run id")
	}
	if summary.GamesFetched != 2 || summary.GamesSkipped != 1 || summary.GamesUpserted != 1 {
		t.Fatalf("game counts = %+v", summary)
	}
	if summary.StatsFetched != 2 || summary.StatsSkipped != 1 || summary.StatsUpserted != 1 {
		t.Fatalf("stat counts = %+v", summary)
	}
	if summary.ProcessedAt.IsZero() {
		t.Fatalf("summary has no processed timestamp")
	}

	if len(games.upserted) != 1 || len(games.upserted[0]) != 1 {
		t.Fatalf("games upserted = %+v", games.upserted)
	}
	g := games.upserted[0][0]
	if g.HomeTeamID != "team-chiefs" || g.AwayTeamID != "team-bills" {
		t.Fatalf("game teams = %s vs %s", g.HomeTeamID, g.AwayTeamID)
	}
	if g.Status != game.StatusFinal {
		t.Fatalf("game status = %s, want FINAL", g.Status)
	}
	if g.Year != 2025 || g.Week != 4 || g.SeasonType != game.SeasonTypeReg {
		t.Fatalf("game scope = %d/%d/%s", g.Year, g.Week, g.SeasonType)
	}

	if len(stats.upserted) != 1 || len(stats.upserted[0]) != 1 {
		t.Fatalf("stats upserted = %+v", stats.upserted)
	}
	snap := stats.upserted[0][0]
	if snap.TeamID != "team-chiefs" || snap.AsOfWeek != 4 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.OffPointsPerGame != 27 {
		t.Fatalf("OffPointsPerGame = %v, want 27", snap.OffPointsPerGame)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	t.Parallel()

	homeScore, awayScore := 31, 17
	provider := &stubProvider{
		games: []ProviderGame{
			{HomeTeamKey: "KC", AwayTeamKey: "BUF", RawStatus: "Final", HomeScore: &homeScore, AwayScore: &awayScore},
			{HomeTeamKey: "PHI", AwayTeamKey: "KC", RawStatus: "Scheduled"},
		},
		stats: []ProviderTeamSeasonStats{
			{TeamKey: "KC", Year: 2025, Games: 5, PointsFor: 135, TotalYards: 1750},
			{TeamKey: "BUF", Year: 2025, Games: 5, PointsFor: 120, Turnovers: 6},
		},
	}
	teams := &stubTeamRepo{teams: syncTeams()}
	games := &stubGameRepo{}
	stats := &stubStatsRepo{}

	svc := newSyncService(provider, teams, games, stats)

	input := SyncInput{Year: 2025, Week: 5, SeasonType: game.SeasonTypeReg}
	first, err := svc.Sync(context.Background(), input)
	if err != nil {
		t.Fatalf("first Sync returned %v", err)
	}
	second, err := svc.Sync(context.Background(), input)
	if err != nil {
		t.Fatalf("second Sync returned %v", err)
	}

	if second.GamesUpserted != first.GamesUpserted || second.StatsUpserted != first.StatsUpserted {
		t.Fatalf("upsert counts changed between runs: first=%+v second=%+v", first, second)
	}
	if len(games.upserted) != 2 || len(stats.upserted) != 2 {
		t.Fatalf("batches recorded = %d games, %d stats, want 2 each", len(games.upserted), len(stats.upserted))
	}
	if !reflect.DeepEqual(games.upserted[0], games.upserted[1]) {
		t.Fatalf("game batches differ between runs:\nfirst:  %+v\nsecond: %+v", games.upserted[0], games.upserted[1])
	}
	if !reflect.DeepEqual(stats.upserted[0], stats.upserted[1]) {
		t.Fatalf("stat batches differ between runs:\nfirst:  %+v\nsecond: %+v", stats.upserted[0], stats.upserted[1])
	}
}

func TestSyncKeepsProviderSeasonType(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		games: []ProviderGame{
			{HomeTeamKey: "KC", AwayTeamKey: "BUF", SeasonType: game.SeasonTypePost, RawStatus: "Scheduled"},
			{HomeTeamKey: "PHI", AwayTeamKey: "KC", RawStatus: "Scheduled"},
		},
	}
	teams := &stubTeamRepo{teams: syncTeams()}
	games := &stubGameRepo{}

	svc := newSyncService(provider, teams, games, &stubStatsRepo{})

	if _, err := svc.Sync(context.Background(), SyncInput{Year: 2025, Week: 1, SeasonType: game.SeasonTypeReg}); err != nil {
		t.Fatalf("Sync returned %v", err)
	}

	if len(games.upserted) != 1 || len(games.upserted[0]) != 2 {
		t.Fatalf("games upserted = %+v", games.upserted)
	}
	if got := games.upserted[0][0].SeasonType; got != game.SeasonTypePost {
		t.Fatalf("SeasonType = %s, want provider's POST kept", got)
	}
	if got := games.upserted[0][1].SeasonType; got != game.SeasonTypeReg {
		t.Fatalf("SeasonType = %s, want scope's REG fallback", got)
	}
}

func TestSyncResolvesScopeFromProvider(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		scope: ProviderScope{Year: 2025, Week: 9, SeasonType: game.SeasonTypeReg},
	}
	teams := &stubTeamRepo{teams: syncTeams()}

	svc := newSyncService(provider, teams, &stubGameRepo{}, &stubStatsRepo{})

	summary, err := svc.Sync(context.Background(), SyncInput{})
	if err != nil {
		t.Fatalf("Sync returned %v", err)
	}
	if summary.Year != 2025 || summary.Week != 9 || summary.SeasonType != game.SeasonTypeReg {
		t.Fatalf("resolved scope = %d/%d/%s", summary.Year, summary.Week, summary.SeasonType)
	}
	if len(provider.gamesCalls) != 1 || provider.gamesCalls[0].Week != 9 {
		t.Fatalf("provider called with %+v", provider.gamesCalls)
	}
}

func TestSyncScopeFallbackWhenCurrentWeekUnavailable(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{scopeErr: errors.New("upstream down")}
	teams := &stubTeamRepo{teams: syncTeams()}

	svc := newSyncService(provider, teams, &stubGameRepo{}, &stubStatsRepo{})
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }

	summary, err := svc.Sync(context.Background(), SyncInput{})
	if err != nil {
		t.Fatalf("Sync returned %v", err)
	}
	if summary.Year != 2025 || summary.Week != 1 || summary.SeasonType != game.SeasonTypeReg {
		t.Fatalf("fallback scope = %d/%d/%s, want 2025/1/REG", summary.Year, summary.Week, summary.SeasonType)
	}
}

func TestSyncFailsWithoutTeamMappings(t *testing.T) {
	t.Parallel()

	svc := newSyncService(&stubProvider{}, &stubTeamRepo{}, &stubGameRepo{}, &stubStatsRepo{})

	_, err := svc.Sync(context.Background(), SyncInput{Year: 2025, Week: 1})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestSyncGamesFetchFailureAborts(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{gamesErr: errors.New("timeout")}
	teams := &stubTeamRepo{teams: syncTeams()}
	stats := &stubStatsRepo{}

	svc := newSyncService(provider, teams, &stubGameRepo{}, stats)

	_, err := svc.Sync(context.Background(), SyncInput{Year: 2025, Week: 1})
	if err == nil {
		t.Fatalf("Sync succeeded despite fetch failure")
	}
	if len(stats.upserted) != 0 {
		t.Fatalf("stats upserted after games fetch failed")
	}
}

func TestSyncAliasBeatsAbbreviation(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		stats: []ProviderTeamSeasonStats{{TeamKey: "KC", Year: 2025, Games: 1}},
	}
	teams := &stubTeamRepo{
		teams:   syncTeams(),
		aliases: []team.Alias{{Provider: team.ProviderSportsData, Alias: "KC", TeamID: "team-chiefs-rebrand"}},
	}
	stats := &stubStatsRepo{}

	svc := newSyncService(provider, teams, &stubGameRepo{}, stats)

	if _, err := svc.Sync(context.Background(), SyncInput{Year: 2025, Week: 1}); err != nil {
		t.Fatalf("Sync returned %v", err)
	}
	if stats.upserted[0][0].TeamID != "team-chiefs-rebrand" {
		t.Fatalf("TeamID = %s, want alias mapping", stats.upserted[0][0].TeamID)
	}
}

func TestBackfillRunsEveryWeek(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	teams := &stubTeamRepo{teams: syncTeams()}

	svc := newSyncService(provider, teams, &stubGameRepo{}, &stubStatsRepo{})

	summary, err := svc.Backfill(context.Background(), BackfillInput{
		Year:     2024,
		FromWeek: 1,
		ToWeek:   3,
	})
	if err != nil {
		t.Fatalf("Backfill returned %v", err)
	}

	if summary.Failed != 0 {
		t.Fatalf("failed weeks = %d", summary.Failed)
	}
	if len(summary.Weeks) != 3 {
		t.Fatalf("week summaries = %d, want 3", len(summary.Weeks))
	}
	for i, week := range summary.Weeks {
		if week.Week != i+1 {
			t.Fatalf("week summaries out of order: %+v", summary.Weeks)
		}
	}
}

func TestBackfillValidation(t *testing.T) {
	t.Parallel()

	svc := newSyncService(&stubProvider{}, &stubTeamRepo{teams: syncTeams()}, &stubGameRepo{}, &stubStatsRepo{})

	cases := []BackfillInput{
		{Year: 1999, FromWeek: 1, ToWeek: 2},
		{Year: 2024, FromWeek: 0, ToWeek: 2},
		{Year: 2024, FromWeek: 5, ToWeek: 2},
		{Year: 2024, FromWeek: 1, ToWeek: 31},
	}
	for i, input := range cases {
		if _, err := svc.Backfill(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}
