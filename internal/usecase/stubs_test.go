package usecase

import (
	"context"

	"github.com/gridironhq/gridiron/internal/domain/coefficients"
	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/prediction"
	"github.com/gridironhq/gridiron/internal/domain/profile"
	"github.com/gridironhq/gridiron/internal/domain/team"
	"github.com/gridironhq/gridiron/internal/domain/teamstats"
)

type stubTeamRepo struct {
	teams    []team.Team
	aliases  []team.Alias
	listErr  error
	aliasErr error
}

func (s *stubTeamRepo) List(context.Context) ([]team.Team, error) {
	return s.teams, s.listErr
}

func (s *stubTeamRepo) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	for _, t := range s.teams {
		if t.ID == id {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepo) ListAliasesByProvider(context.Context, string) ([]team.Alias, error) {
	return s.aliases, s.aliasErr
}

type stubGameRepo struct {
	upserted   [][]game.Game
	upsertErr  error
	byWeek     []game.Game
	finalGame  game.Game
	finalFound bool
	finalErr   error
}

func (s *stubGameRepo) UpsertBatch(_ context.Context, games []game.Game) (int, error) {
	if s.upsertErr != nil {
		return 0, s.upsertErr
	}
	s.upserted = append(s.upserted, games)
	return len(games), nil
}

func (s *stubGameRepo) ListByWeek(context.Context, int, int) ([]game.Game, error) {
	return s.byWeek, nil
}

func (s *stubGameRepo) FindFinal(context.Context, int, string, string) (game.Game, bool, error) {
	return s.finalGame, s.finalFound, s.finalErr
}

type stubStatsRepo struct {
	upserted      [][]teamstats.Snapshot
	upsertErr     error
	latestByTeams []teamstats.Snapshot
	latest        []teamstats.Snapshot
	asOf          []teamstats.Snapshot
	listErr       error
}

func (s *stubStatsRepo) UpsertBatch(_ context.Context, snapshots []teamstats.Snapshot) (int, error) {
	if s.upsertErr != nil {
		return 0, s.upsertErr
	}
	s.upserted = append(s.upserted, snapshots)
	return len(snapshots), nil
}

func (s *stubStatsRepo) ListLatestByTeams(context.Context, int, []string) ([]teamstats.Snapshot, error) {
	return s.latestByTeams, s.listErr
}

func (s *stubStatsRepo) ListLatest(context.Context, int) ([]teamstats.Snapshot, error) {
	return s.latest, s.listErr
}

func (s *stubStatsRepo) ListAsOf(context.Context, int, int) ([]teamstats.Snapshot, error) {
	return s.asOf, s.listErr
}

type stubCoeffRepo struct {
	set   coefficients.Set
	found bool
	err   error
}

func (s *stubCoeffRepo) GetActive(context.Context) (coefficients.Set, bool, error) {
	return s.set, s.found, s.err
}

type stubPredictionRepo struct {
	inserted  []prediction.UserPrediction
	audits    []prediction.ModelAudit
	insertErr error
	auditErr  error
	history   []prediction.HistoryItem
	metrics   prediction.Metrics
	nextID    string
}

func (s *stubPredictionRepo) InsertUserPrediction(_ context.Context, p prediction.UserPrediction) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.inserted = append(s.inserted, p)
	if s.nextID != "" {
		return s.nextID, nil
	}
	return "prediction-1", nil
}

func (s *stubPredictionRepo) InsertModelAudit(_ context.Context, audit prediction.ModelAudit) error {
	if s.auditErr != nil {
		return s.auditErr
	}
	s.audits = append(s.audits, audit)
	return nil
}

func (s *stubPredictionRepo) ListByUser(context.Context, string, int) ([]prediction.HistoryItem, error) {
	return s.history, nil
}

func (s *stubPredictionRepo) MetricsByUser(context.Context, string) (prediction.Metrics, error) {
	return s.metrics, nil
}

type stubProfileRepo struct {
	profiles     map[string]profile.Profile
	getErr       error
	incremented  []string
	incrementErr error
}

func (s *stubProfileRepo) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	if s.getErr != nil {
		return profile.Profile{}, false, s.getErr
	}
	p, ok := s.profiles[userID]
	return p, ok, nil
}

func (s *stubProfileRepo) Upsert(_ context.Context, p profile.Profile) (profile.Profile, error) {
	if s.profiles == nil {
		s.profiles = make(map[string]profile.Profile)
	}
	if existing, ok := s.profiles[p.UserID]; ok {
		existing.Email = p.Email
		s.profiles[p.UserID] = existing
		return existing, nil
	}
	s.profiles[p.UserID] = p
	return p, nil
}

func (s *stubProfileRepo) IncrementFreePredictionsUsed(_ context.Context, userID string) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	s.incremented = append(s.incremented, userID)
	return nil
}

type stubProvider struct {
	scope    ProviderScope
	scopeErr error
	games    []ProviderGame
	gamesErr error
	stats    []ProviderTeamSeasonStats
	statsErr error

	gamesCalls []ProviderScope
	statsCalls []int
}

func (s *stubProvider) CurrentScope(context.Context) (ProviderScope, error) {
	return s.scope, s.scopeErr
}

func (s *stubProvider) GamesByWeek(_ context.Context, scope ProviderScope) ([]ProviderGame, error) {
	s.gamesCalls = append(s.gamesCalls, scope)
	return s.games, s.gamesErr
}

func (s *stubProvider) TeamSeasonStats(_ context.Context, year int, _ game.SeasonType) ([]ProviderTeamSeasonStats, error) {
	s.statsCalls = append(s.statsCalls, year)
	return s.stats, s.statsErr
}
