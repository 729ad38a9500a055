package usecase

import (
	"context"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/game"
)

// ProviderScope names one slice of the upstream schedule.
type ProviderScope struct {
	Year       int
	Week       int
	SeasonType game.SeasonType
}

// ProviderGame is a raw schedule record as the upstream reports it, before
// team resolution and status classification.
type ProviderGame struct {
	Year        int
	Week        int
	SeasonType  game.SeasonType
	HomeTeamKey string
	AwayTeamKey string
	KickoffTime *time.Time
	RawStatus   string
	HomeScore   *int
	AwayScore   *int
}

// ProviderTeamSeasonStats carries the upstream's cumulative season totals for
// one team. Everything except Games is a raw counting stat.
type ProviderTeamSeasonStats struct {
	TeamKey string
	Year    int
	Games   int

	PointsFor            float64
	TotalYards           float64
	PassingYards         float64
	RushingYards         float64
	RedZoneAttempts      float64
	RedZoneConversions   float64
	ThirdDownAttempts    float64
	ThirdDownConversions float64
	Turnovers            float64
	TimeOfPossessionMin  float64
	TimeOfPossessionSec  float64

	OpponentPointsFor            float64
	OpponentTotalYards           float64
	OpponentPassingYards         float64
	OpponentRushingYards         float64
	OpponentRedZoneAttempts      float64
	OpponentRedZoneConversions   float64
	OpponentThirdDownAttempts    float64
	OpponentThirdDownConversions float64
	OpponentTurnovers            float64

	Sacks                float64
	TurnoverDifferential float64
	PenaltyYards         float64
}

// ScoreProvider is the upstream scores API surface the sync service needs.
type ScoreProvider interface {
	CurrentScope(ctx context.Context) (ProviderScope, error)
	GamesByWeek(ctx context.Context, scope ProviderScope) ([]ProviderGame, error)
	TeamSeasonStats(ctx context.Context, year int, seasonType game.SeasonType) ([]ProviderTeamSeasonStats, error)
}
