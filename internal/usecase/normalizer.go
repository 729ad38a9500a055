package usecase

import "github.com/gridironhq/gridiron/internal/domain/teamstats"

// NormalizeTeamSeasonStats converts cumulative season totals into the
// per-game snapshot the model consumes. Total: never errors, never divides
// by zero.
func NormalizeTeamSeasonStats(teamID string, raw ProviderTeamSeasonStats, asOfWeek int) teamstats.Snapshot {
	games := float64(raw.Games)
	if games < 1 {
		games = 1
	}

	return teamstats.Snapshot{
		TeamID:   teamID,
		Year:     raw.Year,
		AsOfWeek: asOfWeek,

		OffPointsPerGame:       raw.PointsFor / games,
		OffTotalYardsPerGame:   raw.TotalYards / games,
		OffPassingYardsPerGame: raw.PassingYards / games,
		OffRushingYardsPerGame: raw.RushingYards / games,
		OffRedZoneEfficiency:   efficiencyPct(raw.RedZoneConversions, raw.RedZoneAttempts),
		OffThirdDownEfficiency: efficiencyPct(raw.ThirdDownConversions, raw.ThirdDownAttempts),
		OffTurnoversPerGame:    raw.Turnovers / games,
		OffTimeOfPossession:    raw.TimeOfPossessionMin + raw.TimeOfPossessionSec/60,

		DefPointsAllowedPerGame:       raw.OpponentPointsFor / games,
		DefTotalYardsAllowedPerGame:   raw.OpponentTotalYards / games,
		DefPassingYardsAllowedPerGame: raw.OpponentPassingYards / games,
		DefRushingYardsAllowedPerGame: raw.OpponentRushingYards / games,
		DefRedZoneEfficiency:          efficiencyPct(raw.OpponentRedZoneConversions, raw.OpponentRedZoneAttempts),
		DefThirdDownEfficiency:        efficiencyPct(raw.OpponentThirdDownConversions, raw.OpponentThirdDownAttempts),
		DefTurnoversForcedPerGame:     raw.OpponentTurnovers / games,
		DefSacksPerGame:               raw.Sacks / games,

		TurnoverMargin:      raw.TurnoverDifferential / games,
		PenaltyYardsPerGame: raw.PenaltyYards / games,
	}
}

// efficiencyPct returns conversions/attempts as a percentage; zero attempts
// reads as 0%, not an error.
func efficiencyPct(conversions, attempts float64) float64 {
	if attempts <= 0 {
		return 0
	}
	return conversions / attempts * 100
}
