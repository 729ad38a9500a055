package usecase

import (
	"math"
	"testing"
)

func TestNormalizeTeamSeasonStats(t *testing.T) {
	t.Parallel()

	raw := ProviderTeamSeasonStats{
		TeamKey: "KC",
		Year:    2025,
		Games:   4,

		PointsFor:            108,
		TotalYards:           1480,
		PassingYards:         1000,
		RushingYards:         480,
		RedZoneAttempts:      16,
		RedZoneConversions:   10,
		ThirdDownAttempts:    48,
		ThirdDownConversions: 20,
		Turnovers:            6,
		TimeOfPossessionMin:  30,
		TimeOfPossessionSec:  30,

		OpponentPointsFor:            84,
		OpponentTotalYards:           1280,
		OpponentPassingYards:         880,
		OpponentRushingYards:         400,
		OpponentRedZoneAttempts:      12,
		OpponentRedZoneConversions:   6,
		OpponentThirdDownAttempts:    40,
		OpponentThirdDownConversions: 14,
		OpponentTurnovers:            8,

		Sacks:                10,
		TurnoverDifferential: 2,
		PenaltyYards:         240,
	}

	got := NormalizeTeamSeasonStats("team-chiefs", raw, 4)

	if got.TeamID != "team-chiefs" || got.Year != 2025 || got.AsOfWeek != 4 {
		t.Fatalf("identity fields = %+v", got)
	}
	if got.OffPointsPerGame != 27 {
		t.Errorf("OffPointsPerGame = %v, want 27", got.OffPointsPerGame)
	}
	if got.OffTotalYardsPerGame != 370 {
		t.Errorf("OffTotalYardsPerGame = %v, want 370", got.OffTotalYardsPerGame)
	}
	if got.OffRedZoneEfficiency != 62.5 {
		t.Errorf("OffRedZoneEfficiency = %v, want 62.5", got.OffRedZoneEfficiency)
	}
	if math.Abs(got.OffThirdDownEfficiency-41.666666666666664) > 1e-9 {
		t.Errorf("OffThirdDownEfficiency = %v", got.OffThirdDownEfficiency)
	}
	if got.OffTimeOfPossession != 30.5 {
		t.Errorf("OffTimeOfPossession = %v, want 30.5", got.OffTimeOfPossession)
	}
	if got.DefPointsAllowedPerGame != 21 {
		t.Errorf("DefPointsAllowedPerGame = %v, want 21", got.DefPointsAllowedPerGame)
	}
	if got.DefRedZoneEfficiency != 50 {
		t.Errorf("DefRedZoneEfficiency = %v, want 50", got.DefRedZoneEfficiency)
	}
	if got.DefTurnoversForcedPerGame != 2 {
		t.Errorf("DefTurnoversForcedPerGame = %v, want 2", got.DefTurnoversForcedPerGame)
	}
	if got.DefSacksPerGame != 2.5 {
		t.Errorf("DefSacksPerGame = %v, want 2.5", got.DefSacksPerGame)
	}
	if got.TurnoverMargin != 0.5 {
		t.Errorf("TurnoverMargin = %v, want 0.5", got.TurnoverMargin)
	}
	if got.PenaltyYardsPerGame != 60 {
		t.Errorf("PenaltyYardsPerGame = %v, want 60", got.PenaltyYardsPerGame)
	}
}

func TestNormalizeTeamSeasonStatsZeroGames(t *testing.T) {
	t.Parallel()

	raw := ProviderTeamSeasonStats{Year: 2025, Games: 0, PointsFor: 21}

	got := NormalizeTeamSeasonStats("team-x", raw, 1)
	if got.OffPointsPerGame != 21 {
		t.Fatalf("OffPointsPerGame with zero games = %v, want totals treated as one game", got.OffPointsPerGame)
	}
}

func TestNormalizeTeamSeasonStatsZeroAttempts(t *testing.T) {
	t.Parallel()

	raw := ProviderTeamSeasonStats{
		Year:                 2025,
		Games:                1,
		RedZoneConversions:   3,
		RedZoneAttempts:      0,
		ThirdDownConversions: 2,
		ThirdDownAttempts:    0,
	}

	got := NormalizeTeamSeasonStats("team-x", raw, 1)
	if got.OffRedZoneEfficiency != 0 {
		t.Fatalf("OffRedZoneEfficiency with zero attempts = %v, want 0", got.OffRedZoneEfficiency)
	}
	if got.OffThirdDownEfficiency != 0 {
		t.Fatalf("OffThirdDownEfficiency with zero attempts = %v, want 0", got.OffThirdDownEfficiency)
	}
}
