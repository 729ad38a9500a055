package teamstats

import "time"

// Snapshot holds one team's per-game normalized stats through a given week.
// JSON tags match the persisted column names so audit rows stay queryable.
type Snapshot struct {
	TeamID   string `json:"team_id"`
	Year     int    `json:"year"`
	AsOfWeek int    `json:"as_of_week"`

	OffPointsPerGame       float64 `json:"off_points_per_game"`
	OffTotalYardsPerGame   float64 `json:"off_total_yards_per_game"`
	OffPassingYardsPerGame float64 `json:"off_passing_yards_per_game"`
	OffRushingYardsPerGame float64 `json:"off_rushing_yards_per_game"`
	OffRedZoneEfficiency   float64 `json:"off_red_zone_efficiency"`
	OffThirdDownEfficiency float64 `json:"off_third_down_efficiency"`
	OffTurnoversPerGame    float64 `json:"off_turnovers_per_game"`
	OffTimeOfPossession    float64 `json:"off_time_of_possession"`

	DefPointsAllowedPerGame       float64 `json:"def_points_allowed_per_game"`
	DefTotalYardsAllowedPerGame   float64 `json:"def_total_yards_allowed_per_game"`
	DefPassingYardsAllowedPerGame float64 `json:"def_passing_yards_allowed_per_game"`
	DefRushingYardsAllowedPerGame float64 `json:"def_rushing_yards_allowed_per_game"`
	DefRedZoneEfficiency          float64 `json:"def_red_zone_efficiency"`
	DefThirdDownEfficiency        float64 `json:"def_third_down_efficiency"`
	DefTurnoversForcedPerGame     float64 `json:"def_turnovers_forced_per_game"`
	DefSacksPerGame               float64 `json:"def_sacks_per_game"`

	TurnoverMargin      float64 `json:"turnover_margin"`
	PenaltyYardsPerGame float64 `json:"penalty_yards_per_game"`

	UpdatedAt time.Time `json:"-"`
}

// Metric returns a stat by its column name. Unknown names read as 0 so
// feature construction stays total.
func (s Snapshot) Metric(name string) float64 {
	switch name {
	case "off_points_per_game":
		return s.OffPointsPerGame
	case "off_total_yards_per_game":
		return s.OffTotalYardsPerGame
	case "off_passing_yards_per_game":
		return s.OffPassingYardsPerGame
	case "off_rushing_yards_per_game":
		return s.OffRushingYardsPerGame
	case "off_red_zone_efficiency":
		return s.OffRedZoneEfficiency
	case "off_third_down_efficiency":
		return s.OffThirdDownEfficiency
	case "off_turnovers_per_game":
		return s.OffTurnoversPerGame
	case "off_time_of_possession":
		return s.OffTimeOfPossession
	case "def_points_allowed_per_game":
		return s.DefPointsAllowedPerGame
	case "def_total_yards_allowed_per_game":
		return s.DefTotalYardsAllowedPerGame
	case "def_passing_yards_allowed_per_game":
		return s.DefPassingYardsAllowedPerGame
	case "def_rushing_yards_allowed_per_game":
		return s.DefRushingYardsAllowedPerGame
	case "def_red_zone_efficiency":
		return s.DefRedZoneEfficiency
	case "def_third_down_efficiency":
		return s.DefThirdDownEfficiency
	case "def_turnovers_forced_per_game":
		return s.DefTurnoversForcedPerGame
	case "def_sacks_per_game":
		return s.DefSacksPerGame
	case "turnover_margin":
		return s.TurnoverMargin
	case "penalty_yards_per_game":
		return s.PenaltyYardsPerGame
	default:
		return 0
	}
}
