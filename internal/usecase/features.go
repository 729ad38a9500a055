package usecase

import (
	"strings"

	"github.com/gridironhq/gridiron/internal/domain/teamstats"
)

// featurePairs maps a feature name to the (home offense, away defense) stats
// it is differenced from. Features outside this table fall back to the same
// stat on both sides with the "_diff" suffix stripped.
var featurePairs = map[string][2]string{
	"off_points_per_game_diff":        {"off_points_per_game", "def_points_allowed_per_game"},
	"off_total_yards_per_game_diff":   {"off_total_yards_per_game", "def_total_yards_allowed_per_game"},
	"off_passing_yards_per_game_diff": {"off_passing_yards_per_game", "def_passing_yards_allowed_per_game"},
	"off_rushing_yards_per_game_diff": {"off_rushing_yards_per_game", "def_rushing_yards_allowed_per_game"},
	"off_red_zone_efficiency_diff":    {"off_red_zone_efficiency", "def_red_zone_efficiency"},
	"off_third_down_efficiency_diff":  {"off_third_down_efficiency", "def_third_down_efficiency"},
	"turnover_margin_diff":            {"turnover_margin", "turnover_margin"},
}

// BuildFeatureVector produces one value per feature name, in order. Unknown
// stats read as 0 so a schema drift degrades the score instead of failing it.
func BuildFeatureVector(featureNames []string, home, away teamstats.Snapshot) []float64 {
	features := make([]float64, len(featureNames))
	for i, name := range featureNames {
		if pair, ok := featurePairs[name]; ok {
			features[i] = home.Metric(pair[0]) - away.Metric(pair[1])
			continue
		}
		stat := strings.TrimSuffix(name, "_diff")
		features[i] = home.Metric(stat) - away.Metric(stat)
	}
	return features
}
