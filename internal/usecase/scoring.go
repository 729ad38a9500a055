package usecase

import (
	"fmt"
	"math"

	"github.com/gridironhq/gridiron/internal/domain/coefficients"
)

// ScorePair applies the linear model to one feature vector, producing the
// home and away projected scores rounded to 2 decimals.
func ScorePair(set coefficients.Set, features []float64) (float64, float64, error) {
	if err := set.Validate(); err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrConfiguration, err)
	}
	if len(features) != len(set.FeatureNames) {
		return 0, 0, fmt.Errorf("%w: feature vector length %d does not match %d feature names",
			ErrConfiguration, len(features), len(set.FeatureNames))
	}

	home := set.HomeIntercept
	away := set.AwayIntercept
	for i, f := range features {
		home += f * set.HomeWeights[i]
		away += f * set.AwayWeights[i]
	}
	return roundScore(home), roundScore(away), nil
}

// roundScore rounds half away from zero to 2 decimal places.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
