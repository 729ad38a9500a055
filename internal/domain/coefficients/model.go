package coefficients

import (
	"fmt"
	"time"
)

// Set is one trained linear model: a shared feature ordering with separate
// home and away weight vectors and intercepts.
type Set struct {
	ID            int64
	ModelVersion  string
	FeatureNames  []string
	HomeWeights   []float64
	AwayWeights   []float64
	HomeIntercept float64
	AwayIntercept float64
	UpdatedAt     time.Time
}

func (s Set) Validate() error {
	if len(s.FeatureNames) == 0 {
		return fmt.Errorf("feature names are empty")
	}
	if len(s.HomeWeights) != len(s.FeatureNames) {
		return fmt.Errorf("home weights length %d does not match %d feature names", len(s.HomeWeights), len(s.FeatureNames))
	}
	if len(s.AwayWeights) != len(s.FeatureNames) {
		return fmt.Errorf("away weights length %d does not match %d feature names", len(s.AwayWeights), len(s.FeatureNames))
	}
	return nil
}
