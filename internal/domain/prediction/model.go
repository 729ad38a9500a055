package prediction

import (
	"time"

	"github.com/gridironhq/gridiron/internal/domain/teamstats"
)

type Mode string

const (
	// ModeHistorical records the known outcome of an already-played matchup.
	ModeHistorical Mode = "historical"
	// ModePredicted records a model-scored projection.
	ModePredicted Mode = "prediction"
)

type UserPrediction struct {
	ID                 string
	UserID             string
	GameID             *string
	HomeTeamID         string
	AwayTeamID         string
	SeasonYear         int
	Mode               Mode
	PredictedHomeScore float64
	PredictedAwayScore float64
	ActualHomeScore    *int
	ActualAwayScore    *int
	WasAccurate        *bool
	CreatedAt          time.Time
}

// ModelAudit preserves the exact inputs a prediction was scored from.
type ModelAudit struct {
	UserPredictionID string
	HomeTeamFeatures teamstats.Snapshot
	AwayTeamFeatures teamstats.Snapshot
	FeatureVector    []float64
	ModelVersion     string
}

// HistoryItem is one row of a user's prediction history with team context.
type HistoryItem struct {
	Prediction       UserPrediction
	HomeAbbreviation string
	HomeName         string
	AwayAbbreviation string
	AwayName         string
	ModelVersion     *string
}

type TeamAccuracy struct {
	TeamID       string
	Abbreviation string
	Predictions  int
	Accurate     int
	AccuracyPct  float64
}

type Metrics struct {
	TotalPredictions    int
	ScoredPredictions   int
	AccuratePredictions int
	AccuracyPct         float64
	PerTeam             []TeamAccuracy
}
