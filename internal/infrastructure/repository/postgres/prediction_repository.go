package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gridironhq/gridiron/internal/domain/prediction"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type userPredictionInsertRow struct {
	ID                 string  `db:"id"`
	UserID             string  `db:"user_id"`
	GameID             *string `db:"game_id"`
	HomeTeamID         string  `db:"home_team_id"`
	AwayTeamID         string  `db:"away_team_id"`
	SeasonYear         int     `db:"season_year"`
	Mode               string  `db:"mode"`
	PredictedHomeScore float64 `db:"predicted_home_score"`
	PredictedAwayScore float64 `db:"predicted_away_score"`
	ActualHomeScore    *int    `db:"actual_home_score"`
	ActualAwayScore    *int    `db:"actual_away_score"`
}

type modelAuditInsertRow struct {
	UserPredictionID string          `db:"user_prediction_id"`
	HomeTeamFeatures []byte          `db:"home_team_features"`
	AwayTeamFeatures []byte          `db:"away_team_features"`
	FeatureVector    pq.Float64Array `db:"feature_vector"`
	ModelVersion     string          `db:"model_version"`
}

type historyRow struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	GameID             *string   `db:"game_id"`
	HomeTeamID         string    `db:"home_team_id"`
	AwayTeamID         string    `db:"away_team_id"`
	SeasonYear         int       `db:"season_year"`
	Mode               string    `db:"mode"`
	PredictedHomeScore float64   `db:"predicted_home_score"`
	PredictedAwayScore float64   `db:"predicted_away_score"`
	ActualHomeScore    *int      `db:"actual_home_score"`
	ActualAwayScore    *int      `db:"actual_away_score"`
	WasAccurate        *bool     `db:"was_accurate"`
	CreatedAt          time.Time `db:"created_at"`
	HomeAbbreviation   string    `db:"home_abbreviation"`
	HomeName           string    `db:"home_name"`
	AwayAbbreviation   string    `db:"away_abbreviation"`
	AwayName           string    `db:"away_name"`
	ModelVersion       *string   `db:"model_version"`
}

// The in-house builder has no join support, so history and metrics queries
// are written out.
const historyQuery = `SELECT up.id, up.user_id, up.game_id, up.home_team_id, up.away_team_id,
	up.season_year, up.mode, up.predicted_home_score, up.predicted_away_score,
	up.actual_home_score, up.actual_away_score, up.was_accurate, up.created_at,
	ht.abbreviation AS home_abbreviation, ht.name AS home_name,
	aw.abbreviation AS away_abbreviation, aw.name AS away_name,
	mp.model_version
FROM user_predictions up
JOIN teams ht ON ht.id = up.home_team_id
JOIN teams aw ON aw.id = up.away_team_id
LEFT JOIN model_predictions mp ON mp.user_prediction_id = up.id
WHERE up.user_id = $1
ORDER BY up.created_at DESC
LIMIT $2`

const metricsQuery = `SELECT COUNT(*) AS total,
	COUNT(was_accurate) AS scored,
	COALESCE(COUNT(*) FILTER (WHERE was_accurate), 0) AS accurate
FROM user_predictions
WHERE user_id = $1`

const teamAccuracyQuery = `SELECT team_id, abbreviation, predictions, accurate
FROM v_user_team_accuracy
WHERE user_id = $1
ORDER BY predictions DESC, abbreviation ASC`

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) InsertUserPrediction(ctx context.Context, p prediction.UserPrediction) (string, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := userPredictionInsertRow{
		ID:                 id,
		UserID:             p.UserID,
		GameID:             p.GameID,
		HomeTeamID:         p.HomeTeamID,
		AwayTeamID:         p.AwayTeamID,
		SeasonYear:         p.SeasonYear,
		Mode:               string(p.Mode),
		PredictedHomeScore: p.PredictedHomeScore,
		PredictedAwayScore: p.PredictedAwayScore,
		ActualHomeScore:    p.ActualHomeScore,
		ActualAwayScore:    p.ActualAwayScore,
	}
	query, args, err := qb.InsertModel("user_predictions", row, "")
	if err != nil {
		return "", fmt.Errorf("build prediction insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert prediction: %w", err)
	}
	return id, nil
}

func (r *PredictionRepository) InsertModelAudit(ctx context.Context, audit prediction.ModelAudit) error {
	homeJSON, err := sonic.Marshal(audit.HomeTeamFeatures)
	if err != nil {
		return fmt.Errorf("encode home features: %w", err)
	}
	awayJSON, err := sonic.Marshal(audit.AwayTeamFeatures)
	if err != nil {
		return fmt.Errorf("encode away features: %w", err)
	}

	row := modelAuditInsertRow{
		UserPredictionID: audit.UserPredictionID,
		HomeTeamFeatures: homeJSON,
		AwayTeamFeatures: awayJSON,
		FeatureVector:    pq.Float64Array(audit.FeatureVector),
		ModelVersion:     audit.ModelVersion,
	}
	query, args, err := qb.InsertModel("model_predictions", row, "")
	if err != nil {
		return fmt.Errorf("build model audit insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert model audit: %w", err)
	}
	return nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]prediction.HistoryItem, error) {
	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, historyQuery, userID, limit); err != nil {
		return nil, fmt.Errorf("select prediction history: %w", err)
	}

	items := make([]prediction.HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, prediction.HistoryItem{
			Prediction: prediction.UserPrediction{
				ID:                 row.ID,
				UserID:             row.UserID,
				GameID:             row.GameID,
				HomeTeamID:         row.HomeTeamID,
				AwayTeamID:         row.AwayTeamID,
				SeasonYear:         row.SeasonYear,
				Mode:               prediction.Mode(row.Mode),
				PredictedHomeScore: row.PredictedHomeScore,
				PredictedAwayScore: row.PredictedAwayScore,
				ActualHomeScore:    row.ActualHomeScore,
				ActualAwayScore:    row.ActualAwayScore,
				WasAccurate:        row.WasAccurate,
				CreatedAt:          row.CreatedAt,
			},
			HomeAbbreviation: row.HomeAbbreviation,
			HomeName:         row.HomeName,
			AwayAbbreviation: row.AwayAbbreviation,
			AwayName:         row.AwayName,
			ModelVersion:     row.ModelVersion,
		})
	}
	return items, nil
}

func (r *PredictionRepository) MetricsByUser(ctx context.Context, userID string) (prediction.Metrics, error) {
	var totals struct {
		Total    int `db:"total"`
		Scored   int `db:"scored"`
		Accurate int `db:"accurate"`
	}
	if err := r.db.GetContext(ctx, &totals, metricsQuery, userID); err != nil {
		return prediction.Metrics{}, fmt.Errorf("select prediction metrics: %w", err)
	}

	var teamRows []struct {
		TeamID       string `db:"team_id"`
		Abbreviation string `db:"abbreviation"`
		Predictions  int    `db:"predictions"`
		Accurate     int    `db:"accurate"`
	}
	if err := r.db.SelectContext(ctx, &teamRows, teamAccuracyQuery, userID); err != nil {
		return prediction.Metrics{}, fmt.Errorf("select per-team accuracy: %w", err)
	}

	metrics := prediction.Metrics{
		TotalPredictions:    totals.Total,
		ScoredPredictions:   totals.Scored,
		AccuratePredictions: totals.Accurate,
	}
	if totals.Scored > 0 {
		metrics.AccuracyPct = float64(totals.Accurate) / float64(totals.Scored) * 100
	}
	for _, row := range teamRows {
		accuracy := 0.0
		if row.Predictions > 0 {
			accuracy = float64(row.Accurate) / float64(row.Predictions) * 100
		}
		metrics.PerTeam = append(metrics.PerTeam, prediction.TeamAccuracy{
			TeamID:       row.TeamID,
			Abbreviation: row.Abbreviation,
			Predictions:  row.Predictions,
			Accurate:     row.Accurate,
			AccuracyPct:  accuracy,
		})
	}
	return metrics, nil
}
