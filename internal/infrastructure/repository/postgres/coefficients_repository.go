package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gridironhq/gridiron/internal/domain/coefficients"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type coefficientsRow struct {
	ID            int64           `db:"id"`
	ModelVersion  string          `db:"model_version"`
	FeatureNames  pq.StringArray  `db:"feature_names"`
	HomeWeights   pq.Float64Array `db:"home_coefs"`
	AwayWeights   pq.Float64Array `db:"away_coefs"`
	HomeIntercept float64         `db:"home_intercept"`
	AwayIntercept float64         `db:"away_intercept"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (r coefficientsRow) toDomain() coefficients.Set {
	return coefficients.Set{
		ID:            r.ID,
		ModelVersion:  r.ModelVersion,
		FeatureNames:  []string(r.FeatureNames),
		HomeWeights:   []float64(r.HomeWeights),
		AwayWeights:   []float64(r.AwayWeights),
		HomeIntercept: r.HomeIntercept,
		AwayIntercept: r.AwayIntercept,
		UpdatedAt:     r.UpdatedAt,
	}
}

type CoefficientsRepository struct {
	db *sqlx.DB
}

func NewCoefficientsRepository(db *sqlx.DB) *CoefficientsRepository {
	return &CoefficientsRepository{db: db}
}

func (r *CoefficientsRepository) GetActive(ctx context.Context) (coefficients.Set, bool, error) {
	query, args, err := qb.Select(
		"id", "model_version", "feature_names", "home_coefs", "away_coefs",
		"home_intercept", "away_intercept", "updated_at",
	).
		From("model_coefficients").
		Where(qb.Eq("is_active", true)).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return coefficients.Set{}, false, fmt.Errorf("build coefficients query: %w", err)
	}

	var row coefficientsRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return coefficients.Set{}, false, nil
		}
		return coefficients.Set{}, false, fmt.Errorf("select active coefficients: %w", err)
	}
	return row.toDomain(), true, nil
}
