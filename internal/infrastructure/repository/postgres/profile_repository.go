package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/profile"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

var profileColumns = []string{
	"user_id", "email", "is_premium", "free_predictions_used", "created_at", "updated_at",
}

type profileRow struct {
	UserID              string    `db:"user_id"`
	Email               string    `db:"email"`
	IsPremium           bool      `db:"is_premium"`
	FreePredictionsUsed int       `db:"free_predictions_used"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r profileRow) toDomain() profile.Profile {
	return profile.Profile{
		UserID:              r.UserID,
		Email:               r.Email,
		IsPremium:           r.IsPremium,
		FreePredictionsUsed: r.FreePredictionsUsed,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

type profileInsertRow struct {
	UserID    string `db:"user_id"`
	Email     string `db:"email"`
	IsPremium bool   `db:"is_premium"`
}

// Re-login only refreshes the email; premium status and the used counter are
// owned by billing and the prediction flow respectively.
const profileUpsertSuffix = `ON CONFLICT (user_id)
DO UPDATE SET email = EXCLUDED.email, updated_at = now()
RETURNING user_id, email, is_premium, free_predictions_used, created_at, updated_at`

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select(profileColumns...).
		From("profiles").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build profile query: %w", err)
	}

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("select profile %s: %w", userID, err)
	}
	return row.toDomain(), true, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	row := profileInsertRow{
		UserID:    p.UserID,
		Email:     p.Email,
		IsPremium: p.IsPremium,
	}
	query, args, err := qb.InsertModel("profiles", row, profileUpsertSuffix)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("build profile upsert: %w", err)
	}

	var saved profileRow
	if err := r.db.GetContext(ctx, &saved, query, args...); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile %s: %w", p.UserID, err)
	}
	return saved.toDomain(), nil
}

func (r *ProfileRepository) IncrementFreePredictionsUsed(ctx context.Context, userID string) error {
	query, args, err := qb.Update("profiles").
		SetExpr("free_predictions_used", "free_predictions_used + 1").
		SetExpr("updated_at", "now()").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build profile increment: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment free predictions for %s: %w", userID, err)
	}
	return nil
}
