package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridironhq/gridiron/internal/domain/prediction"
	"github.com/gridironhq/gridiron/internal/domain/profile"
	"github.com/gridironhq/gridiron/internal/domain/user"
	"github.com/gridironhq/gridiron/internal/platform/logging"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

const premiumPlan = "premium"

type ProfileService struct {
	profiles    profile.Repository
	predictions prediction.Repository
	logger      *logging.Logger
}

func NewProfileService(profiles profile.Repository, predictions prediction.Repository, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{profiles: profiles, predictions: predictions, logger: logger}
}

// EnsureProfile creates the caller's quota row on first login. Safe to call
// on every login.
func (s *ProfileService) EnsureProfile(ctx context.Context, principal user.Principal) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.EnsureProfile")
	defer span.End()

	if _, err := uuid.Parse(principal.UserID); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: user id must be a uuid", ErrInvalidInput)
	}

	created, err := s.profiles.Upsert(ctx, profile.Profile{
		UserID:    principal.UserID,
		Email:     principal.Email,
		IsPremium: principal.Plan == premiumPlan,
	})
	if err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return created, nil
}

func (s *ProfileService) History(ctx context.Context, userID string, limit int) ([]prediction.HistoryItem, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.History")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	items, err := s.predictions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

func (s *ProfileService) Metrics(ctx context.Context, userID string) (prediction.Metrics, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.Metrics")
	defer span.End()

	if userID == "" {
		return prediction.Metrics{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	metrics, err := s.predictions.MetricsByUser(ctx, userID)
	if err != nil {
		return prediction.Metrics{}, fmt.Errorf("load prediction metrics: %w", err)
	}
	return metrics, nil
}
