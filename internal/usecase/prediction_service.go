package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/gridironhq/gridiron/internal/domain/coefficients"
	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/prediction"
	"github.com/gridironhq/gridiron/internal/domain/profile"
	"github.com/gridironhq/gridiron/internal/domain/teamstats"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/ratelimit"
)

const (
	seasonYearMin     = 2020
	seasonYearMax     = 2030
	defaultSeasonYear = 2025
)

type PredictionService struct {
	games        game.Repository
	stats        teamstats.Repository
	coefficients coefficients.Repository
	predictions  prediction.Repository
	profiles     profile.Repository
	limiter      *ratelimit.Limiter
	freeLimit    int
	logger       *logging.Logger
}

func NewPredictionService(
	games game.Repository,
	stats teamstats.Repository,
	coeffs coefficients.Repository,
	predictions prediction.Repository,
	profiles profile.Repository,
	limiter *ratelimit.Limiter,
	freeLimit int,
	logger *logging.Logger,
) *PredictionService {
	if freeLimit <= 0 {
		freeLimit = 3
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		games:        games,
		stats:        stats,
		coefficients: coeffs,
		predictions:  predictions,
		profiles:     profiles,
		limiter:      limiter,
		freeLimit:    freeLimit,
		logger:       logger,
	}
}

type PredictInput struct {
	UserID          string
	HomeTeamID      string
	AwayTeamID      string
	SeasonYear      int
	SeasonType      game.SeasonType
	ForceProjection bool
}

type PredictOutput struct {
	Mode               prediction.Mode
	PredictionID       string
	ModelVersion       string
	Week               *int
	PredictedHomeScore float64
	PredictedAwayScore float64
	ActualHomeScore    *int
	ActualAwayScore    *int
}

// Predict answers one matchup request. Finished regular-season matchups are
// answered from the recorded result; everything else is scored by the model.
func (s *PredictionService) Predict(ctx context.Context, input PredictInput) (PredictOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.Predict")
	defer span.End()

	input = applyPredictDefaults(input)
	if err := validatePredictInput(input); err != nil {
		return PredictOutput{}, err
	}

	if s.limiter != nil && !s.limiter.Allow(input.UserID) {
		return PredictOutput{}, fmt.Errorf("%w: user %s", ErrRateLimited, input.UserID)
	}

	prof, found, err := s.profiles.GetByUserID(ctx, input.UserID)
	if err != nil {
		return PredictOutput{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return PredictOutput{}, fmt.Errorf("%w: no profile for user %s", ErrQuotaExceeded, input.UserID)
	}
	if !prof.CanConsume(s.freeLimit) {
		return PredictOutput{}, fmt.Errorf("%w: free allowance of %d used", ErrQuotaExceeded, s.freeLimit)
	}

	if input.SeasonType == game.SeasonTypeReg && !input.ForceProjection {
		output, answered, err := s.answerFromHistory(ctx, input)
		if err != nil {
			return PredictOutput{}, err
		}
		if answered {
			return output, nil
		}
	}

	output, err := s.projectMatchup(ctx, input)
	if err != nil {
		return PredictOutput{}, err
	}

	if !prof.IsPremium {
		if err := s.profiles.IncrementFreePredictionsUsed(ctx, input.UserID); err != nil {
			// Quota drift is tolerable; failing the prediction is not.
			s.logger.WarnContext(ctx, "increment free predictions failed",
				"user_id", input.UserID, "error", err)
		}
	}

	return output, nil
}

func (s *PredictionService) answerFromHistory(ctx context.Context, input PredictInput) (PredictOutput, bool, error) {
	g, found, err := s.games.FindFinal(ctx, input.SeasonYear, input.HomeTeamID, input.AwayTeamID)
	if err != nil {
		return PredictOutput{}, false, fmt.Errorf("find final game: %w", err)
	}
	if !found || g.HomeScore == nil || g.AwayScore == nil {
		return PredictOutput{}, false, nil
	}

	record := prediction.UserPrediction{
		UserID:             input.UserID,
		GameID:             &g.ID,
		HomeTeamID:         input.HomeTeamID,
		AwayTeamID:         input.AwayTeamID,
		SeasonYear:         input.SeasonYear,
		Mode:               prediction.ModeHistorical,
		PredictedHomeScore: float64(*g.HomeScore),
		PredictedAwayScore: float64(*g.AwayScore),
		ActualHomeScore:    g.HomeScore,
		ActualAwayScore:    g.AwayScore,
	}
	predictionID, err := s.predictions.InsertUserPrediction(ctx, record)
	if err != nil {
		return PredictOutput{}, false, fmt.Errorf("insert historical prediction: %w", err)
	}

	week := g.Week
	return PredictOutput{
		Mode:               prediction.ModeHistorical,
		PredictionID:       predictionID,
		Week:               &week,
		PredictedHomeScore: float64(*g.HomeScore),
		PredictedAwayScore: float64(*g.AwayScore),
		ActualHomeScore:    g.HomeScore,
		ActualAwayScore:    g.AwayScore,
	}, true, nil
}

func (s *PredictionService) projectMatchup(ctx context.Context, input PredictInput) (PredictOutput, error) {
	var (
		snapshots  []teamstats.Snapshot
		modelSet   coefficients.Set
		modelFound bool
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		snapshots, err = s.stats.ListLatestByTeams(ctx, input.SeasonYear, []string{input.HomeTeamID, input.AwayTeamID})
		if err != nil {
			return fmt.Errorf("load team snapshots: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		modelSet, modelFound, err = s.coefficients.GetActive(ctx)
		if err != nil {
			return fmt.Errorf("load model coefficients: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return PredictOutput{}, err
	}

	if !modelFound {
		return PredictOutput{}, fmt.Errorf("%w: no active coefficient set", ErrConfiguration)
	}

	byTeam := make(map[string]teamstats.Snapshot, len(snapshots))
	for _, snap := range snapshots {
		byTeam[snap.TeamID] = snap
	}
	home, homeOK := byTeam[input.HomeTeamID]
	away, awayOK := byTeam[input.AwayTeamID]
	if !homeOK || !awayOK {
		return PredictOutput{}, fmt.Errorf("%w: stats missing for one or both teams in %d", ErrInsufficientData, input.SeasonYear)
	}

	features := BuildFeatureVector(modelSet.FeatureNames, home, away)
	homeScore, awayScore, err := ScorePair(modelSet, features)
	if err != nil {
		return PredictOutput{}, err
	}

	record := prediction.UserPrediction{
		UserID:             input.UserID,
		HomeTeamID:         input.HomeTeamID,
		AwayTeamID:         input.AwayTeamID,
		SeasonYear:         input.SeasonYear,
		Mode:               prediction.ModePredicted,
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
	}
	predictionID, err := s.predictions.InsertUserPrediction(ctx, record)
	if err != nil {
		return PredictOutput{}, fmt.Errorf("insert prediction: %w", err)
	}

	audit := prediction.ModelAudit{
		UserPredictionID: predictionID,
		HomeTeamFeatures: home,
		AwayTeamFeatures: away,
		FeatureVector:    features,
		ModelVersion:     modelSet.ModelVersion,
	}
	if err := s.predictions.InsertModelAudit(ctx, audit); err != nil {
		return PredictOutput{}, fmt.Errorf("insert model audit: %w", err)
	}

	return PredictOutput{
		Mode:               prediction.ModePredicted,
		PredictionID:       predictionID,
		ModelVersion:       modelSet.ModelVersion,
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
	}, nil
}

func applyPredictDefaults(input PredictInput) PredictInput {
	if input.SeasonYear == 0 {
		input.SeasonYear = defaultSeasonYear
	}
	if input.SeasonType == "" {
		input.SeasonType = game.SeasonTypeReg
	}
	return input
}

func validatePredictInput(input PredictInput) error {
	if input.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(input.HomeTeamID); err != nil {
		return fmt.Errorf("%w: home team id must be a uuid", ErrInvalidInput)
	}
	if _, err := uuid.Parse(input.AwayTeamID); err != nil {
		return fmt.Errorf("%w: away team id must be a uuid", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return fmt.Errorf("%w: home and away teams must differ", ErrInvalidInput)
	}
	if input.SeasonYear < seasonYearMin || input.SeasonYear > seasonYearMax {
		return fmt.Errorf("%w: season year must be between %d and %d", ErrInvalidInput, seasonYearMin, seasonYearMax)
	}
	if input.SeasonType != game.SeasonTypeReg && input.SeasonType != game.SeasonTypePost {
		return fmt.Errorf("%w: season type must be REG or POST", ErrInvalidInput)
	}
	return nil
}
