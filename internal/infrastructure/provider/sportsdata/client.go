// Package sportsdata is the HTTP client for the SportsData.io NFL scores API.
package sportsdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
	"github.com/gridironhq/gridiron/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.sportsdata.io/v3/nfl"
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
	maxResponseBytes  = 6 << 20
)

// errTransient marks failures worth retrying: transport errors, 429 and 5xx.
var errTransient = crerr.New("sportsdata transient failure")

var keyPattern = regexp.MustCompile(`key=[^&\s"']+`)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     *resilience.SingleFlight
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sportsdata api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		logger:     cfg.Logger,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		flight:     resilience.NewSingleFlight(),
	}, nil
}

// CurrentScope reads the provider's notion of the season and week in play.
// The scores API has no current-season-type endpoint, so the scope defaults
// to the regular season.
func (c *Client) CurrentScope(ctx context.Context) (usecase.ProviderScope, error) {
	var season int
	if err := c.doJSON(ctx, "/scores/json/CurrentSeason", &season); err != nil {
		return usecase.ProviderScope{}, err
	}
	var week int
	if err := c.doJSON(ctx, "/scores/json/CurrentWeek", &week); err != nil {
		return usecase.ProviderScope{}, err
	}
	if week <= 0 {
		week = 1
	}
	return usecase.ProviderScope{Year: season, Week: week, SeasonType: game.SeasonTypeReg}, nil
}

func (c *Client) GamesByWeek(ctx context.Context, scope usecase.ProviderScope) ([]usecase.ProviderGame, error) {
	path := fmt.Sprintf("/scores/json/ScoresByWeek/%d%s/%d", scope.Year, seasonSuffix(scope.SeasonType), scope.Week)

	var rows []scoreRow
	if err := c.doJSON(ctx, path, &rows); err != nil {
		return nil, err
	}

	games := make([]usecase.ProviderGame, 0, len(rows))
	for _, row := range rows {
		games = append(games, usecase.ProviderGame{
			Year:        row.Season,
			Week:        row.Week,
			SeasonType:  game.MapSeasonType(row.SeasonType),
			HomeTeamKey: row.HomeTeam,
			AwayTeamKey: row.AwayTeam,
			KickoffTime: parseKickoff(row.DateTime),
			RawStatus:   row.Status,
			HomeScore:   row.HomeScore,
			AwayScore:   row.AwayScore,
		})
	}
	return games, nil
}

func (c *Client) TeamSeasonStats(ctx context.Context, year int, seasonType game.SeasonType) ([]usecase.ProviderTeamSeasonStats, error) {
	path := fmt.Sprintf("/scores/json/TeamSeasonStats/%d%s", year, seasonSuffix(seasonType))

	var rows []teamSeasonStatsRow
	if err := c.doJSON(ctx, path, &rows); err != nil {
		return nil, err
	}

	stats := make([]usecase.ProviderTeamSeasonStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, usecase.ProviderTeamSeasonStats{
			TeamKey: row.Team,
			Year:    row.Season,
			Games:   row.Games,

			PointsFor:            row.PointsFor,
			TotalYards:           row.TotalYards,
			PassingYards:         row.PassingYards,
			RushingYards:         row.RushingYards,
			RedZoneAttempts:      row.RedZoneAttempts,
			RedZoneConversions:   row.RedZoneConversions,
			ThirdDownAttempts:    row.ThirdDownAttempts,
			ThirdDownConversions: row.ThirdDownConversions,
			Turnovers:            row.Turnovers,
			TimeOfPossessionMin:  row.TimeOfPossessionMinutes,
			TimeOfPossessionSec:  row.TimeOfPossessionSeconds,

			OpponentPointsFor:            row.OpponentPointsFor,
			OpponentTotalYards:           row.OpponentTotalYards,
			OpponentPassingYards:         row.OpponentPassingYards,
			OpponentRushingYards:         row.OpponentRushingYards,
			OpponentRedZoneAttempts:      row.OpponentRedZoneAttempts,
			OpponentRedZoneConversions:   row.OpponentRedZoneConversions,
			OpponentThirdDownAttempts:    row.OpponentThirdDownAttempts,
			OpponentThirdDownConversions: row.OpponentThirdDownConversions,
			OpponentTurnovers:            row.OpponentTurnovers,

			Sacks:                row.Sacks,
			TurnoverDifferential: row.TurnoverDifferential,
			PenaltyYards:         row.PenaltyYards,
		})
	}
	return stats, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err)
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	fullURL := c.baseURL + path + "?" + query.Encode()

	raw, err, _ := c.flight.Do(path, func() (any, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		c.breaker.RecordFailure()
		return err
	}
	c.breaker.RecordSuccess()

	body, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", raw)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
		}

		body, err := c.sendOnce(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !errors.Is(err, errTransient) {
			return nil, err
		}
		c.logger.WarnContext(ctx, "sportsdata request failed",
			"url", redactKey(fullURL), "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("%w: %s", usecase.ErrUpstreamFetch, redactKey(lastErr.Error()))
}

func (c *Client) sendOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errTransient, redactKey(err.Error()))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %s", errTransient, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	if isRetryableStatus(resp.StatusCode) {
		return nil, fmt.Errorf("%w: status %d", errTransient, resp.StatusCode)
	}
	return nil, fmt.Errorf("%w: status %d", usecase.ErrUpstreamFetch, resp.StatusCode)
}

func sleepBackoff(ctx context.Context, attempt int) error {
	timer := time.NewTimer(time.Duration(attempt) * time.Second)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func seasonSuffix(seasonType game.SeasonType) string {
	switch seasonType {
	case game.SeasonTypePre, game.SeasonTypePost:
		return string(seasonType)
	default:
		return string(game.SeasonTypeReg)
	}
}

var kickoffLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func parseKickoff(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range kickoffLayouts {
		if ts, err := time.Parse(layout, *raw); err == nil {
			ts = ts.UTC()
			return &ts
		}
	}
	return nil
}

func redactKey(s string) string {
	return keyPattern.ReplaceAllString(s, "key=REDACTED")
}
