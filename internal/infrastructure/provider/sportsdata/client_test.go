package sportsdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewClient returned %v", err)
	}
	return client, server
}

func TestGamesByWeek(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`[
			{"Season":2025,"SeasonType":2,"Week":4,"HomeTeam":"KC","AwayTeam":"BUF",
			 "HomeScore":27,"AwayScore":20,"Status":"Final","DateTime":"2025-09-28T13:00:00"}
		]`))
	}))

	games, err := client.GamesByWeek(context.Background(), usecase.ProviderScope{
		Year: 2025, Week: 4, SeasonType: game.SeasonTypeReg,
	})
	if err != nil {
		t.Fatalf("GamesByWeek returned %v", err)
	}

	if gotPath != "/scores/json/ScoresByWeek/2025REG/4" {
		t.Fatalf("request path = %s", gotPath)
	}
	if gotKey != "secret-key" {
		t.Fatalf("api key not sent")
	}

	if len(games) != 1 {
		t.Fatalf("games = %d, want 1", len(games))
	}
	g := games[0]
	if g.HomeTeamKey != "KC" || g.AwayTeamKey != "BUF" {
		t.Fatalf("teams = %s vs %s", g.HomeTeamKey, g.AwayTeamKey)
	}
	if g.SeasonType != game.SeasonTypeReg {
		t.Fatalf("season type = %s", g.SeasonType)
	}
	if g.HomeScore == nil || *g.HomeScore != 27 {
		t.Fatalf("home score = %v", g.HomeScore)
	}
	if g.KickoffTime == nil {
		t.Fatalf("kickoff not parsed")
	}
}

func TestTeamSeasonStatsPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"Team":"PHI","Season":2024,"Games":17,"PointsFor":459}]`))
	}))

	stats, err := client.TeamSeasonStats(context.Background(), 2024, game.SeasonTypePost)
	if err != nil {
		t.Fatalf("TeamSeasonStats returned %v", err)
	}
	if gotPath != "/scores/json/TeamSeasonStats/2024POST" {
		t.Fatalf("request path = %s", gotPath)
	}
	if len(stats) != 1 || stats[0].TeamKey != "PHI" || stats[0].PointsFor != 459 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestCurrentScope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "CurrentSeason"):
			_, _ = w.Write([]byte(`2025`))
		case strings.HasSuffix(r.URL.Path, "CurrentWeek"):
			_, _ = w.Write([]byte(`7`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	scope, err := client.CurrentScope(context.Background())
	if err != nil {
		t.Fatalf("CurrentScope returned %v", err)
	}
	if scope.Year != 2025 || scope.Week != 7 || scope.SeasonType != game.SeasonTypeReg {
		t.Fatalf("scope = %+v", scope)
	}
}

func TestRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.GamesByWeek(context.Background(), usecase.ProviderScope{Year: 2025, Week: 1, SeasonType: game.SeasonTypeReg})
	if err != nil {
		t.Fatalf("GamesByWeek returned %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestTerminalStatusNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GamesByWeek(context.Background(), usecase.ProviderScope{Year: 2025, Week: 1, SeasonType: game.SeasonTypeReg})
	if !errors.Is(err, usecase.ErrUpstreamFetch) {
		t.Fatalf("err = %v, want ErrUpstreamFetch", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestRedactKey(t *testing.T) {
	t.Parallel()

	redacted := redactKey("https://example.test/scores?key=abc123&week=1")
	if strings.Contains(redacted, "abc123") {
		t.Fatalf("key leaked: %s", redacted)
	}
	if !strings.Contains(redacted, "key=REDACTED") {
		t.Fatalf("redaction marker missing: %s", redacted)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatalf("NewClient accepted empty api key")
	}
}
