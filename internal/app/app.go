package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gridironhq/gridiron/internal/config"
	"github.com/gridironhq/gridiron/internal/infrastructure/account/passport"
	"github.com/gridironhq/gridiron/internal/infrastructure/provider/sportsdata"
	"github.com/gridironhq/gridiron/internal/infrastructure/repository/postgres"
	"github.com/gridironhq/gridiron/internal/interfaces/httpapi"
	"github.com/gridironhq/gridiron/internal/platform/cache"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/ratelimit"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
	"github.com/gridironhq/gridiron/internal/usecase"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server *http.Server
	db     *sqlx.DB
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	teamRepo := postgres.NewTeamRepository(db)
	gameRepo := postgres.NewGameRepository(db)
	statsRepo := postgres.NewTeamStatsRepository(db)
	coeffRepo := postgres.NewCoefficientsRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	provider, err := sportsdata.NewClient(sportsdata.ClientConfig{
		BaseURL:    cfg.SportsDataBaseURL,
		APIKey:     cfg.SportsDataAPIKey,
		Timeout:    cfg.SportsDataTimeout,
		MaxRetries: cfg.SportsDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.SportsDataCircuitFailureCount,
			OpenTimeout:      cfg.SportsDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportsDataCircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sportsdata client: %w", err)
	}

	verifier, err := passport.NewClient(passport.ClientConfig{
		BaseURL:      cfg.PassportBaseURL,
		ServiceToken: cfg.PassportServiceToken,
		Timeout:      cfg.PassportTimeout,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.PassportCircuitFailureCount,
			OpenTimeout:      cfg.PassportCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PassportCircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create passport client: %w", err)
	}

	limiter := ratelimit.NewLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	store := cache.NewStore(cfg.CacheTTL)

	predictionSvc := usecase.NewPredictionService(
		gameRepo, statsRepo, coeffRepo, predictionRepo, profileRepo,
		limiter, cfg.FreePredictionLimit, logger,
	)
	syncSvc := usecase.NewScoreSyncService(provider, teamRepo, gameRepo, statsRepo, nil, logger)
	profileSvc := usecase.NewProfileService(profileRepo, predictionRepo, logger)
	teamSvc := usecase.NewTeamService(teamRepo, gameRepo, statsRepo, store, logger)

	handler := httpapi.NewHandler(predictionSvc, syncSvc, profileSvc, teamSvc, logger)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:          handler,
		Verifier:         verifier,
		InternalJobToken: cfg.InternalJobToken,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		Logger:           logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db, logger: logger}, nil
}

func (a *App) Close(ctx context.Context) error {
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQueryFormatter),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	return db, nil
}
