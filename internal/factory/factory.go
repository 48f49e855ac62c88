package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/calebmcg/deadeye/internal/dependencies/clock"
	"github.com/calebmcg/deadeye/internal/dependencies/idgen"
	"github.com/calebmcg/deadeye/internal/metrics"
	"github.com/calebmcg/deadeye/internal/services/auth"
	"github.com/calebmcg/deadeye/internal/services/leaderboard"
	"github.com/calebmcg/deadeye/internal/services/scoring"
	"github.com/calebmcg/deadeye/internal/services/session"
	"github.com/calebmcg/deadeye/internal/storage"
	"github.com/calebmcg/deadeye/internal/storage/memory"
	redisstorage "github.com/calebmcg/deadeye/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock clock.Clock
	IDGen idgen.Generator

	// Observability
	Metrics *metrics.Metrics

	// Services
	ScoringService     *scoring.Service
	SessionService     *session.Service
	LeaderboardService *leaderboard.Service
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service
	// The secret must be set; TokenTTL defaults if zero
	AuthConfig auth.Config
	// LeaderboardOverfetch is the candidate multiplier for leaderboard reads
	// If zero, defaults to leaderboard.DefaultOverfetchFactor
	LeaderboardOverfetch int
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	if len(cfg.AuthConfig.Secret) == 0 {
		return nil, errors.New("AuthConfig.Secret must be set")
	}

	clk := clock.New()
	ids := idgen.New()

	return newWithDependencies(store, clk, ids, cfg.AuthConfig, cfg.LeaderboardOverfetch, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	clk clock.Clock,
	ids idgen.Generator,
	authCfg auth.Config,
	overfetch int,
	logger *slog.Logger,
) *App {
	if overfetch <= 0 {
		overfetch = leaderboard.DefaultOverfetchFactor
	}

	m := metrics.New()

	scoringService := scoring.New()
	sessionService := session.New(store, store, store, scoringService, clk, ids, m, logger)
	leaderboardService := leaderboard.New(store, store, overfetch, logger)
	authService := auth.New(store, clk, ids, authCfg, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		IDGen:              ids,
		Metrics:            m,
		ScoringService:     scoringService,
		SessionService:     sessionService,
		LeaderboardService: leaderboardService,
		AuthService:        authService,
	}
}
