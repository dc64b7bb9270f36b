package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/hyunw/bboard/internal/dependencies/clock"
	"github.com/hyunw/bboard/internal/services/auth"
	"github.com/hyunw/bboard/internal/services/board"
	"github.com/hyunw/bboard/internal/storage"
	"github.com/hyunw/bboard/internal/storage/memory"
	redisstorage "github.com/hyunw/bboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService  *auth.Service
	BoardService *board.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Secret is the server-wide token signing key (required).
	// Injected from the environment at startup; never hard-coded.
	Secret string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
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
	if cfg.Secret == "" {
		return nil, errors.New("signing secret is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
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

	clk := clock.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenTTL == 0 {
		authCfg.TokenTTL = auth.DefaultConfig().TokenTTL
	}

	return newWithDependencies(store, clk, []byte(cfg.Secret), authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, secret []byte, authCfg auth.Config, logger *slog.Logger) *App {
	issuer := auth.NewTokenIssuer(secret, authCfg.TokenTTL, clk)
	authService := auth.New(store, issuer, clk, authCfg, logger)
	boardService := board.New(store, clk, logger)

	return &App{
		Storage:      store,
		Clock:        clk,
		AuthService:  authService,
		BoardService: boardService,
	}
}
