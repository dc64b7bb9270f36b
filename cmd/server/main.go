package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hyunw/bboard/internal/api"
	"github.com/hyunw/bboard/internal/factory"
	"github.com/hyunw/bboard/internal/services/auth"
	redisstorage "github.com/hyunw/bboard/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Secret:      os.Getenv("BBOARD_SECRET"),
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		AuthConfig:  authConfigFromEnv(logger),
	}
	if cfg.Secret == "" {
		logger.Error("BBOARD_SECRET is required")
		os.Exit(1)
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		BoardService: app.BoardService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if portStr := os.Getenv("BBOARD_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid BBOARD_PORT", slog.String("value", portStr))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// authConfigFromEnv reads auth settings from the environment
func authConfigFromEnv(logger *slog.Logger) auth.Config {
	cfg := auth.DefaultConfig()

	if ttlStr := os.Getenv("BBOARD_TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			logger.Warn("invalid BBOARD_TOKEN_TTL, using default", slog.String("value", ttlStr))
		} else {
			cfg.TokenTTL = ttl
		}
	}

	switch os.Getenv("BBOARD_IP_LIMIT") {
	case "1", "true", "yes":
		cfg.LimitByIP = true
	}

	return cfg
}
