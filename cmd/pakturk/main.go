package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/syed-arham-coder/Pak-Turk-sub001/config"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting dashboard backend",
		"auth_mode", cfg.Auth.Mode,
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"preference_backend", cfg.Locale.PreferenceBackend,
		"is_dev", cfg.IsDev)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	contexts, err := bootstrap.NewContexts(&bootstrap.ContextDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if err = bootstrap.Warmup(ctx, contexts, &cfg, logger); err != nil {
		return fmt.Errorf("warm up contexts: %w", err)
	}

	return serve(ctx, contexts, &cfg, logger)
}

// serve keeps the contexts alive until shutdown, logging state transitions
// and refreshing exchange rates on the configured interval.
func serve(ctx context.Context, contexts bootstrap.Contexts, cfg *config.AppConfig, logger *slog.Logger) error {
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Locale.RateURL != "" {
		stopRefresher := bootstrap.StartRateRefresher(runCtx, contexts.Localization, cfg.Locale.RateRefreshInterval, logger)
		defer stopRefresher()
	}

	sessions, cancelSessions := contexts.Session.Subscribe()
	defer cancelSessions()
	locales, cancelLocales := contexts.Localization.Subscribe()
	defer cancelLocales()

	logger.InfoContext(runCtx, "dashboard backend ready")

	for {
		select {
		case snap := <-sessions:
			logger.InfoContext(runCtx, "session state changed", "phase", snap.Phase)
		case st := <-locales:
			logger.InfoContext(runCtx, "locale changed", "language", st.Language, "currency", st.Currency)
		case <-runCtx.Done():
			logger.Info("shutting down")
			return nil
		}
	}
}

// initInfrastructure connects shared dependencies used by the contexts.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	db, err := bootstrap.ConnectDB(bootstrap.InfraConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.InfraConfig{
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
			return nil, nil, fmt.Errorf("connect redis: %w", errors.Join(err, fmt.Errorf("close database: %w", cerr)))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}
