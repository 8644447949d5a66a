package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/bootstrap"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/devseed"
)

func runMigrate(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.InfraConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer closeQuietly(cmdCtx, db.Close, "close database")

	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

func runDBSeed(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.InfraConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer closeQuietly(cmdCtx, db.Close, "close database")

	if err = bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
		return err
	}

	return devseed.Run(ctx, db, cmdCtx.Logger)
}

func runPing(cmdCtx *commandContext, _ []string) error {
	var errs []error

	db, err := bootstrap.ConnectDB(bootstrap.InfraConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("postgres: %w", err))
	} else {
		closeQuietly(cmdCtx, db.Close, "close database")
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.InfraConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("redis: %w", err))
	} else {
		closeQuietly(cmdCtx, redisClient.Close, "close redis")
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	cmdCtx.Logger.InfoContext(cmdCtx.Ctx, "infrastructure reachable")
	return nil
}

func closeQuietly(cmdCtx *commandContext, closeFn func() error, what string) {
	if err := closeFn(); err != nil {
		cmdCtx.Logger.ErrorContext(cmdCtx.Ctx, what+" failed", "error", err)
	}
}
