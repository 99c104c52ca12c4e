package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jaekwang-park/habit-api/internal/config"
	"github.com/jaekwang-park/habit-api/internal/logging"
	"github.com/jaekwang-park/habit-api/internal/repository"
)

// app holds what every command needs: config, logger and an open store.
type app struct {
	cfg         config.Config
	logger      *slog.Logger
	db          *sql.DB
	dialect     repository.Dialect
	habits      repository.HabitRepository
	completions repository.CompletionRepository

	logCloser io.Closer
}

func newApp(g *Globals) (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(os.Stdout, logging.Options{
		Level: cfg.ParseLogLevel(),
		File:  cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"storage", cfg.StorageDriver,
		"log_level", cfg.LogLevel,
		"stats_concurrency", cfg.StatsConcurrency,
	)

	a := &app{
		cfg:       cfg,
		logger:    logger,
		dialect:   repository.Dialect(cfg.StorageDriver),
		logCloser: logCloser,
	}

	switch a.dialect {
	case repository.SQLite:
		a.db, err = repository.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			logCloser.Close()
			return nil, err
		}
		a.habits = repository.NewSQLiteHabit(a.db)
		a.completions = repository.NewSQLiteCompletion(a.db)
		logger.Info("database connected", "driver", "sqlite", "path", cfg.SQLitePath)
	default:
		a.db, err = repository.NewDB(cfg.DB.DSN())
		if err != nil {
			logCloser.Close()
			return nil, err
		}
		a.habits = repository.NewPostgresHabit(a.db)
		a.completions = repository.NewPostgresCompletion(a.db)
		logger.Info("database connected", "driver", "postgres", "host", cfg.DB.Host)
	}

	return a, nil
}

func (a *app) migrate(ctx context.Context) error {
	if err := repository.Migrate(ctx, a.db, a.dialect); err != nil {
		return err
	}
	a.logger.Info("schema up to date", "dialect", a.dialect)
	return nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
	a.logCloser.Close()
}
