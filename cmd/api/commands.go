package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	habithttp "github.com/jaekwang-park/habit-api/internal/http"
	"github.com/jaekwang-park/habit-api/internal/seed"
	"github.com/jaekwang-park/habit-api/internal/service"
)

type ServeCmd struct{}

func (c *ServeCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	if a.cfg.AutoMigrate {
		if err := a.migrate(ctx); err != nil {
			return err
		}
	}
	if a.cfg.SeedOnStart {
		if _, err := seed.New(a.habits, a.completions, logger).Run(ctx); err != nil {
			return err
		}
	}

	// Services
	habitSvc := service.NewHabitService(a.habits)
	completionSvc := service.NewCompletionService(a.completions, a.habits)
	statsSvc := service.NewStatsService(a.habits, a.completions, a.cfg.StatsConcurrency)

	// HTTP Server
	srv := habithttp.NewServer(a.cfg.ServerPort, logger, habithttp.Services{
		Habits:      habitSvc,
		Completions: completionSvc,
		Stats:       statsSvc,
		DB:          a.db,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", a.cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.migrate(ctx)
}

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.AppEnv == "prod" {
		return fmt.Errorf("refusing to seed demo data in %s environment", a.cfg.AppEnv)
	}
	if a.cfg.AutoMigrate {
		if err := a.migrate(ctx); err != nil {
			return err
		}
	}

	seeded, err := seed.New(a.habits, a.completions, a.logger).Run(ctx)
	if err != nil {
		return err
	}
	if !seeded {
		a.logger.Info("store already has habits, nothing seeded")
	}
	return nil
}
