package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type Globals struct {
	Config string `help:"Optional YAML config file; environment variables take precedence." env:"CONFIG_FILE" placeholder:"PATH"`
}

var cli struct {
	Globals

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API (default)."`
	Migrate MigrateCmd `cmd:"" help:"Create or update the database schema."`
	Seed    SeedCmd    `cmd:"" help:"Load demo habits into an empty store."`
}

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	kctx := kong.Parse(&cli,
		kong.Name("habit-api"),
		kong.Description("Habit tracking API with streak and completion statistics."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)

	if err := kctx.Run(&cli.Globals); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}
