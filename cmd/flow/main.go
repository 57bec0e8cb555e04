package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/flow-cli/flow/internal/cli"
	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/config"
	"github.com/flow-cli/flow/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.Fatal(err)
		os.Exit(1)
	}
}

// runCLI loads the configuration, builds the root command and runs it.
func runCLI(args []string) error {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	env := clix.NewEnv(cfg, logger)
	env.Level = level
	app := cli.New(env)

	args, err = cli.ExpandAliases(args, cfg.Aliases, app.Commands)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Run(ctx, args)
}
