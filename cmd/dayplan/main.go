package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/adapter/cli/plan"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
)

func main() {
	// Setup logger
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Update logger based on config
	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	if cfg.IsDevelopment() {
		logCfg.AddSource = true
	}
	logger = observability.NewLogger(logCfg)
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	cli.SetApp(cli.NewApp(cfg, logger, nil))

	// Register commands
	cli.AddCommand(plan.Cmd)

	// Execute CLI
	cli.ExecuteContext(ctx)
}
