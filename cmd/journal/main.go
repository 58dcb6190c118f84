package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/storage"
)

func main() {
	configDir := pflag.String("config", "./configs", "directory containing config.yml")
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	// Load application configuration
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := storage.Open(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	j := journal.New(store, cfg.Journal, log)

	// Cancel in-flight storage work on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runCommand(ctx, j, pflag.Args(), os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			log.Error("Command failed", zap.Error(err))
		}
		log.Sync()
		os.Exit(1)
	}
}
