// Package main is the entry point for the quote-calculator server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quote-calculator/internal/bootstrap"
	"quote-calculator/internal/config"
	"quote-calculator/internal/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Sync()

	ctx, cancel := bootstrap.WithSignals(context.Background())
	defer cancel()

	app, err := bootstrap.Build(cfg, logging.Logger)
	if err != nil {
		return err
	}
	if err := app.Run(ctx); err != nil {
		return err
	}
	logging.Info("server stopped")
	return nil
}
