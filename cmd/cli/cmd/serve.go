package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"quote-calculator/internal/bootstrap"
	"quote-calculator/internal/logging"
)

var serveAddr string

// serveCmd runs the HTTP backend
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quote form backend",
	Long: `Serve the nonce, estimate and submission endpoints until SIGINT or
SIGTERM. Configuration comes from --config and QUOTE_* variables.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http.address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.HTTP.Address = serveAddr
	}
	defer logging.Sync()

	ctx, cancel := bootstrap.WithSignals(context.Background())
	defer cancel()

	app, err := bootstrap.Build(cfg, logging.Logger)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
