package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quote-calculator/internal/bootstrap"
	"quote-calculator/internal/logging"
)

// managersCmd lists the account managers offered by the form
var managersCmd = &cobra.Command{
	Use:   "managers",
	Short: "List account managers from the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}

		lookup, rdb := bootstrap.NewDirectory(cfg, logging.Logger)
		if rdb != nil {
			defer rdb.Close()
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Directory.TimeoutDuration())
		defer cancel()

		names, err := lookup.ListNames(ctx)
		if err != nil {
			return fmt.Errorf("directory lookup failed: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "%d account managers\n", len(names))
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}
