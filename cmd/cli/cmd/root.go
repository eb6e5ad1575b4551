// Package cmd provides the CLI commands for quote-calculator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quote-calculator/internal/config"
	"quote-calculator/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quote-calculator",
	Short: "Price and relay service quote requests",
	Long: `quote-calculator serves the quote form backend and prices requests
for web development, graphic design and content writing.

Examples:
  quote-calculator serve --config config/local.hcl
  quote-calculator quote --service web --pages 5 --timeline 2 --ecommerce yes
  quote-calculator managers`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("CONFIG_PATH"), "config file (.hcl, .yaml or .json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(managersCmd)
	rootCmd.AddCommand(nonceCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	cfg := logging.DefaultConfig()
	if verbose {
		cfg.Level = "debug"
	}
	if err := logging.Initialize(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadConfig reads --config when set. Without a file the defaults apply and
// only the server command insists on a valid relay.
func loadConfig(strict bool) (*config.Config, error) {
	if cfgFile == "" && !strict {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quote-calculator version %s\n", version)
	},
}
