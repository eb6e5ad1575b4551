package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"quote-calculator/adapters/antiforgery"
)

var nonceSession string

// nonceCmd issues a token for manual testing against a running server
var nonceCmd = &cobra.Command{
	Use:   "nonce",
	Short: "Issue an anti-forgery token for a session",
	Long: `Issue a token the server will accept for the given session cookie value.
Requires antiforgery.secret to match the server's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		if cfg.AntiForgery.Secret == "" {
			return errors.New("antiforgery.secret is not configured")
		}
		if nonceSession == "" {
			nonceSession = uuid.NewString()
		}

		issuer := antiforgery.NewIssuer(cfg.AntiForgery.Secret, cfg.AntiForgery.LifetimeDuration())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "session: %s\n", nonceSession)
		fmt.Fprintf(out, "nonce:   %s\n", issuer.Issue(nonceSession))
		return nil
	},
}

func init() {
	nonceCmd.Flags().StringVar(&nonceSession, "session", "", "session cookie value (random when empty)")
}
