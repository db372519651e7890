package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thebestschool/school_site/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print the effective configuration and validate it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "configuration ok")
		return nil
	},
}

func printConfig(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "addr:                 %s\n", cfg.Addr)
	fmt.Fprintf(w, "gin mode:             %s\n", cfg.GinMode)
	fmt.Fprintf(w, "contact endpoint:     %s\n", orUnset(cfg.ContactEndpoint))
	fmt.Fprintf(w, "enrollment endpoint:  %s\n", orUnset(cfg.EnrollmentEndpoint))
	fmt.Fprintf(w, "allowed hosts:        %v\n", cfg.AllowedHosts)
	fmt.Fprintf(w, "rate limit (per min): %g\n", cfg.RateLimitPerMinute)
	fmt.Fprintf(w, "edit rate limit (per min): %g\n", cfg.EditRateLimitPerMinute)
	fmt.Fprintf(w, "session ttl:          %s\n", cfg.SessionTTL)
	fmt.Fprintf(w, "cleanup interval:     %s\n", cfg.CleanupInterval)
	fmt.Fprintf(w, "turnstile:            %t\n", cfg.TurnstileSecret != "")
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
