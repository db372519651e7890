package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "school_site",
	Short: "The Best School website",
	Long: `Serves The Best School landing page and relays its contact and
enrollment forms to the configured form-relay endpoints.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, checkCmd, versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
