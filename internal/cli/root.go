// Package cli implements the SugarLog command-line interface using Cobra.
// Each subcommand maps to one tracker operation (log, complete, status, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sugarlog-app/sugarlog/internal/daemon"
)

var rootCmd = &cobra.Command{
	Use:   "sugarlog",
	Short: "SugarLog — Track sugar, build streaks",
	Long: `SugarLog is a personal sugar habit tracker.
Log what you ate, get an insight and a suggested action, and keep your
streak alive. All data stays on your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cliVersion = "dev"

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	cliVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveUser picks the --user flag value, falling back to the configured
// default local user.
func resolveUser(flagValue string, cfg daemon.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.User.ID != "" {
		return cfg.User.ID
	}
	return "local"
}
