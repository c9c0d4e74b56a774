package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

var rootCmd = &cobra.Command{
	Use:   "cdnguard",
	Short: "CDN failover watchdog for Cloudflare-fronted domains",
	Long: `cdnguard probes Cloudflare-fronted domains, tells CDN-edge failures
apart from origin failures, and flips the per-record proxied flag so traffic
routes around a failing edge. The pre-change flag is saved once per domain
and can be restored at any time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Structured logs go to stderr until the configured log file takes
		// over in loadApp; command output stays on stdout.
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(installServiceCmd)
	rootCmd.AddCommand(versionCmd)
}

// exitCode maps typed errors to the documented process exit codes: 2 for
// configuration or dependency problems, 3 for provider API failures, 4 for
// lookups that found nothing, 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrConfigMissing), errors.Is(err, domain.ErrDependencyMissing):
		return 2
	case domain.IsAPIError(err):
		return 3
	case errors.Is(err, domain.ErrZoneNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrNoSelection):
		return 4
	default:
		return 1
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
