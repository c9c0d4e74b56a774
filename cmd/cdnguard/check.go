package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/core/ports"
)

var checkCmd = &cobra.Command{
	Use:   "check [domain...]",
	Short: "Probe domains once and report their health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		domains, err := resolveDomains(ctx, a.cfg, a.toggler, args, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		return runCheck(ctx, a.prober, domains, os.Stdout)
	},
}

// runCheck probes each domain and prints one line per result. An unhealthy
// domain is a finding, not a command failure, so the error is always nil.
func runCheck(ctx context.Context, prober ports.Prober, domains []string, out io.Writer) error {
	for _, name := range domains {
		res := prober.Probe(ctx, name)
		category := domain.Classify(res)
		if res.Err != nil {
			fmt.Fprintf(out, "%-40s %-12s %v\n", name, category, res.Err)
			continue
		}
		fmt.Fprintf(out, "%-40s %-12s status=%d latency=%s\n", name, category, res.StatusCode, res.Latency.Round(time.Millisecond))
	}
	return nil
}
