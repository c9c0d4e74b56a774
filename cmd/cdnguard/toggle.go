package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/core/ports"
)

var enableCmd = &cobra.Command{
	Use:   "enable [domain...]",
	Short: "Turn the proxied flag on (traffic flows through the CDN)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleRunE(cmd.Context(), args, true, "enabled by operator")
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable [domain...]",
	Short: "Turn the proxied flag off (traffic goes straight to the origin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleRunE(cmd.Context(), args, false, "disabled by operator")
	},
}

func toggleRunE(ctx context.Context, args []string, proxied bool, reason string) error {
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	domains, err := resolveDomains(ctx, a.cfg, a.toggler, args, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	return runToggle(ctx, a.toggler, domains, proxied, reason, os.Stdout)
}

// runToggle applies the desired proxied state to each domain, keeps going
// past per-domain failures, and returns the first error it saw.
func runToggle(ctx context.Context, toggler ports.ToggleService, domains []string, proxied bool, reason string, out io.Writer) error {
	var firstErr error
	for _, name := range domains {
		res, err := toggler.Toggle(ctx, name, proxied, reason)
		if err != nil {
			fmt.Fprintf(out, "%-40s ERROR: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if res.Outcome == domain.OutcomeNoop {
			fmt.Fprintf(out, "%-40s already %s\n", name, proxiedWord(res.To))
			continue
		}
		fmt.Fprintf(out, "%-40s %s -> %s\n", name, proxiedWord(res.From), proxiedWord(res.To))
	}
	return firstErr
}
