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

var restoreCmd = &cobra.Command{
	Use:   "restore [domain...]",
	Short: "Put the proxied flag back to its saved baseline",
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
		return runRestore(ctx, a.toggler, domains, os.Stdout)
	},
}

func runRestore(ctx context.Context, toggler ports.ToggleService, domains []string, out io.Writer) error {
	var firstErr error
	for _, name := range domains {
		res, err := toggler.Restore(ctx, name)
		if err != nil {
			fmt.Fprintf(out, "%-40s ERROR: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		switch {
		case res.RecordID == "":
			fmt.Fprintf(out, "%-40s no saved baseline\n", name)
		case res.Outcome == domain.OutcomeNoop:
			fmt.Fprintf(out, "%-40s already at baseline (%s)\n", name, proxiedWord(res.To))
		default:
			fmt.Fprintf(out, "%-40s restored to %s\n", name, proxiedWord(res.To))
		}
	}
	return firstErr
}
