package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdnguard/cdnguard/internal/core/ports"
)

var statusCmd = &cobra.Command{
	Use:   "status [domain...]",
	Short: "Show the live proxied flag and any saved baseline per domain",
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
		return runStatus(ctx, a.toggler, domains, os.Stdout)
	},
}

func runStatus(ctx context.Context, toggler ports.ToggleService, domains []string, out io.Writer) error {
	var firstErr error
	for _, name := range domains {
		st, err := toggler.Status(ctx, name)
		if err != nil {
			fmt.Fprintf(out, "%-40s ERROR: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		baseline := "baseline=none"
		if st.Saved != nil {
			baseline = fmt.Sprintf("baseline=%s saved=%s",
				proxiedWord(st.Saved.OriginalProxied),
				time.Unix(st.Saved.SavedAt, 0).UTC().Format(time.RFC3339))
		}
		fmt.Fprintf(out, "%-40s %-9s %-5s %-20s %s\n",
			st.Domain, proxiedWord(st.Record.Proxied), st.Record.Type, st.Record.Content, baseline)
	}
	return firstErr
}
