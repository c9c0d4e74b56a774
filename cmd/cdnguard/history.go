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

var historyCmd = &cobra.Command{
	Use:   "history [domain]",
	Short: "List recorded toggle events, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if !a.hasAudit {
			return fmt.Errorf("%w: CDNGUARD_AUDIT_DSN", domain.ErrConfigMissing)
		}
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		return runHistory(ctx, a.audit, filter, os.Stdout)
	},
}

func runHistory(ctx context.Context, sink ports.AuditSink, filter string, out io.Writer) error {
	events, err := sink.ListEvents(ctx, filter)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(out, "no toggle events recorded")
		return nil
	}
	for _, ev := range events {
		fmt.Fprintf(out, "%s  %-40s %s -> %s  %s\n",
			ev.CreatedAt.UTC().Format(time.RFC3339),
			ev.Domain, proxiedWord(ev.FromProxied), proxiedWord(ev.ToProxied), ev.Reason)
	}
	return nil
}
