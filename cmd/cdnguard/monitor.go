package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdnguard/cdnguard/internal/adapters/api"
	"github.com/cdnguard/cdnguard/internal/core/services"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor [domain...]",
	Short: "Watch domains continuously and react to CDN edge failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		domains, err := resolveDomains(ctx, a.cfg, a.toggler, args, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}

		mon := services.NewMonitor(a.toggler, a.prober, domains,
			a.cfg.CheckInterval, a.cfg.PacingDelay, a.cfg.AutoToggle, a.logger)

		if a.cfg.MetricsAddr != "" {
			srv := startObservationServer(a, mon)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					a.logger.Error("observation server shutdown failed", slog.Any("error", err))
				}
			}()
		}

		mon.Run(ctx)
		return nil
	},
}

// startObservationServer serves /healthz, /status and /metrics while the
// monitor loop runs.
func startObservationServer(a *app, mon *services.Monitor) *http.Server {
	checks := map[string]func(context.Context) error{}
	if p, ok := a.store.(pinger); ok {
		checks["state"] = p.Ping
	}
	if a.hasAudit {
		checks["audit"] = a.audit.Ping
	}

	mux := http.NewServeMux()
	api.NewHandler(mon, checks).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info("observation server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("observation server failed", slog.Any("error", err))
		}
	}()
	return srv
}
