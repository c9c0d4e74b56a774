package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cdnguard/cdnguard/internal/adapters/audit"
	"github.com/cdnguard/cdnguard/internal/adapters/cloudflare"
	"github.com/cdnguard/cdnguard/internal/adapters/probe"
	"github.com/cdnguard/cdnguard/internal/adapters/state"
	"github.com/cdnguard/cdnguard/internal/config"
	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/core/ports"
	"github.com/cdnguard/cdnguard/internal/core/services"
)

// pinger is satisfied by backends that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// app holds the wired dependency graph shared by all commands.
type app struct {
	cfg      *config.Config
	toggler  ports.ToggleService
	prober   ports.Prober
	store    ports.StateStore
	audit    ports.AuditSink
	hasAudit bool
	logger   *slog.Logger
	closers  []func() error
}

// loadApp reads configuration and wires the adapters behind the core ports.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: slog.Default()}

	if cfg.LogFile != "-" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", cfg.LogFile, err)
		}
		a.closers = append(a.closers, f.Close)
		a.logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(a.logger)
	}

	switch cfg.StateBackend {
	case config.BackendRedis:
		a.store = state.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		a.store = state.NewFileStore(cfg.StateFile)
	}

	a.audit = audit.NopSink{}
	if cfg.AuditDSN != "" {
		db, err := sql.Open("pgx", cfg.AuditDSN)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("opening audit database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		sink := audit.NewPostgresSink(db)
		if err := sink.EnsureSchema(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("%w: audit database: %v", domain.ErrDependencyMissing, err)
		}
		a.audit = sink
		a.hasAudit = true
	}

	provider := cloudflare.NewProvider(cfg.APIToken)
	a.prober = probe.NewHTTPProber(cfg.ProbeTimeout, version)
	a.toggler = services.NewToggleService(provider, a.store, a.audit, cfg.ZoneID, a.logger)

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to close resource", "error", err)
		}
	}
}
