package services

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/core/ports"
	"github.com/cdnguard/cdnguard/internal/infrastructure/metrics"
)

// maxBackoffFactor caps the skip-ahead window for a failing domain at
// sixteen check intervals.
const maxBackoffFactor = 16

type backoffState struct {
	failures  int
	skipUntil time.Time
}

// Monitor drives the probe, classify, toggle cycle for a fixed set of
// domains. One goroutine runs the loop; Snapshot may be called from any.
type Monitor struct {
	toggler    ports.ToggleService
	prober     ports.Prober
	domains    []string
	interval   time.Duration
	pacing     time.Duration
	autoToggle bool
	logger     *slog.Logger

	rounds atomic.Uint64

	mu      sync.RWMutex
	health  map[string]domain.DomainHealth
	backoff map[string]*backoffState
}

func NewMonitor(
	toggler ports.ToggleService,
	prober ports.Prober,
	domains []string,
	interval time.Duration,
	pacing time.Duration,
	autoToggle bool,
	logger *slog.Logger,
) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		toggler:    toggler,
		prober:     prober,
		domains:    domains,
		interval:   interval,
		pacing:     pacing,
		autoToggle: autoToggle,
		logger:     logger,
		health:     make(map[string]domain.DomainHealth),
		backoff:    make(map[string]*backoffState),
	}
}

// Run loops until the context is cancelled. The first round starts
// immediately; later rounds follow the configured interval.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("starting monitor",
		"domains", len(m.domains),
		"interval", m.interval,
		"auto_toggle", m.autoToggle)

	m.RunRound(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("shutting down monitor")
			return
		case <-ticker.C:
			m.RunRound(ctx)
		}
	}
}

// RunRound checks every configured domain once, in order, sleeping the
// pacing delay between neighbours. A failing domain never aborts the round;
// only context cancellation does.
func (m *Monitor) RunRound(ctx context.Context) {
	m.rounds.Add(1)
	for i, name := range m.domains {
		if i > 0 && !sleepCtx(ctx, m.pacing) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		m.checkDomain(ctx, name)
	}
	metrics.MonitorRounds.Inc()
}

// Snapshot returns the last observed health of every domain, in watch order.
// Domains not yet probed are omitted.
func (m *Monitor) Snapshot() domain.MonitorSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := domain.MonitorSnapshot{Rounds: m.rounds.Load()}
	for _, name := range m.domains {
		if h, ok := m.health[name]; ok {
			snap.Domains = append(snap.Domains, h)
		}
	}
	return snap
}

func (m *Monitor) checkDomain(ctx context.Context, name string) {
	if m.inBackoff(name) {
		return
	}

	res := m.prober.Probe(ctx, name)
	category := domain.Classify(res)

	metrics.ProbesTotal.WithLabelValues(name, string(category)).Inc()
	metrics.ProbeDuration.WithLabelValues(name).Observe(res.Latency.Seconds())
	m.recordHealth(name, category, res)

	switch category {
	case domain.HealthCDNDown:
		m.logger.Error("CDN edge failing in front of origin", "domain", name, "status", res.StatusCode)
		m.act(ctx, name, false, "cdn edge failure detected")
	case domain.HealthOriginDown:
		m.logger.Error("origin failing, bypassing the CDN would not help", "domain", name, "status", res.StatusCode)
	case domain.HealthUnreachable:
		m.logger.Error("domain unreachable", "domain", name, "error", res.Err)
	default:
		m.logger.Info("domain healthy", "domain", name, "status", res.StatusCode, "latency", res.Latency)
		m.act(ctx, name, true, "healthy again, converging to proxied")
	}
}

// act converges the proxied flag toward the desired value when auto-toggle
// is on. Provider API failures extend the domain's backoff window; any
// success clears it.
func (m *Monitor) act(ctx context.Context, name string, proxied bool, reason string) {
	if !m.autoToggle {
		return
	}

	res, err := m.toggler.Toggle(ctx, name, proxied, reason)
	if err != nil {
		m.logger.Error("toggle failed", "domain", name, "error", err)
		if domain.IsAPIError(err) {
			m.noteAPIFailure(name)
		}
		return
	}
	m.clearBackoff(name)

	if res.Outcome == domain.OutcomeToggled {
		direction := "off"
		if proxied {
			direction = "on"
		}
		metrics.TogglesTotal.WithLabelValues(name, direction).Inc()
		m.logger.Warn("proxied flag toggled", "domain", name, "from", res.From, "to", res.To, "reason", reason)
	}

	v := 0.0
	if res.To {
		v = 1.0
	}
	metrics.RecordProxied.WithLabelValues(name).Set(v)
}

func (m *Monitor) recordHealth(name string, category domain.HealthCategory, res domain.ProbeResult) {
	h := domain.DomainHealth{
		Domain:     name,
		Category:   category,
		StatusCode: res.StatusCode,
		LatencyMS:  res.Latency.Milliseconds(),
		CheckedAt:  time.Now(),
	}
	if res.Err != nil {
		h.Detail = res.Err.Error()
	}

	m.mu.Lock()
	m.health[name] = h
	m.mu.Unlock()
}

func (m *Monitor) inBackoff(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.backoff[name]
	if !ok {
		return false
	}
	if time.Now().Before(st.skipUntil) {
		m.logger.Debug("skipping domain during backoff", "domain", name, "until", st.skipUntil)
		return true
	}
	return false
}

func (m *Monitor) noteAPIFailure(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.backoff[name]
	if st == nil {
		st = &backoffState{}
		m.backoff[name] = st
	}
	st.failures++

	delay := backoffDelay(m.interval, st.failures)
	st.skipUntil = time.Now().Add(delay)
	m.logger.Warn("backing off after provider failures", "domain", name, "failures", st.failures, "delay", delay)
}

func (m *Monitor) clearBackoff(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.backoff, name)
}

// backoffDelay is one interval after the first failure and doubles per
// consecutive failure up to maxBackoffFactor intervals.
func backoffDelay(interval time.Duration, failures int) time.Duration {
	factor := 1
	for i := 1; i < failures && factor < maxBackoffFactor; i++ {
		factor *= 2
	}
	return interval * time.Duration(factor)
}

// sleepCtx pauses for d unless the context ends first. It reports whether
// the full pause elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
