package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/core/ports"
)

type toggleService struct {
	provider ports.DNSProvider
	store    ports.StateStore
	audit    ports.AuditSink
	zoneID   string
	zones    *zoneCache
	logger   *slog.Logger
}

// NewToggleService wires the proxied-flag state machine. A non-empty zoneID
// pins every lookup to that zone and skips zone resolution entirely.
func NewToggleService(provider ports.DNSProvider, store ports.StateStore, audit ports.AuditSink, zoneID string, logger *slog.Logger) ports.ToggleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &toggleService{
		provider: provider,
		store:    store,
		audit:    audit,
		zoneID:   zoneID,
		zones:    newZoneCache(),
		logger:   logger,
	}
}

// Toggle drives a record to the desired proxied state. The first time a
// domain is touched its pre-change flag is captured as a baseline; the
// baseline is never overwritten by later toggles.
func (s *toggleService) Toggle(ctx context.Context, domainName string, proxied bool, reason string) (domain.ToggleResult, error) {
	rec, err := s.locate(ctx, domainName)
	if err != nil {
		return domain.ToggleResult{}, err
	}

	saved, err := s.store.Get(ctx, domainName)
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("reading saved state for %s: %w", domainName, err)
	}
	if saved == nil {
		// The DNS change happens only after the baseline is durable.
		state := domain.SavedState{
			Domain:          domainName,
			RecordID:        rec.ID,
			OriginalProxied: rec.Proxied,
			SavedAt:         time.Now().Unix(),
		}
		if err := s.store.Save(ctx, state); err != nil {
			return domain.ToggleResult{}, fmt.Errorf("saving baseline for %s: %w", domainName, err)
		}
		s.logger.Info("saved pre-change baseline", "domain", domainName, "record_id", rec.ID, "proxied", rec.Proxied)
	}

	result := domain.ToggleResult{
		Domain:   domainName,
		RecordID: rec.ID,
		From:     rec.Proxied,
		To:       proxied,
	}
	if rec.Proxied == proxied {
		result.Outcome = domain.OutcomeNoop
		return result, nil
	}

	if err := s.provider.SetProxied(ctx, rec, proxied); err != nil {
		return domain.ToggleResult{}, err
	}
	result.Outcome = domain.OutcomeToggled
	s.recordEvent(ctx, result, reason)

	return result, nil
}

// Restore puts a domain back to its saved baseline. Without a baseline there
// is nothing to undo and the call is a warning-level no-op.
func (s *toggleService) Restore(ctx context.Context, domainName string) (domain.ToggleResult, error) {
	saved, err := s.store.Get(ctx, domainName)
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("reading saved state for %s: %w", domainName, err)
	}
	if saved == nil {
		s.logger.Warn("no saved baseline, nothing to restore", "domain", domainName)
		return domain.ToggleResult{Outcome: domain.OutcomeNoop, Domain: domainName}, nil
	}
	return s.Toggle(ctx, domainName, saved.OriginalProxied, "restore saved baseline")
}

func (s *toggleService) Status(ctx context.Context, domainName string) (domain.DomainStatus, error) {
	rec, err := s.locate(ctx, domainName)
	if err != nil {
		return domain.DomainStatus{}, err
	}
	saved, err := s.store.Get(ctx, domainName)
	if err != nil {
		return domain.DomainStatus{}, fmt.Errorf("reading saved state for %s: %w", domainName, err)
	}
	return domain.DomainStatus{Domain: domainName, Record: &rec, Saved: saved}, nil
}

// ListSelectable returns the proxiable records of the pinned zone, for
// interactive selection. It requires a configured zone ID because scanning
// every zone on the account would be slow and surprising.
func (s *toggleService) ListSelectable(ctx context.Context) ([]domain.DNSRecord, error) {
	if s.zoneID == "" {
		return nil, fmt.Errorf("%w: set CDNGUARD_ZONE_ID to enable record selection", domain.ErrZoneNotFound)
	}
	recs, err := s.provider.ListZoneRecords(ctx, s.zoneID)
	if err != nil {
		return nil, fmt.Errorf("listing zone records: %w", err)
	}

	var selectable []domain.DNSRecord
	for _, rec := range recs {
		if rec.Type.CanProxy() {
			selectable = append(selectable, rec)
		}
	}
	return selectable, nil
}

// locate finds the single proxiable record managed for a domain. When a name
// carries several proxiable records, type order A, AAAA, CNAME decides.
func (s *toggleService) locate(ctx context.Context, domainName string) (domain.DNSRecord, error) {
	zoneID, err := s.resolveZone(ctx, domainName)
	if err != nil {
		return domain.DNSRecord{}, err
	}

	recs, err := s.provider.ListRecords(ctx, zoneID, domainName)
	if err != nil {
		return domain.DNSRecord{}, fmt.Errorf("listing records for %s: %w", domainName, err)
	}

	for _, want := range domain.ProxiableTypes {
		for _, rec := range recs {
			if rec.Type == want {
				return rec, nil
			}
		}
	}
	return domain.DNSRecord{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, domainName)
}

// resolveZone maps a domain to its zone ID, trying the exact name first and
// falling back to the rightmost two labels for subdomains.
func (s *toggleService) resolveZone(ctx context.Context, domainName string) (string, error) {
	if s.zoneID != "" {
		return s.zoneID, nil
	}
	if id, ok := s.zones.get(domainName); ok {
		return id, nil
	}

	id, err := s.provider.ZoneIDByName(ctx, domainName)
	if errors.Is(err, domain.ErrZoneNotFound) {
		if base := domain.BaseDomain(domainName); base != domainName {
			id, err = s.provider.ZoneIDByName(ctx, base)
		}
	}
	if err != nil {
		return "", fmt.Errorf("resolving zone for %s: %w", domainName, err)
	}

	s.zones.set(domainName, id)
	return id, nil
}

// recordEvent appends to the audit trail. The DNS change already happened at
// this point, so a sink failure is logged rather than returned.
func (s *toggleService) recordEvent(ctx context.Context, res domain.ToggleResult, reason string) {
	event := &domain.ToggleEvent{
		ID:          uuid.New().String(),
		Domain:      res.Domain,
		RecordID:    res.RecordID,
		FromProxied: res.From,
		ToProxied:   res.To,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	if err := s.audit.RecordToggle(ctx, event); err != nil {
		s.logger.Error("failed to record toggle event", "domain", res.Domain, "error", err)
	}
}
