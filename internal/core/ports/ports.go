package ports

import (
	"context"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

type DNSProvider interface {
	ZoneIDByName(ctx context.Context, name string) (string, error)
	ListRecords(ctx context.Context, zoneID string, name string) ([]domain.DNSRecord, error)
	ListZoneRecords(ctx context.Context, zoneID string) ([]domain.DNSRecord, error)
	SetProxied(ctx context.Context, record domain.DNSRecord, proxied bool) error
}

type Prober interface {
	Probe(ctx context.Context, domainName string) domain.ProbeResult
}

type StateStore interface {
	Get(ctx context.Context, domainName string) (*domain.SavedState, error)
	Save(ctx context.Context, state domain.SavedState) error
	All(ctx context.Context) (map[string]domain.SavedState, error)
}

type AuditSink interface {
	RecordToggle(ctx context.Context, event *domain.ToggleEvent) error
	ListEvents(ctx context.Context, domainName string) ([]domain.ToggleEvent, error)
	Ping(ctx context.Context) error
}

type ToggleService interface {
	Toggle(ctx context.Context, domainName string, proxied bool, reason string) (domain.ToggleResult, error)
	Restore(ctx context.Context, domainName string) (domain.ToggleResult, error)
	Status(ctx context.Context, domainName string) (domain.DomainStatus, error)
	ListSelectable(ctx context.Context) ([]domain.DNSRecord, error)
}

type StatusSource interface {
	Snapshot() domain.MonitorSnapshot
}
