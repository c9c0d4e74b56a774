package audit

import (
	"context"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

// NopSink drops events. Used when no audit DSN is configured.
type NopSink struct{}

func (NopSink) RecordToggle(ctx context.Context, event *domain.ToggleEvent) error { return nil }

func (NopSink) ListEvents(ctx context.Context, domainName string) ([]domain.ToggleEvent, error) {
	return nil, nil
}

func (NopSink) Ping(ctx context.Context) error { return nil }
