package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

func TestMockProvider(t *testing.T) {
	ctx := context.Background()
	m := new(MockProvider)
	m.On("ZoneIDByName", "example.com").Return("zone-1", nil)
	m.On("ListRecords", "zone-1", "www.example.com").Return([]domain.DNSRecord{{ID: "rec-1"}}, nil)
	m.On("ListZoneRecords", "zone-1").Return(nil, errors.New("boom"))
	m.On("SetProxied", domain.DNSRecord{ID: "rec-1"}, true).Return(nil)

	if id, _ := m.ZoneIDByName(ctx, "example.com"); id != "zone-1" {
		t.Errorf("expected zone-1, got %s", id)
	}
	if recs, _ := m.ListRecords(ctx, "zone-1", "www.example.com"); len(recs) != 1 {
		t.Errorf("expected one record, got %d", len(recs))
	}
	if recs, err := m.ListZoneRecords(ctx, "zone-1"); recs != nil || err == nil {
		t.Error("expected nil records and an error")
	}
	_ = m.SetProxied(ctx, domain.DNSRecord{ID: "rec-1"}, true)
	m.AssertExpectations(t)
}

func TestMockStateStore(t *testing.T) {
	ctx := context.Background()
	m := new(MockStateStore)
	m.On("Get", "www.example.com").Return(&domain.SavedState{Domain: "www.example.com"}, nil)
	m.On("Get", "missing.example.com").Return(nil, nil)
	m.On("Save", domain.SavedState{Domain: "www.example.com"}).Return(nil)
	m.On("All").Return(map[string]domain.SavedState{}, nil)

	if saved, _ := m.Get(ctx, "www.example.com"); saved == nil {
		t.Error("expected saved state")
	}
	if saved, _ := m.Get(ctx, "missing.example.com"); saved != nil {
		t.Error("expected nil for missing domain")
	}
	_ = m.Save(ctx, domain.SavedState{Domain: "www.example.com"})
	if all, _ := m.All(ctx); all == nil {
		t.Error("expected empty map, not nil")
	}
	m.AssertExpectations(t)
}

func TestMockProber(t *testing.T) {
	m := new(MockProber)
	m.On("Probe", "www.example.com").Return(domain.ProbeResult{StatusCode: 200})

	if res := m.Probe(context.Background(), "www.example.com"); res.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
	m.AssertExpectations(t)
}

func TestMockAuditSink(t *testing.T) {
	ctx := context.Background()
	m := new(MockAuditSink)
	m.On("RecordToggle", &domain.ToggleEvent{ID: "ev-1"}).Return(nil)
	m.On("ListEvents", "").Return(nil, errors.New("boom"))
	m.On("Ping").Return(nil)

	_ = m.RecordToggle(ctx, &domain.ToggleEvent{ID: "ev-1"})
	if events, err := m.ListEvents(ctx, ""); events != nil || err == nil {
		t.Error("expected nil events and an error")
	}
	_ = m.Ping(ctx)
	m.AssertExpectations(t)
}

func TestMockToggleService(t *testing.T) {
	ctx := context.Background()
	m := new(MockToggleService)
	m.On("Toggle", "www.example.com", true, "test").Return(domain.ToggleResult{Outcome: domain.OutcomeToggled}, nil)
	m.On("Restore", "www.example.com").Return(domain.ToggleResult{Outcome: domain.OutcomeNoop}, nil)
	m.On("Status", "www.example.com").Return(domain.DomainStatus{Domain: "www.example.com"}, nil)
	m.On("ListSelectable").Return([]domain.DNSRecord{{ID: "rec-1"}}, nil)

	if res, _ := m.Toggle(ctx, "www.example.com", true, "test"); res.Outcome != domain.OutcomeToggled {
		t.Errorf("expected toggled outcome, got %s", res.Outcome)
	}
	if res, _ := m.Restore(ctx, "www.example.com"); res.Outcome != domain.OutcomeNoop {
		t.Errorf("expected noop outcome, got %s", res.Outcome)
	}
	if st, _ := m.Status(ctx, "www.example.com"); st.Domain != "www.example.com" {
		t.Errorf("unexpected status domain %s", st.Domain)
	}
	if recs, _ := m.ListSelectable(ctx); len(recs) != 1 {
		t.Errorf("expected one record, got %d", len(recs))
	}
	m.AssertExpectations(t)
}
