// Package testutil provides shared mock implementations of the core ports.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ZoneIDByName(ctx context.Context, name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ListRecords(ctx context.Context, zoneID string, name string) ([]domain.DNSRecord, error) {
	args := m.Called(zoneID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DNSRecord), args.Error(1)
}

func (m *MockProvider) ListZoneRecords(ctx context.Context, zoneID string) ([]domain.DNSRecord, error) {
	args := m.Called(zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DNSRecord), args.Error(1)
}

func (m *MockProvider) SetProxied(ctx context.Context, record domain.DNSRecord, proxied bool) error {
	args := m.Called(record, proxied)
	return args.Error(0)
}

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Get(ctx context.Context, domainName string) (*domain.SavedState, error) {
	args := m.Called(domainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedState), args.Error(1)
}

func (m *MockStateStore) Save(ctx context.Context, state domain.SavedState) error {
	args := m.Called(state)
	return args.Error(0)
}

func (m *MockStateStore) All(ctx context.Context) (map[string]domain.SavedState, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.SavedState), args.Error(1)
}

type MockProber struct {
	mock.Mock
}

func (m *MockProber) Probe(ctx context.Context, domainName string) domain.ProbeResult {
	args := m.Called(domainName)
	return args.Get(0).(domain.ProbeResult)
}

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) RecordToggle(ctx context.Context, event *domain.ToggleEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockAuditSink) ListEvents(ctx context.Context, domainName string) ([]domain.ToggleEvent, error) {
	args := m.Called(domainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToggleEvent), args.Error(1)
}

func (m *MockAuditSink) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

type MockToggleService struct {
	mock.Mock
}

func (m *MockToggleService) Toggle(ctx context.Context, domainName string, proxied bool, reason string) (domain.ToggleResult, error) {
	args := m.Called(domainName, proxied, reason)
	return args.Get(0).(domain.ToggleResult), args.Error(1)
}

func (m *MockToggleService) Restore(ctx context.Context, domainName string) (domain.ToggleResult, error) {
	args := m.Called(domainName)
	return args.Get(0).(domain.ToggleResult), args.Error(1)
}

func (m *MockToggleService) Status(ctx context.Context, domainName string) (domain.DomainStatus, error) {
	args := m.Called(domainName)
	return args.Get(0).(domain.DomainStatus), args.Error(1)
}

func (m *MockToggleService) ListSelectable(ctx context.Context) ([]domain.DNSRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DNSRecord), args.Error(1)
}
