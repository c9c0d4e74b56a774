package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

type stubStatusSource struct {
	snap domain.MonitorSnapshot
}

func (s *stubStatusSource) Snapshot() domain.MonitorSnapshot {
	return s.snap
}

func TestStatusEndpoint(t *testing.T) {
	src := &stubStatusSource{snap: domain.MonitorSnapshot{
		Rounds: 3,
		Domains: []domain.DomainHealth{
			{Domain: "www.example.com", Category: domain.HealthCDNDown, StatusCode: 502, CheckedAt: time.Now()},
		},
	}}
	handler := NewHandler(src, nil)

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp domain.MonitorSnapshot
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Rounds != 3 {
		t.Errorf("Expected 3 rounds, got %d", resp.Rounds)
	}
	if len(resp.Domains) != 1 || resp.Domains[0].Category != domain.HealthCDNDown {
		t.Errorf("Unexpected snapshot: %+v", resp)
	}
}

func TestHealthCheckUp(t *testing.T) {
	handler := NewHandler(&stubStatusSource{}, map[string]func(context.Context) error{
		"state": func(context.Context) error { return nil },
	})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["status"] != "UP" {
		t.Errorf("Expected UP, got %v", resp["status"])
	}
}

func TestHealthCheckDegraded(t *testing.T) {
	handler := NewHandler(&stubStatusSource{}, map[string]func(context.Context) error{
		"state": func(context.Context) error { return nil },
		"audit": func(context.Context) error { return errors.New("connection refused") },
	})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}

	var resp map[string]interface{}
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["status"] != "DEGRADED" {
		t.Errorf("Expected DEGRADED, got %v", resp["status"])
	}
	details := resp["details"].(map[string]interface{})
	if details["audit"] != "connection refused" {
		t.Errorf("Expected failing audit detail, got %v", details)
	}
}

func TestRegisterRoutes(t *testing.T) {
	handler := NewHandler(&stubStatusSource{}, nil)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	for _, path := range []string{"/healthz", "/status", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
