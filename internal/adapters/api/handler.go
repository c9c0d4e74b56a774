// Package api exposes the monitor's observation endpoints: liveness,
// last-round status, and Prometheus metrics. There is no management
// surface; all changes go through the CLI.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cdnguard/cdnguard/internal/core/ports"
)

// Handler serves read-only monitor state over HTTP.
type Handler struct {
	status ports.StatusSource
	checks map[string]func(context.Context) error
}

// NewHandler creates and returns a new Handler instance. checks maps
// dependency names to ping functions probed by the health endpoint.
func NewHandler(status ports.StatusSource, checks map[string]func(context.Context) error) *Handler {
	return &Handler{status: status, checks: checks}
}

// RegisterRoutes registers the observation routes with the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.HealthCheck)
	mux.HandleFunc("GET /status", h.Status)
	mux.HandleFunc("GET /metrics", h.Metrics)
}

// Metrics handles Prometheus metrics scraping requests.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// HealthCheck handles health check requests. Any failing dependency ping
// degrades the status and flips the response to 503.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	details := make(map[string]string)

	for name, check := range h.checks {
		if checkErr := check(r.Context()); checkErr != nil {
			status = "DEGRADED"
			details[name] = checkErr.Error()
		} else {
			details[name] = "OK"
		}
	}

	resp := map[string]interface{}{
		"status":  status,
		"details": details,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "DEGRADED" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode health check response: %v", err)
	}
}

// Status returns the monitor's last observed health for every domain.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.status.Snapshot()); err != nil {
		log.Printf("failed to encode status response: %v", err)
	}
}
