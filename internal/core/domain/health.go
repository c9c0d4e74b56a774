package domain

import (
	"time"
)

// HealthCategory classifies the outcome of probing a domain.
type HealthCategory string

const (
	// HealthUp means the domain answered with a usable HTTP response.
	HealthUp HealthCategory = "up"
	// HealthCDNDown means the CDN edge is failing in front of a live origin.
	HealthCDNDown HealthCategory = "cdn_down"
	// HealthOriginDown means the origin server itself is failing.
	HealthOriginDown HealthCategory = "origin_down"
	// HealthUnreachable means no HTTP response came back at all.
	HealthUnreachable HealthCategory = "unreachable"
)

// ProbeResult is the raw outcome of one HTTP probe against a domain.
// A StatusCode of zero means no HTTP response was received; Err then holds
// the transport failure for reporting. Err never propagates as a probe error.
type ProbeResult struct {
	StatusCode int
	CDNSignal  bool
	CDNBranded bool
	Latency    time.Duration
	Err        error
}

// Classify maps a probe result onto a health category. Rules apply in order:
// Cloudflare's 520-527 range always points at the origin behind the proxy;
// a 500/502/503 carrying the CDN routing signal is an edge failure only when
// the error page is CDN-branded, otherwise the origin error passed through;
// no response at all is unreachable; 2xx is up; any remaining 5xx is an
// origin failure; everything else (3xx, 4xx) counts as up because the server
// answered deliberately.
func Classify(res ProbeResult) HealthCategory {
	switch {
	case res.StatusCode >= 520 && res.StatusCode <= 527:
		return HealthOriginDown
	case resIsEdgeStatus(res.StatusCode) && res.CDNSignal:
		if res.CDNBranded {
			return HealthCDNDown
		}
		return HealthOriginDown
	case res.StatusCode == 0:
		return HealthUnreachable
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return HealthUp
	case res.StatusCode >= 500 && res.StatusCode < 600:
		return HealthOriginDown
	default:
		return HealthUp
	}
}

// resIsEdgeStatus reports whether the status code is one the Cloudflare edge
// generates itself when it cannot serve a request.
func resIsEdgeStatus(code int) bool {
	return code == 500 || code == 502 || code == 503
}

// DomainHealth is the last observed state of one monitored domain.
type DomainHealth struct {
	Domain     string         `json:"domain"`
	Category   HealthCategory `json:"category"`
	StatusCode int            `json:"status_code"`
	LatencyMS  int64          `json:"latency_ms"`
	CheckedAt  time.Time      `json:"checked_at"`
	Detail     string         `json:"detail,omitempty"`
}

// MonitorSnapshot is a point-in-time view of the monitor loop for reporting.
type MonitorSnapshot struct {
	Rounds  uint64         `json:"rounds"`
	Domains []DomainHealth `json:"domains"`
}

