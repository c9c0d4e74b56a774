// Package probe implements the HTTP health prober. It fetches the front
// page of a domain and captures the raw signals the classifier needs:
// status code, CDN routing headers and CDN-branded error bodies.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

// maxBodyScan bounds how much of an error body is read when looking for
// CDN branding. Error pages are small; 64 KiB is plenty.
const maxBodyScan = 64 * 1024

type HTTPProber struct {
	client    *http.Client
	userAgent string
	scheme    string
}

// NewHTTPProber builds a prober with a per-request timeout. The timeout
// covers the whole exchange including the body scan.
func NewHTTPProber(timeout time.Duration, version string) *HTTPProber {
	return &HTTPProber{
		client:    &http.Client{Timeout: timeout},
		userAgent: "cdnguard/" + version,
		scheme:    "https",
	}
}

// Probe fetches the domain's front page. A transport failure is not an
// error return: it comes back as a result with StatusCode 0 so the
// classifier can treat it as unreachable.
func (p *HTTPProber) Probe(ctx context.Context, domainName string) domain.ProbeResult {
	url := fmt.Sprintf("%s://%s/", p.scheme, domainName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProbeResult{Err: err}
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := p.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return domain.ProbeResult{Latency: latency, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	result := domain.ProbeResult{
		StatusCode: resp.StatusCode,
		CDNSignal:  hasCDNSignal(resp.Header),
		Latency:    latency,
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		result.CDNBranded = isCDNBranded(resp.Body)
	}
	return result
}

// hasCDNSignal reports whether the response headers show the request was
// routed through Cloudflare's edge.
func hasCDNSignal(h http.Header) bool {
	if h.Get("CF-Ray") != "" {
		return true
	}
	return strings.Contains(strings.ToLower(h.Get("Server")), "cloudflare")
}

// isCDNBranded scans an error body for Cloudflare's own error-page markers.
// Origin-generated 5xx pages pass through the edge unbranded; the edge's
// pages carry both the brand name and a ray ID footer.
func isCDNBranded(body io.Reader) bool {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyScan))
	if err != nil {
		return false
	}
	page := strings.ToLower(string(data))
	if !strings.Contains(page, "cloudflare") {
		return false
	}
	return strings.Contains(page, "cf-error-details") || strings.Contains(page, "ray id")
}
