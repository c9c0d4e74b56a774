package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors exposed to callers so the CLI can map failures to exit codes.
var (
	// ErrZoneNotFound means no Cloudflare zone matches the domain.
	ErrZoneNotFound = errors.New("no matching zone found")
	// ErrRecordNotFound means the zone holds no proxiable record for the domain.
	ErrRecordNotFound = errors.New("no proxiable DNS record found")
	// ErrConfigMissing means required configuration is absent.
	ErrConfigMissing = errors.New("required configuration missing")
	// ErrDependencyMissing means a required external tool is not installed.
	ErrDependencyMissing = errors.New("required dependency missing")
	// ErrNoSelection means the interactive picker produced no domains.
	ErrNoSelection = errors.New("no domains selected")
)

// APIError describes a failed call to the DNS provider API. It is distinct
// from the not-found sentinels: an empty lookup result is never an APIError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider API error: %s", e.Message)
}

// IsAPIError reports whether err wraps an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
