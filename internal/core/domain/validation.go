package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var validLabelRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// ValidateDomainName checks that the provided name is a plausible public
// hostname. Cloudflare record names carry no trailing dot.
func ValidateDomainName(name string) error {
	if name == "" {
		return fmt.Errorf("domain name cannot be empty")
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("domain name must not end with a dot")
	}
	if len(name) > 253 {
		return fmt.Errorf("domain name exceeds 253 characters")
	}

	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return fmt.Errorf("domain name must contain at least two labels")
	}
	for _, label := range labels {
		if len(label) > 63 {
			return fmt.Errorf("label '%s' exceeds 63 characters", label)
		}
		if label == "" {
			return fmt.Errorf("domain name contains empty label")
		}
		if !validLabelRegex.MatchString(label) {
			return fmt.Errorf("label '%s' contains invalid characters or format", label)
		}
	}
	return nil
}

// BaseDomain returns the rightmost two labels of a hostname, the naive guess
// for the enclosing zone of a subdomain. It is wrong for multi-label public
// suffixes such as co.uk; a static zone ID in the configuration avoids the
// heuristic entirely.
func BaseDomain(name string) string {
	trimmed := strings.TrimSuffix(name, ".")
	labels := strings.Split(trimmed, ".")
	if len(labels) <= 2 {
		return trimmed
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
