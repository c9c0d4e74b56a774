// Package domain contains the core business logic and entities for cdnguard.
package domain

import (
	"time"
)

// RecordType represents the type of a DNS record (e.g., A, AAAA, CNAME).
type RecordType string

const (
	// TypeA represents an IPv4 address record.
	TypeA RecordType = "A"
	// TypeAAAA represents an IPv6 address record.
	TypeAAAA RecordType = "AAAA"
	// TypeCNAME represents a canonical name record.
	TypeCNAME RecordType = "CNAME"
)

// ProxiableTypes lists the record types Cloudflare can front with its proxy.
var ProxiableTypes = []RecordType{TypeA, TypeAAAA, TypeCNAME}

// CanProxy reports whether records of this type can carry the proxied flag.
func (t RecordType) CanProxy() bool {
	switch t {
	case TypeA, TypeAAAA, TypeCNAME:
		return true
	}
	return false
}

// DNSRecord represents a managed DNS record as the provider returns it.
type DNSRecord struct {
	ID        string     `json:"id"`
	ZoneID    string     `json:"zone_id"`
	Name      string     `json:"name"` // e.g., www.example.com
	Type      RecordType `json:"type"`
	Content   string     `json:"content"`
	TTL       int        `json:"ttl"`
	Proxied   bool       `json:"proxied"`
	Proxiable bool       `json:"proxiable"`
}

// SavedState captures the proxied flag a record carried before the first
// automated change. It is written exactly once per domain and never updated.
type SavedState struct {
	Domain          string `json:"domain"`
	RecordID        string `json:"record_id"`
	OriginalProxied bool   `json:"original_proxied"`
	SavedAt         int64  `json:"saved_at"`
}

// ToggleOutcome describes the effect of a toggle request.
type ToggleOutcome string

const (
	// OutcomeNoop means the record already carried the desired proxied flag.
	OutcomeNoop ToggleOutcome = "noop"
	// OutcomeToggled means the proxied flag was changed at the provider.
	OutcomeToggled ToggleOutcome = "toggled"
)

// ToggleResult reports what a toggle request did.
type ToggleResult struct {
	Outcome  ToggleOutcome `json:"outcome"`
	Domain   string        `json:"domain"`
	RecordID string        `json:"record_id"`
	From     bool          `json:"from"`
	To       bool          `json:"to"`
}

// ToggleEvent records an applied proxied-flag change for auditing.
type ToggleEvent struct {
	ID          string    `json:"id"`
	Domain      string    `json:"domain"`
	RecordID    string    `json:"record_id"`
	FromProxied bool      `json:"from_proxied"`
	ToProxied   bool      `json:"to_proxied"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// DomainStatus combines the live record with any saved baseline for reporting.
type DomainStatus struct {
	Domain string      `json:"domain"`
	Record *DNSRecord  `json:"record,omitempty"`
	Saved  *SavedState `json:"saved,omitempty"`
}
