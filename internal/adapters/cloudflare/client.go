// Package cloudflare adapts the Cloudflare v4 SDK to the DNSProvider port.
// It is a thin translation layer: no business logic, only type mapping and
// error classification.
package cloudflare

import (
	"context"
	"errors"
	"fmt"

	cfapi "github.com/cloudflare/cloudflare-go/v4"
	"github.com/cloudflare/cloudflare-go/v4/dns"
	"github.com/cloudflare/cloudflare-go/v4/option"
	"github.com/cloudflare/cloudflare-go/v4/zones"

	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/infrastructure/metrics"
)

type Provider struct {
	api *cfapi.Client
}

// NewProvider creates a provider backed by the real Cloudflare API using the
// given API token. The token needs Zone:Read and DNS:Edit permissions.
func NewProvider(apiToken string) *Provider {
	return &Provider{api: cfapi.NewClient(option.WithAPIToken(apiToken))}
}

// ZoneIDByName resolves a zone name to its ID. An empty listing is not an
// API failure; it maps to ErrZoneNotFound so callers can retry with the
// parent zone.
func (p *Provider) ZoneIDByName(ctx context.Context, name string) (string, error) {
	pager := p.api.Zones.ListAutoPaging(ctx, zones.ZoneListParams{
		Name: cfapi.F(name),
	})

	for pager.Next() {
		zone := pager.Current()
		if zone.Name == name {
			return zone.ID, nil
		}
	}
	if err := pager.Err(); err != nil {
		metrics.APIErrorsTotal.WithLabelValues("zones.list").Inc()
		return "", fmt.Errorf("listing zones: %w", wrapAPIError(err))
	}

	return "", fmt.Errorf("%w: %s", domain.ErrZoneNotFound, name)
}

// ListRecords returns the records of a zone whose name matches exactly.
func (p *Provider) ListRecords(ctx context.Context, zoneID string, name string) ([]domain.DNSRecord, error) {
	params := dns.RecordListParams{
		ZoneID: cfapi.F(zoneID),
		Name: cfapi.F(dns.RecordListParamsName{
			Exact: cfapi.F(name),
		}),
	}
	return p.listRecords(ctx, zoneID, params)
}

// ListZoneRecords returns every record of a zone.
func (p *Provider) ListZoneRecords(ctx context.Context, zoneID string) ([]domain.DNSRecord, error) {
	params := dns.RecordListParams{
		ZoneID: cfapi.F(zoneID),
	}
	return p.listRecords(ctx, zoneID, params)
}

func (p *Provider) listRecords(ctx context.Context, zoneID string, params dns.RecordListParams) ([]domain.DNSRecord, error) {
	var records []domain.DNSRecord
	pager := p.api.DNS.Records.ListAutoPaging(ctx, params)

	for pager.Next() {
		rec := pager.Current()
		records = append(records, domain.DNSRecord{
			ID:        rec.ID,
			ZoneID:    zoneID,
			Name:      rec.Name,
			Type:      domain.RecordType(rec.Type),
			Content:   rec.Content,
			TTL:       int(rec.TTL),
			Proxied:   rec.Proxied,
			Proxiable: rec.Proxiable,
		})
	}
	if err := pager.Err(); err != nil {
		metrics.APIErrorsTotal.WithLabelValues("records.list").Inc()
		return nil, fmt.Errorf("listing records: %w", wrapAPIError(err))
	}

	return records, nil
}

// SetProxied rewrites a single record with the same fields and the new
// proxied flag. Cloudflare treats a proxied record's TTL as auto.
func (p *Provider) SetProxied(ctx context.Context, record domain.DNSRecord, proxied bool) error {
	body, err := updateBody(record, proxied)
	if err != nil {
		return err
	}

	_, err = p.api.DNS.Records.Update(ctx, record.ID, dns.RecordUpdateParams{
		ZoneID: cfapi.F(record.ZoneID),
		Body:   body,
	})
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("records.update").Inc()
		return fmt.Errorf("updating record %s (%s): %w", record.Name, record.ID, wrapAPIError(err))
	}

	return nil
}

// updateBody builds the typed request body for the record. Only the proxiable
// record types appear here; anything else is rejected before the API call.
func updateBody(record domain.DNSRecord, proxied bool) (dns.RecordUpdateParamsBodyUnion, error) {
	switch record.Type {
	case domain.TypeA:
		return dns.ARecordParam{
			Name:    cfapi.F(record.Name),
			Type:    cfapi.F(dns.ARecordTypeA),
			Content: cfapi.F(record.Content),
			TTL:     cfapi.F(dns.TTL(record.TTL)),
			Proxied: cfapi.F(proxied),
		}, nil
	case domain.TypeAAAA:
		return dns.AAAARecordParam{
			Name:    cfapi.F(record.Name),
			Type:    cfapi.F(dns.AAAARecordTypeAAAA),
			Content: cfapi.F(record.Content),
			TTL:     cfapi.F(dns.TTL(record.TTL)),
			Proxied: cfapi.F(proxied),
		}, nil
	case domain.TypeCNAME:
		return dns.CNAMERecordParam{
			Name:    cfapi.F(record.Name),
			Type:    cfapi.F(dns.CNAMERecordTypeCNAME),
			Content: cfapi.F(record.Content),
			TTL:     cfapi.F(dns.TTL(record.TTL)),
			Proxied: cfapi.F(proxied),
		}, nil
	default:
		return nil, fmt.Errorf("record type %q cannot carry a proxied flag", record.Type)
	}
}

// wrapAPIError converts SDK errors into domain.APIError so upper layers can
// distinguish provider failures from local ones without importing the SDK.
func wrapAPIError(err error) error {
	var apierr *cfapi.Error
	if errors.As(err, &apierr) {
		return &domain.APIError{StatusCode: apierr.StatusCode, Message: err.Error()}
	}
	return &domain.APIError{Message: err.Error()}
}
