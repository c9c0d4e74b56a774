package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/testutil"
)

func TestRunStatusShowsBaseline(t *testing.T) {
	toggler := new(testutil.MockToggleService)
	toggler.On("Status", "www.example.com").Return(domain.DomainStatus{
		Domain: "www.example.com",
		Record: &domain.DNSRecord{ID: "rec-1", Name: "www.example.com", Type: domain.TypeA, Content: "192.0.2.10", Proxied: false},
		Saved:  &domain.SavedState{Domain: "www.example.com", RecordID: "rec-1", OriginalProxied: true, SavedAt: 1700000000},
	}, nil)

	out := &bytes.Buffer{}
	err := runStatus(context.Background(), toggler, []string{"www.example.com"}, out)

	if err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("DNS only")) {
		t.Errorf("expected live proxied state in output, got %q", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("baseline=proxied")) {
		t.Errorf("expected saved baseline in output, got %q", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("2023-11-14T22:13:20Z")) {
		t.Errorf("expected baseline timestamp in output, got %q", out.String())
	}
	toggler.AssertExpectations(t)
}

func TestRunStatusWithoutBaseline(t *testing.T) {
	toggler := new(testutil.MockToggleService)
	toggler.On("Status", "www.example.com").Return(domain.DomainStatus{
		Domain: "www.example.com",
		Record: &domain.DNSRecord{ID: "rec-1", Name: "www.example.com", Type: domain.TypeA, Content: "192.0.2.10", Proxied: true},
	}, nil)

	out := &bytes.Buffer{}
	err := runStatus(context.Background(), toggler, []string{"www.example.com"}, out)

	if err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("baseline=none")) {
		t.Errorf("expected missing baseline marker, got %q", out.String())
	}
}

func TestRunStatusContinuesPastFailures(t *testing.T) {
	toggler := new(testutil.MockToggleService)
	toggler.On("Status", "gone.example.com").
		Return(domain.DomainStatus{}, domain.ErrRecordNotFound)
	toggler.On("Status", "www.example.com").Return(domain.DomainStatus{
		Domain: "www.example.com",
		Record: &domain.DNSRecord{ID: "rec-1", Name: "www.example.com", Type: domain.TypeA, Content: "192.0.2.10", Proxied: true},
	}, nil)

	out := &bytes.Buffer{}
	err := runStatus(context.Background(), toggler, []string{"gone.example.com", "www.example.com"}, out)

	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected first error back, got %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("www.example.com")) {
		t.Errorf("expected second domain to still be reported, got %q", out.String())
	}
}
