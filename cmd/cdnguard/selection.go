package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cdnguard/cdnguard/internal/config"
	"github.com/cdnguard/cdnguard/internal/core/domain"
	"github.com/cdnguard/cdnguard/internal/core/ports"
)

// resolveDomains decides which domains a command acts on: explicit arguments
// win, then the configured domain list, then an interactive pick from the
// zone's proxiable records.
func resolveDomains(ctx context.Context, cfg *config.Config, toggler ports.ToggleService, args []string, in io.Reader, out io.Writer) ([]string, error) {
	if len(args) > 0 {
		domains := make([]string, 0, len(args))
		for _, arg := range args {
			name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(arg), "."))
			if err := domain.ValidateDomainName(name); err != nil {
				return nil, fmt.Errorf("invalid domain %q: %w", arg, err)
			}
			domains = append(domains, name)
		}
		return domains, nil
	}
	if len(cfg.Domains) > 0 {
		return cfg.Domains, nil
	}

	records, err := toggler.ListSelectable(ctx)
	if err != nil {
		return nil, err
	}
	return promptSelection(in, out, records)
}

// promptSelection shows a numbered record list and reads one selection line.
// EOF without input means no selection was made.
func promptSelection(in io.Reader, out io.Writer, records []domain.DNSRecord) ([]string, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: zone has no proxiable records", domain.ErrNoSelection)
	}

	fmt.Fprintln(out, "Select domains:")
	for i, rec := range records {
		fmt.Fprintf(out, "  %d) %-40s %-5s %-20s [%s]\n", i+1, rec.Name, rec.Type, rec.Content, proxiedWord(rec.Proxied))
	}
	fmt.Fprint(out, "Enter numbers (e.g. 1,3) or 'all': ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNoSelection
	}
	return parseSelection(scanner.Text(), records)
}

// parseSelection turns a line like "1,3" or "all" into domain names,
// deduplicated in listing order.
func parseSelection(input string, records []domain.DNSRecord) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrNoSelection
	}

	seen := make(map[string]bool)
	var names []string

	if strings.EqualFold(input, "all") {
		for _, rec := range records {
			if !seen[rec.Name] {
				seen[rec.Name] = true
				names = append(names, rec.Name)
			}
		}
		return names, nil
	}

	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 1 || idx > len(records) {
			return nil, fmt.Errorf("%w: invalid selection %q", domain.ErrNoSelection, field)
		}
		name := records[idx-1].Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, domain.ErrNoSelection
	}
	return names, nil
}

func proxiedWord(proxied bool) string {
	if proxied {
		return "proxied"
	}
	return "DNS only"
}
