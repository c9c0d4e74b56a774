// Package audit persists applied toggle events so operators can answer who
// flipped what, when, and why after an incident.
package audit

import (
	"context"
	"database/sql"
	"log"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

// PostgresSink implements ports.AuditSink using PostgreSQL.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink creates and returns a new PostgresSink instance.
func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// EnsureSchema creates the toggle_events table when it does not exist yet.
// Safe to run on every startup.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS toggle_events (
		id UUID PRIMARY KEY,
		domain TEXT NOT NULL,
		record_id TEXT NOT NULL,
		from_proxied BOOLEAN NOT NULL,
		to_proxied BOOLEAN NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *PostgresSink) RecordToggle(ctx context.Context, event *domain.ToggleEvent) error {
	query := `INSERT INTO toggle_events (id, domain, record_id, from_proxied, to_proxied, reason, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query, event.ID, event.Domain, event.RecordID, event.FromProxied, event.ToProxied, event.Reason, event.CreatedAt)
	return err
}

func (s *PostgresSink) ListEvents(ctx context.Context, domainName string) ([]domain.ToggleEvent, error) {
	query := `SELECT id, domain, record_id, from_proxied, to_proxied, reason, created_at FROM toggle_events`
	var rows *sql.Rows
	var errQuery error

	if domainName != "" {
		query += " WHERE domain = $1 ORDER BY created_at DESC"
		rows, errQuery = s.db.QueryContext(ctx, query, domainName)
	} else {
		query += " ORDER BY created_at DESC"
		rows, errQuery = s.db.QueryContext(ctx, query)
	}

	if errQuery != nil {
		return nil, errQuery
	}
	defer func() { if errClose := rows.Close(); errClose != nil { log.Printf("failed to close rows: %v", errClose) } }()

	var events []domain.ToggleEvent
	for rows.Next() {
		var e domain.ToggleEvent
		if errScan := rows.Scan(&e.ID, &e.Domain, &e.RecordID, &e.FromProxied, &e.ToProxied, &e.Reason, &e.CreatedAt); errScan != nil {
			return nil, errScan
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *PostgresSink) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
