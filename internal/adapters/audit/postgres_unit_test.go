package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

func TestPostgresSink_Unit(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	sink := NewPostgresSink(db)
	ctx := context.Background()

	t.Run("EnsureSchema", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS toggle_events`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := sink.EnsureSchema(ctx); err != nil {
			t.Errorf("EnsureSchema failed: %v", err)
		}
	})

	t.Run("RecordToggle", func(t *testing.T) {
		event := &domain.ToggleEvent{
			ID:          "550e8400-e29b-41d4-a716-446655440000",
			Domain:      "example.com",
			RecordID:    "rec-1",
			FromProxied: true,
			ToProxied:   false,
			Reason:      "cdn edge failure detected",
			CreatedAt:   time.Now(),
		}
		mock.ExpectExec(`INSERT INTO toggle_events`).
			WithArgs(event.ID, event.Domain, event.RecordID, event.FromProxied, event.ToProxied, event.Reason, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := sink.RecordToggle(ctx, event); err != nil {
			t.Errorf("RecordToggle failed: %v", err)
		}
	})

	t.Run("ListEventsForDomain", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "domain", "record_id", "from_proxied", "to_proxied", "reason", "created_at"}).
			AddRow("e1", "example.com", "rec-1", true, false, "cdn edge failure detected", time.Now())

		mock.ExpectQuery(`SELECT (.+) FROM toggle_events WHERE domain = \$1 ORDER BY created_at DESC`).
			WithArgs("example.com").
			WillReturnRows(rows)

		events, err := sink.ListEvents(ctx, "example.com")
		if err != nil || len(events) != 1 {
			t.Fatalf("ListEvents failed: %v, count: %d", err, len(events))
		}
		if events[0].Reason != "cdn edge failure detected" {
			t.Errorf("Unexpected event: %+v", events[0])
		}
	})

	t.Run("ListEventsAll", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM toggle_events ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "domain", "record_id", "from_proxied", "to_proxied", "reason", "created_at"}).
				AddRow("e1", "a.com", "r1", false, true, "", time.Now()).
				AddRow("e2", "b.com", "r2", true, false, "", time.Now()))

		events, err := sink.ListEvents(ctx, "")
		if err != nil || len(events) != 2 {
			t.Errorf("ListEvents without domain failed: %v, count: %d", err, len(events))
		}
	})

	t.Run("Ping", func(t *testing.T) {
		mock.ExpectPing()
		if err := sink.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("ErrorPaths", func(t *testing.T) {
		dbErr := errors.New("db error")

		mock.ExpectQuery(`SELECT`).WillReturnError(dbErr)
		if _, err := sink.ListEvents(ctx, "a.com"); err == nil {
			t.Error("Expected query error")
		}

		// Scan failure: wrong column count.
		mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e1"))
		if _, err := sink.ListEvents(ctx, ""); err == nil {
			t.Error("Expected scan error")
		}

		mock.ExpectExec(`INSERT INTO toggle_events`).WillReturnError(dbErr)
		if err := sink.RecordToggle(ctx, &domain.ToggleEvent{}); err == nil {
			t.Error("Expected insert error")
		}
	})
}

func TestNopSink(t *testing.T) {
	sink := NopSink{}
	ctx := context.Background()

	if err := sink.RecordToggle(ctx, &domain.ToggleEvent{ID: "e1"}); err != nil {
		t.Errorf("RecordToggle failed: %v", err)
	}
	events, err := sink.ListEvents(ctx, "example.com")
	if err != nil || events != nil {
		t.Errorf("ListEvents: expected empty result, got %v, %v", events, err)
	}
	if err := sink.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
