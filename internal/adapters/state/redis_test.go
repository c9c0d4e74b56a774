package state

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewRedisStore(mr.Addr(), "", 0)
	ctx := context.Background()

	got, err := store.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing domain, got %+v", got)
	}

	state := domain.SavedState{
		Domain:          "example.com",
		RecordID:        "rec-1",
		OriginalProxied: true,
		SavedAt:         1724500000,
	}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err = store.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || *got != state {
		t.Errorf("Expected %+v, got %+v", state, got)
	}

	if err := store.Save(ctx, domain.SavedState{Domain: "other.com", RecordID: "rec-2"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 saved states, got %d", len(all))
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to run miniredis: %v", err)
	}
	defer mr.Close()

	mr.HSet(stateKey, "bad.example.com", "{not json")

	store := NewRedisStore(mr.Addr(), "", 0)
	if _, err := store.Get(context.Background(), "bad.example.com"); err == nil {
		t.Error("Expected error for corrupt stored value")
	}
}

func TestRedisStore_Ping(t *testing.T) {
	mr, _ := miniredis.Run()
	defer mr.Close()

	store := NewRedisStore(mr.Addr(), "", 0)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
