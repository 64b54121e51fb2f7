package memstore

import (
	"context"
	"testing"

	"tradejournal/internal/store"
)

func TestCreate_AssignsUniqueIDs(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		id, err := s.Create(context.Background(), store.Document{"date": "2026-01-01"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id == "" || seen[id] {
			t.Fatalf("id %q empty or reused", id)
		}
		seen[id] = true
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	s := New()
	id, err := s.Create(context.Background(), store.Document{"date": "2026-01-01", "memo": "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Update(context.Background(), id, store.Document{"memo": "b"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	snap, err := s.GetOnce(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	doc := snap[id]
	if doc["date"] != "2026-01-01" || doc["memo"] != "b" {
		t.Fatalf("merge wrong: %v", doc)
	}
}

func TestUpdate_MissingIDIsNotFound(t *testing.T) {
	s := New()
	if err := s.Update(context.Background(), "nope", store.Document{}); err != store.ErrNotFound {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestSubscribe_DeliversInitialAndChanges(t *testing.T) {
	s := New()
	if _, err := s.Create(context.Background(), store.Document{"date": "2026-01-01"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var snaps []store.Snapshot
	cancel := s.Subscribe(func(snap store.Snapshot) { snaps = append(snaps, snap) })
	defer cancel()

	if len(snaps) != 1 || len(snaps[0]) != 1 {
		t.Fatalf("initial delivery wrong: %v", snaps)
	}
	if _, err := s.Create(context.Background(), store.Document{"date": "2026-01-02"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(snaps) != 2 || len(snaps[1]) != 2 {
		t.Fatalf("change delivery wrong: %v", snaps)
	}
}

func TestSubscribe_SnapshotsAreIsolatedCopies(t *testing.T) {
	s := New()
	id, err := s.Create(context.Background(), store.Document{"memo": "clean"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var delivered store.Snapshot
	cancel := s.Subscribe(func(snap store.Snapshot) { delivered = snap })
	defer cancel()

	delivered[id]["memo"] = "corrupted"
	snap, err := s.GetOnce(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snap[id]["memo"] != "clean" {
		t.Fatalf("subscriber mutated store state")
	}
}

func TestCancel_IsIdempotentAndStopsDelivery(t *testing.T) {
	s := New()
	calls := 0
	cancel := s.Subscribe(func(store.Snapshot) { calls++ })
	cancel()
	cancel()
	if _, err := s.Create(context.Background(), store.Document{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d want 1 (initial only)", calls)
	}
}

func TestContextCancellation(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Create(ctx, store.Document{}); err == nil {
		t.Fatalf("create with cancelled context must fail")
	}
}
