package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tradejournal/internal/journal"
	"tradejournal/internal/store"
	"tradejournal/internal/store/memstore"
)

func TestWriter_AddAppearsInFeed(t *testing.T) {
	st := memstore.New()
	feed := &TradeFeed{Store: st}
	stop := feed.Start(nil)
	defer stop()

	w := &TradeWriter{Store: st, Feed: feed}
	fields := journal.TradeFields{Date: "2026-01-10", Side: journal.SideLong, Strategy: "ktr"}
	id, err := w.Add(context.Background(), fields)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id == "" {
		t.Fatalf("add must return the generated id")
	}
	if !feed.Has(id) {
		t.Fatalf("created trade missing from feed")
	}
	latest := feed.Latest()
	if len(latest) != 1 || latest[0].Strategy != "ktr" {
		t.Fatalf("feed view wrong: %+v", latest)
	}
}

func TestWriter_StaleEditFailsWithNotFound(t *testing.T) {
	st := memstore.New()
	feed := &TradeFeed{Store: st}
	stop := feed.Start(nil)
	defer stop()

	w := &TradeWriter{Store: st, Feed: feed}
	id, err := w.Add(context.Background(), journal.TradeFields{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// The record vanishes elsewhere while the edit dialog is open.
	if err := st.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = w.Update(context.Background(), id, journal.TradeFields{Date: "2026-01-11"})
	var nf *journal.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
	if nf.ID != id {
		t.Fatalf("error id=%q want %q", nf.ID, id)
	}
}

func TestWriter_UpdateWithoutFeedUsesStoreNotFound(t *testing.T) {
	w := &TradeWriter{Store: memstore.New()}
	err := w.Update(context.Background(), "ghost", journal.TradeFields{Date: "2026-01-11"})
	var nf *journal.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError from store path, got %v", err)
	}
}

func TestWriter_DeleteIsIdempotent(t *testing.T) {
	st := memstore.New()
	w := &TradeWriter{Store: st}
	id, err := w.Add(context.Background(), journal.TradeFields{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := w.Delete(context.Background(), id); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := w.Delete(context.Background(), id); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
}

func TestWriter_UpdateWins(t *testing.T) {
	st := memstore.New()
	feed := &TradeFeed{Store: st}
	stop := feed.Start(nil)
	defer stop()

	w := &TradeWriter{Store: st, Feed: feed}
	id, err := w.Add(context.Background(), journal.TradeFields{Date: "2026-01-10", Memo: "v1"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := w.Update(context.Background(), id, journal.TradeFields{Date: "2026-01-10", Memo: "v2"}); err != nil {
		t.Fatalf("update 1: %v", err)
	}
	if err := w.Update(context.Background(), id, journal.TradeFields{Date: "2026-01-10", Memo: "v3"}); err != nil {
		t.Fatalf("update 2: %v", err)
	}
	latest := feed.Latest()
	if len(latest) != 1 || latest[0].Memo != "v3" {
		t.Fatalf("last write must win: %+v", latest)
	}
}

// failStore rejects every write; reads see an empty collection.
type failStore struct{}

func (failStore) Create(context.Context, store.Document) (string, error) {
	return "", fmt.Errorf("connection reset")
}
func (failStore) Update(context.Context, string, store.Document) error {
	return fmt.Errorf("connection reset")
}
func (failStore) Delete(context.Context, string) error {
	return fmt.Errorf("connection reset")
}
func (failStore) GetOnce(context.Context) (store.Snapshot, error) {
	return store.Snapshot{}, nil
}
func (failStore) Subscribe(fn func(store.Snapshot)) func() {
	fn(store.Snapshot{})
	return func() {}
}

func TestWriter_StoreFailuresSurfaceAsPersistenceErrors(t *testing.T) {
	w := &TradeWriter{Store: failStore{}}

	_, err := w.Add(context.Background(), journal.TradeFields{Date: "2026-01-10"})
	var pe *journal.PersistenceError
	if !errors.As(err, &pe) || pe.Op != "add" {
		t.Fatalf("add: want PersistenceError(add), got %v", err)
	}

	err = w.Delete(context.Background(), "any")
	if !errors.As(err, &pe) || pe.Op != "delete" {
		t.Fatalf("delete: want PersistenceError(delete), got %v", err)
	}
}
