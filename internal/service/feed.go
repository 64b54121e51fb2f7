package service

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"tradejournal/internal/journal"
	"tradejournal/internal/store"
)

// TradeFeed owns the live view of the trade collection. It subscribes to the
// store, sanitizes every document of every snapshot, and hands consumers an
// ordered list. The store is the single source of truth; the feed is a
// read-only projection of its last snapshot.
type TradeFeed struct {
	Store  store.Store
	Logger *zap.Logger

	mu     sync.Mutex
	latest []journal.TradeRecord
	ids    map[string]struct{}
	primed bool
}

// Start registers one listener with the store and invokes onUpdate with the
// sanitized, newest-first list on every snapshot, including the initial one.
// The returned stop is idempotent; after it returns, onUpdate never fires
// again.
func (f *TradeFeed) Start(onUpdate func([]journal.TradeRecord)) (stop func()) {
	return f.Store.Subscribe(func(snap store.Snapshot) {
		records := f.reconcile(snap)
		if onUpdate != nil {
			onUpdate(records)
		}
	})
}

func (f *TradeFeed) reconcile(snap store.Snapshot) []journal.TradeRecord {
	// Never nil: an empty store yields an empty list. A malformed document
	// degrades to defaults inside Sanitize instead of dropping the snapshot.
	records := make([]journal.TradeRecord, 0, len(snap))
	ids := make(map[string]struct{}, len(snap))
	for id, doc := range snap {
		records = append(records, journal.Sanitize(id, doc))
		ids[id] = struct{}{}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].ID > records[j].ID
	})

	f.mu.Lock()
	f.latest = records
	f.ids = ids
	f.primed = true
	f.mu.Unlock()

	if f.Logger != nil {
		f.Logger.Debug("snapshot reconciled", zap.Int("records", len(records)))
	}
	return records
}

// Ready reports whether at least one snapshot has been reconciled.
func (f *TradeFeed) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.primed
}

// Has reports whether id was present in the most recent snapshot. Callers
// use it to detect that a record under edit was removed elsewhere.
func (f *TradeFeed) Has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

// Latest returns a copy of the most recent sanitized list.
func (f *TradeFeed) Latest() []journal.TradeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]journal.TradeRecord, len(f.latest))
	copy(out, f.latest)
	return out
}
