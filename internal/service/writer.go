package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"tradejournal/internal/journal"
	"tradejournal/internal/store"
)

// TradeWriter sequences mutations against the store. All writes funnel
// through it; nothing mutates the feed's local list directly, so the local
// view can never diverge from the store's truth.
type TradeWriter struct {
	Store  store.Store
	Feed   *TradeFeed
	Logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Add persists a new trade and returns the store-assigned id. The fields
// must already be persisted-typed (through form.Adapter). On failure nothing
// local changes; the caller's draft stays intact.
func (w *TradeWriter) Add(ctx context.Context, fields journal.TradeFields) (string, error) {
	id, err := w.Store.Create(ctx, fields.Document())
	if err != nil {
		return "", &journal.PersistenceError{Op: "add", Err: err}
	}
	if w.Logger != nil {
		w.Logger.Info("trade added", zap.String("id", id), zap.String("date", fields.Date))
	}
	return id, nil
}

// Update rewrites an existing trade. A stale id, whether detected against
// the latest snapshot or reported by the store, fails with NotFoundError so
// the caller can abort the edit instead of silently recreating the record.
func (w *TradeWriter) Update(ctx context.Context, id string, fields journal.TradeFields) error {
	unlock := w.lock(id)
	defer unlock()

	if w.Feed != nil && w.Feed.Ready() && !w.Feed.Has(id) {
		return &journal.NotFoundError{ID: id}
	}
	err := w.Store.Update(ctx, id, fields.Document())
	if errors.Is(err, store.ErrNotFound) {
		return &journal.NotFoundError{ID: id}
	}
	if err != nil {
		return &journal.PersistenceError{Op: "update", Err: err}
	}
	if w.Logger != nil {
		w.Logger.Info("trade updated", zap.String("id", id))
	}
	return nil
}

// Delete removes a trade. Deleting an id that is already gone is success;
// the caller-facing contract is idempotent.
func (w *TradeWriter) Delete(ctx context.Context, id string) error {
	unlock := w.lock(id)
	defer unlock()

	if err := w.Store.Delete(ctx, id); err != nil {
		return &journal.PersistenceError{Op: "delete", Err: err}
	}
	if w.Logger != nil {
		w.Logger.Info("trade deleted", zap.String("id", id))
	}
	return nil
}

// lock serializes mutations per record id: when two mutations race on the
// same id, the later caller observes the earlier one's final state
// (last-write-wins), while each call still returns its own outcome.
func (w *TradeWriter) lock(id string) func() {
	w.mu.Lock()
	if w.locks == nil {
		w.locks = map[string]*sync.Mutex{}
	}
	l, ok := w.locks[id]
	if !ok {
		l = &sync.Mutex{}
		w.locks[id] = l
	}
	w.mu.Unlock()
	l.Lock()
	return l.Unlock
}
