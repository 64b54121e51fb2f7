// Package memstore is an in-memory Store used by tests and by dev mode runs
// that have no database at hand. It honors the full snapshot-delivery
// contract, so the journal behaves identically on top of it.
package memstore

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"tradejournal/internal/store"
)

type Store struct {
	mu     sync.Mutex
	docs   store.Snapshot
	fanout store.Fanout
}

func New() *Store {
	return &Store{docs: store.Snapshot{}}
}

func (s *Store) Create(ctx context.Context, fields store.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := ulid.Make().String()
	s.mu.Lock()
	s.docs[id] = cloneDoc(fields)
	snap := store.CloneSnapshot(s.docs)
	s.mu.Unlock()
	s.fanout.Broadcast(snap)
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, fields store.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	for k, v := range cloneDoc(fields) {
		doc[k] = v
	}
	snap := store.CloneSnapshot(s.docs)
	s.mu.Unlock()
	s.fanout.Broadcast(snap)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if _, ok := s.docs[id]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.docs, id)
	snap := store.CloneSnapshot(s.docs)
	s.mu.Unlock()
	s.fanout.Broadcast(snap)
	return nil
}

func (s *Store) GetOnce(ctx context.Context) (store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.CloneSnapshot(s.docs), nil
}

func (s *Store) Subscribe(fn func(store.Snapshot)) (cancel func()) {
	cancel = s.fanout.Subscribe(fn)
	s.mu.Lock()
	snap := store.CloneSnapshot(s.docs)
	s.mu.Unlock()
	fn(snap)
	return cancel
}

// Seed loads raw documents under fixed ids, bypassing Create. Tests use it to
// simulate records written by older schema revisions.
func (s *Store) Seed(docs store.Snapshot) {
	s.mu.Lock()
	for id, doc := range docs {
		s.docs[id] = cloneDoc(doc)
	}
	snap := store.CloneSnapshot(s.docs)
	s.mu.Unlock()
	s.fanout.Broadcast(snap)
}

func cloneDoc(doc store.Document) store.Document {
	return store.CloneDocument(doc)
}
