// Package store defines the document-store boundary the journal persists
// through: a keyed collection of flat field maps with full-snapshot,
// at-least-once change delivery, mirroring the realtime database the journal
// was originally backed by.
package store

import (
	"context"
	"errors"
)

// Document is the raw persisted shape of one trade: a flat field map with an
// optional nested checklist map. The store does not interpret fields.
type Document = map[string]any

// Snapshot is the full collection state keyed by document id.
type Snapshot = map[string]Document

// ErrNotFound is returned by Update when the target id is not in the store.
var ErrNotFound = errors.New("store: document not found")

// Store is the external persistence collaborator. Every change to the
// collection is followed by a full snapshot delivered to all subscribers.
type Store interface {
	// Create persists a new document and returns its generated id.
	Create(ctx context.Context, fields Document) (string, error)

	// Update merges fields into an existing document. ErrNotFound if the id
	// is absent; it never recreates a deleted document.
	Update(ctx context.Context, id string, fields Document) error

	// Delete removes a document. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// GetOnce returns the current collection state outside the subscription.
	GetOnce(ctx context.Context) (Snapshot, error)

	// Subscribe registers fn for snapshot delivery and invokes it once with
	// the current state. The returned cancel is idempotent; after it returns
	// fn is never invoked again.
	Subscribe(fn func(Snapshot)) (cancel func())
}
