package store

import "sync"

// Fanout delivers snapshots to registered subscribers. Both store
// implementations share it so they honor the same cancellation contract:
// cancel blocks until any in-flight delivery to that subscriber finishes,
// and once it returns the callback never fires again.
type Fanout struct {
	mu   sync.Mutex
	subs map[int]*subscriber
	next int
}

type subscriber struct {
	mu sync.Mutex
	fn func(Snapshot)
}

func (s *subscriber) deliver(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn != nil {
		s.fn(snap)
	}
}

func (s *subscriber) cancel() {
	s.mu.Lock()
	s.fn = nil
	s.mu.Unlock()
}

func (f *Fanout) Subscribe(fn func(Snapshot)) (cancel func()) {
	sub := &subscriber{fn: fn}
	f.mu.Lock()
	if f.subs == nil {
		f.subs = map[int]*subscriber{}
	}
	id := f.next
	f.next++
	f.subs[id] = sub
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
		sub.cancel()
	}
}

// Broadcast delivers snap to every live subscriber. Each subscriber gets its
// own copy so a consumer cannot corrupt the store's state or a sibling's view.
func (f *Fanout) Broadcast(snap Snapshot) {
	f.mu.Lock()
	subs := make([]*subscriber, 0, len(f.subs))
	for _, s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, s := range subs {
		s.deliver(CloneSnapshot(snap))
	}
}

// CloneSnapshot deep-copies a snapshot down through nested field maps.
func CloneSnapshot(snap Snapshot) Snapshot {
	out := make(Snapshot, len(snap))
	for id, doc := range snap {
		out[id] = CloneDocument(doc)
	}
	return out
}

// CloneDocument deep-copies one document.
func CloneDocument(doc Document) Document {
	return cloneValue(doc).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}
