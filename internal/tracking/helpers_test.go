package tracking

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"pet-care-tracker/internal/ports/docstore"
)

// -------------------------
// Store manual (determinista)
// -------------------------

// manualStore guarda los listeners y deja que el test emita snapshots cuando quiera.
type manualStore struct {
	mu        sync.Mutex
	listeners map[docstore.Path][]*manualReg
	writes    []recordedWrite
	failWith  error

	// initial: cada Listen entrega un snapshot vacío en otra goroutine, como un store real.
	initial bool
}

type recordedWrite struct {
	op   string
	path docstore.Path
	id   string
}

type manualReg struct {
	store   *manualStore
	path    docstore.Path
	fn      docstore.Listener
	removed bool
}

func newManualStore() *manualStore {
	return &manualStore{listeners: map[docstore.Path][]*manualReg{}}
}

func newSeededStore() *manualStore {
	s := newManualStore()
	s.initial = true
	return s
}

func (s *manualStore) Set(ctx context.Context, path docstore.Path, id string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, recordedWrite{op: opSet, path: path, id: id})
	return s.failWith
}

func (s *manualStore) Delete(ctx context.Context, path docstore.Path, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, recordedWrite{op: opDelete, path: path, id: id})
	return s.failWith
}

func (s *manualStore) Listen(ctx context.Context, path docstore.Path, fn docstore.Listener) (docstore.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := &manualReg{store: s, path: path, fn: fn}
	s.listeners[path] = append(s.listeners[path], reg)
	if s.initial {
		go fn(docstore.Snapshot{Path: path}, nil)
	}
	return reg, nil
}

func (r *manualReg) Remove() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.removed = true
}

// active cuenta listeners no removidos en path.
func (s *manualStore) active(path docstore.Path) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.listeners[path] {
		if !r.removed {
			n++
		}
	}
	return n
}

func (s *manualStore) recorded() []recordedWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedWrite(nil), s.writes...)
}

// emit entrega el snapshot a los listeners vivos de path.
func (s *manualStore) emit(t *testing.T, path docstore.Path, items ...any) {
	t.Helper()
	s.deliver(t, path, false, nil, items...)
}

// emitStale entrega también a listeners ya removidos (entrega en vuelo).
func (s *manualStore) emitStale(t *testing.T, path docstore.Path, items ...any) {
	t.Helper()
	s.deliver(t, path, true, nil, items...)
}

func (s *manualStore) emitError(t *testing.T, path docstore.Path, err error) {
	t.Helper()
	s.deliver(t, path, false, err)
}

func (s *manualStore) deliver(t *testing.T, path docstore.Path, includeRemoved bool, err error, items ...any) {
	t.Helper()

	snap := docstore.Snapshot{Path: path}
	for _, it := range items {
		b, mErr := json.Marshal(it)
		if mErr != nil {
			t.Fatalf("marshal: %v", mErr)
		}
		var head struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(b, &head)
		snap.Documents = append(snap.Documents, docstore.Document{ID: head.ID, Data: b})
	}

	s.mu.Lock()
	var targets []*manualReg
	for _, r := range s.listeners[path] {
		if includeRemoved || !r.removed {
			targets = append(targets, r)
		}
	}
	s.mu.Unlock()

	for _, r := range targets {
		r.fn(snap, err)
	}
}
