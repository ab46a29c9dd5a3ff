package memory

import (
	"context"
	"encoding/json"
	"sync"

	"pet-care-tracker/internal/ports/docstore"
)

// Store es un docstore en memoria con listeners vivos. Sirve para dev y tests.
type Store struct {
	mu        sync.RWMutex
	byPath    map[docstore.Path]map[string]json.RawMessage
	listeners map[docstore.Path]map[int]*listener
	nextID    int
	closed    bool
}

func NewStore() *Store {
	return &Store{
		byPath:    make(map[docstore.Path]map[string]json.RawMessage),
		listeners: make(map[docstore.Path]map[int]*listener),
	}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Set(ctx context.Context, path docstore.Path, id string, doc any) error {
	if err := docstore.CheckWrite(path, id); err != nil {
		return err
	}
	raw, err := docstore.Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return docstore.ErrClosed
	}
	docs, ok := s.byPath[path]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.byPath[path] = docs
	}
	docs[id] = append(json.RawMessage(nil), raw...)
	ls := s.listenersOf(path)
	s.mu.Unlock()

	for _, l := range ls {
		l.poke()
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path docstore.Path, id string) error {
	if err := docstore.CheckWrite(path, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return docstore.ErrClosed
	}
	docs := s.byPath[path]
	if _, exists := docs[id]; !exists {
		// idempotente: nada que notificar
		s.mu.Unlock()
		return nil
	}
	delete(docs, id)
	ls := s.listenersOf(path)
	s.mu.Unlock()

	for _, l := range ls {
		l.poke()
	}
	return nil
}

func (s *Store) Listen(ctx context.Context, path docstore.Path, fn docstore.Listener) (docstore.Registration, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, docstore.ErrClosed
	}
	id := s.nextID
	s.nextID++
	l := &listener{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	l.remove = func() {
		s.mu.Lock()
		delete(s.listeners[path], id)
		s.mu.Unlock()
	}
	if s.listeners[path] == nil {
		s.listeners[path] = make(map[int]*listener)
	}
	s.listeners[path][id] = l
	s.mu.Unlock()

	// snapshot inicial
	l.poke()

	go func() {
		for {
			select {
			case <-l.done:
				return
			case <-ctx.Done():
				l.Remove()
				return
			case <-l.notify:
			}

			snap := s.Snapshot(path)
			select {
			case <-l.done:
				return
			default:
			}
			fn(snap, nil)
		}
	}()

	return l, nil
}

// Snapshot devuelve la colección actual ordenada por id.
func (s *Store) Snapshot(path docstore.Path) docstore.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.byPath[path]
	out := make([]docstore.Document, 0, len(docs))
	for id, raw := range docs {
		out = append(out, docstore.Document{ID: id, Data: append(json.RawMessage(nil), raw...)})
	}
	docstore.SortDocuments(out)
	return docstore.Snapshot{Path: path, Documents: out}
}

// Close corta todos los listeners; las escrituras posteriores fallan con ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	var all []*listener
	for _, m := range s.listeners {
		for _, l := range m {
			all = append(all, l)
		}
	}
	s.mu.Unlock()

	for _, l := range all {
		l.Remove()
	}
	return nil
}

// Debe llamarse con s.mu tomado.
func (s *Store) listenersOf(path docstore.Path) []*listener {
	m := s.listeners[path]
	out := make([]*listener, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	return out
}

type listener struct {
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
	remove func()
}

// poke no bloquea: si ya hay un aviso pendiente, el próximo snapshot lo cubre.
func (l *listener) poke() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *listener) Remove() {
	l.once.Do(func() {
		close(l.done)
		l.remove()
	})
}
