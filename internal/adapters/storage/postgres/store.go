package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"pet-care-tracker/internal/ports/docstore"
)

// Store guarda documentos en la tabla documents y avisa cambios con pg_notify.
//
// Los listeners se despiertan por dos vías: las escrituras hechas por este
// mismo Store, y las notificaciones que trae el Hub (otras instancias).
type Store struct {
	db  *sql.DB
	hub *Hub

	mu        sync.Mutex
	listeners map[docstore.Path]map[*listener]struct{}
	closed    bool
}

var _ docstore.Store = (*Store)(nil)

// NewStore: hub puede ser nil (sin LISTEN; solo se ven los cambios locales).
func NewStore(db *sql.DB, hub *Hub) *Store {
	s := &Store{
		db:        db,
		hub:       hub,
		listeners: make(map[docstore.Path]map[*listener]struct{}),
	}
	if hub != nil {
		hub.attach(s)
	}
	return s
}

func (s *Store) Set(ctx context.Context, path docstore.Path, id string, doc any) error {
	if err := docstore.CheckWrite(path, id); err != nil {
		return err
	}
	if s.isClosed() {
		return docstore.ErrClosed
	}
	raw, err := docstore.Encode(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		WITH up AS (
			INSERT INTO documents (collection, id, body, updated_at)
			VALUES ($1, $2, $3::jsonb, now())
			ON CONFLICT (collection, id) DO UPDATE
			SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
			RETURNING collection
		)
		SELECT pg_notify('`+NotifyChannel+`', collection) FROM up
	`, path.String(), id, string(raw))
	if err != nil {
		return fmt.Errorf("postgres set %s/%s: %w", path, id, err)
	}

	s.poke(path)
	return nil
}

func (s *Store) Delete(ctx context.Context, path docstore.Path, id string) error {
	if err := docstore.CheckWrite(path, id); err != nil {
		return err
	}
	if s.isClosed() {
		return docstore.ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `
		WITH del AS (
			DELETE FROM documents
			WHERE collection = $1 AND id = $2
			RETURNING collection
		)
		SELECT pg_notify('`+NotifyChannel+`', collection) FROM del
	`, path.String(), id)
	if err != nil {
		return fmt.Errorf("postgres delete %s/%s: %w", path, id, err)
	}

	// id ausente: no hay cambio que avisar
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}
	s.poke(path)
	return nil
}

// Load lee la colección completa ordenada por id.
func (s *Store) Load(ctx context.Context, path docstore.Path) (docstore.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, body
		FROM documents
		WHERE collection = $1
		ORDER BY id ASC
	`, path.String())
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("postgres load %s: %w", path, err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return docstore.Snapshot{}, fmt.Errorf("postgres load %s: %w", path, err)
		}
		docs = append(docs, docstore.Document{ID: id, Data: json.RawMessage(body)})
	}
	if err := rows.Err(); err != nil {
		return docstore.Snapshot{}, fmt.Errorf("postgres load %s: %w", path, err)
	}
	return docstore.Snapshot{Path: path, Documents: docs}, nil
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
	lctx, cancel := context.WithCancel(ctx)
	l := &listener{
		store:  s,
		path:   path,
		fn:     fn,
		cancel: cancel,
		notify: make(chan struct{}, 1),
		errs:   make(chan error, 1),
	}
	if s.listeners[path] == nil {
		s.listeners[path] = make(map[*listener]struct{})
	}
	s.listeners[path][l] = struct{}{}
	s.mu.Unlock()

	l.poke()
	go l.run(lctx)
	return l, nil
}

// Close corta los listeners. No cierra db: lo abre y lo cierra quien lo creó.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	var all []*listener
	for _, m := range s.listeners {
		for l := range m {
			all = append(all, l)
		}
	}
	s.mu.Unlock()

	for _, l := range all {
		l.Remove()
	}
	return nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Store) poke(path docstore.Path) {
	for _, l := range s.listenersOf(path) {
		l.poke()
	}
}

// fail entrega err a todos los listeners (se corta la conexión de LISTEN).
func (s *Store) fail(err error) {
	s.mu.Lock()
	var all []*listener
	for _, m := range s.listeners {
		for l := range m {
			all = append(all, l)
		}
	}
	s.mu.Unlock()

	for _, l := range all {
		select {
		case l.errs <- err:
		default:
		}
	}
}

func (s *Store) listenersOf(path docstore.Path) []*listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*listener, 0, len(s.listeners[path]))
	for l := range s.listeners[path] {
		out = append(out, l)
	}
	return out
}

type listener struct {
	store  *Store
	path   docstore.Path
	fn     docstore.Listener
	cancel context.CancelFunc
	notify chan struct{}
	errs   chan error
	once   sync.Once
}

func (l *listener) poke() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *listener) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.Remove()
			return
		case err := <-l.errs:
			if ctx.Err() == nil {
				l.fn(docstore.Snapshot{Path: l.path}, err)
			}
			// el estado queda congelado: no hay más entregas
			l.Remove()
			return
		case <-l.notify:
		}

		snap, err := l.store.Load(ctx, l.path)
		if ctx.Err() != nil {
			l.Remove()
			return
		}
		l.fn(snap, err)
	}
}

func (l *listener) Remove() {
	l.once.Do(func() {
		l.cancel()
		l.store.mu.Lock()
		delete(l.store.listeners[l.path], l)
		l.store.mu.Unlock()
	})
}
