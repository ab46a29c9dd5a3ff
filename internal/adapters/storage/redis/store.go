// Package redis implementa docstore.Store sobre Redis: un hash por colección y
// PUBLISH por cada cambio para despertar a los listeners.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"

	"pet-care-tracker/internal/ports/docstore"
)

const DefaultPrefix = "petcare:"

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type Store struct {
	rdb    *redis.Client
	prefix string

	mu     sync.Mutex
	regs   map[*registration]struct{}
	closed bool
}

var _ docstore.Store = (*Store)(nil)

// NewClient arma el cliente a partir de la config (no conecta todavía).
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Open conecta y verifica con PING.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	rdb := NewClient(cfg)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewStore(rdb, cfg.Prefix), nil
}

func NewStore(rdb *redis.Client, prefix string) *Store {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		rdb:    rdb,
		prefix: prefix,
		regs:   make(map[*registration]struct{}),
	}
}

func (s *Store) hashKey(path docstore.Path) string {
	return s.prefix + "docs:" + path.String()
}

func (s *Store) channel(path docstore.Path) string {
	return s.prefix + "changes:" + path.String()
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
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

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.hashKey(path), id, string(raw))
		pipe.Publish(ctx, s.channel(path), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s/%s: %w", path, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path docstore.Path, id string) error {
	if err := docstore.CheckWrite(path, id); err != nil {
		return err
	}
	if s.isClosed() {
		return docstore.ErrClosed
	}

	n, err := s.rdb.HDel(ctx, s.hashKey(path), id).Result()
	if err != nil {
		return fmt.Errorf("redis delete %s/%s: %w", path, id, err)
	}
	if n == 0 {
		return nil
	}
	if err := s.rdb.Publish(ctx, s.channel(path), id).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", path, err)
	}
	return nil
}

// Load lee la colección completa ordenada por id.
func (s *Store) Load(ctx context.Context, path docstore.Path) (docstore.Snapshot, error) {
	m, err := s.rdb.HGetAll(ctx, s.hashKey(path)).Result()
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("redis load %s: %w", path, err)
	}
	docs := make([]docstore.Document, 0, len(m))
	for id, body := range m {
		docs = append(docs, docstore.Document{ID: id, Data: json.RawMessage(body)})
	}
	docstore.SortDocuments(docs)
	return docstore.Snapshot{Path: path, Documents: docs}, nil
}

// Listen registra el listener y vuelve sin tocar la red. La goroutine del
// listener se suscribe al canal antes de leer la colección, así ningún cambio
// queda entre la carga inicial y la suscripción. Si la suscripción falla el
// error llega por fn.
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
	reg := &registration{store: s, cancel: cancel}
	s.regs[reg] = struct{}{}
	s.mu.Unlock()

	go s.run(lctx, path, fn)
	return reg, nil
}

func (s *Store) run(ctx context.Context, path docstore.Path, fn docstore.Listener) {
	ps := s.rdb.Subscribe(ctx, s.channel(path))
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		if ctx.Err() == nil {
			fn(docstore.Snapshot{}, fmt.Errorf("redis subscribe %s: %w", path, err))
		}
		return
	}

	deliver := func() {
		snap, err := s.Load(ctx, path)
		if ctx.Err() != nil {
			return
		}
		fn(snap, err)
	}

	deliver()

	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-msgs:
			if !ok {
				return
			}
			// varios avisos seguidos se cubren con una sola recarga
			drain(msgs)
			deliver()
		}
	}
}

func drain(msgs <-chan *redis.Message) {
	for {
		select {
		case _, ok := <-msgs:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Close corta los listeners y cierra el cliente.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	regs := make([]*registration, 0, len(s.regs))
	for r := range s.regs {
		regs = append(regs, r)
	}
	s.mu.Unlock()

	for _, r := range regs {
		r.Remove()
	}
	return s.rdb.Close()
}

type registration struct {
	store  *Store
	cancel context.CancelFunc
	once   sync.Once
}

func (r *registration) Remove() {
	r.once.Do(func() {
		r.cancel()
		r.store.mu.Lock()
		delete(r.store.regs, r)
		r.store.mu.Unlock()
	})
}
