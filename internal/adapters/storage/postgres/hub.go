package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"pet-care-tracker/internal/ports/docstore"
)

// Source entrega payloads de NOTIFY. PgxSource es la implementación real.
type Source interface {
	Wait(ctx context.Context) (payload string, err error)
	Close(ctx context.Context) error
}

// PgxSource escucha NotifyChannel sobre una conexión pgx dedicada (fuera del pool).
type PgxSource struct {
	conn *pgx.Conn
}

func ListenPgx(ctx context.Context, dsn string) (*PgxSource, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres listen connect: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("postgres listen: %w", err)
	}
	return &PgxSource{conn: conn}, nil
}

func (p *PgxSource) Wait(ctx context.Context) (string, error) {
	n, err := p.conn.WaitForNotification(ctx)
	if err != nil {
		return "", err
	}
	return n.Payload, nil
}

func (p *PgxSource) Close(ctx context.Context) error { return p.conn.Close(ctx) }

// Hub reparte las notificaciones de Source a los listeners del Store por path.
type Hub struct {
	src Source

	mu     sync.Mutex
	store  *Store
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub(src Source) *Hub {
	return &Hub{src: src, done: make(chan struct{})}
}

func (h *Hub) attach(s *Store) {
	h.mu.Lock()
	h.store = s
	h.mu.Unlock()
}

// Run arranca el loop de notificaciones en segundo plano.
func (h *Hub) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	go func() {
		defer close(h.done)
		for {
			payload, err := h.src.Wait(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				if s := h.target(); s != nil {
					s.fail(fmt.Errorf("postgres notifications: %w", err))
				}
				return
			}
			if s := h.target(); s != nil {
				s.poke(docstore.Path(payload))
			}
		}
	}()
}

func (h *Hub) target() *Store {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store
}

// Close detiene el loop y cierra la conexión de LISTEN.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()
	if cancel == nil {
		return h.src.Close(ctx)
	}
	cancel()
	<-h.done
	return h.src.Close(ctx)
}
