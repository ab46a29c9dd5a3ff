package tracking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/platform/metrics"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/ports/docstore"
	"pet-care-tracker/internal/session"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrManagerClosed = errors.New("session manager closed")
	ErrNotReady      = errors.New("session not ready")
)

// DefaultReadyTimeout acota cuánto espera Acquire el primer snapshot de pets.
const DefaultReadyTimeout = 5 * time.Second

// Manager multiplexa sesiones del lado servidor: un Repository por usuario autenticado.
type Manager struct {
	store   docstore.Store
	log     logger.Logger
	metrics *metrics.Metrics

	readyTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*managedSession
	closed   bool
}

type ManagerOption func(*Manager)

func WithReadyTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.readyTimeout = d
		}
	}
}

type managedSession struct {
	sess *session.Session
	repo *Repository
}

func NewManager(store docstore.Store, log logger.Logger, m *metrics.Metrics, opts ...ManagerOption) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	mgr := &Manager{
		store:        store,
		log:          log,
		metrics:      m,
		readyTimeout: DefaultReadyTimeout,
		sessions:     make(map[string]*managedSession),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// Acquire devuelve el repositorio en marcha del usuario; lo crea en el primer uso.
// Antes de devolverlo espera la primera entrega de pets, así la lista local ya
// refleja el store. Si no llega a tiempo devuelve ErrNotReady; la sesión queda abierta.
func (m *Manager) Acquire(ctx context.Context, claims auth.Claims) (*Repository, error) {
	repo, err := m.open(claims)
	if err != nil {
		return nil, err
	}

	wctx, cancel := context.WithTimeout(ctx, m.readyTimeout)
	defer cancel()
	if err := repo.WaitReady(wctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	return repo, nil
}

func (m *Manager) open(claims auth.Claims) (*Repository, error) {
	uid := strings.TrimSpace(claims.UserID)
	if uid == "" {
		return nil, ErrInvalidInput
	}
	claims.UserID = uid

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	if ms, ok := m.sessions[uid]; ok {
		ms.sess.SignIn(claims)
		return ms.repo, nil
	}

	sess := session.NewSignedIn(claims)
	repo := New(m.store, sess,
		WithLogger(m.log.With(map[string]any{"user_id": uid})),
		WithMetrics(m.metrics),
	)
	// El repo vive más que el request que lo creó.
	repo.Start(context.Background())

	m.sessions[uid] = &managedSession{sess: sess, repo: repo}
	m.metrics.SessionOpened()
	m.log.Info("session opened", map[string]any{"user_id": uid})
	return repo, nil
}

// Release cierra la sesión del usuario (sign-out) y la olvida. Devuelve false si no existía.
func (m *Manager) Release(uid string) bool {
	uid = strings.TrimSpace(uid)

	m.mu.Lock()
	ms, ok := m.sessions[uid]
	if ok {
		delete(m.sessions, uid)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	ms.sess.SignOut()
	ms.repo.Stop()
	m.metrics.SessionClosed()
	m.log.Info("session closed", map[string]any{"user_id": uid})
	return true
}

// UserIDs lista las sesiones abiertas (orden estable).
func (m *Manager) UserIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.sessions))
	for uid := range m.sessions {
		out = append(out, uid)
	}
	sort.Strings(out)
	return out
}

// Close cierra todas las sesiones y espera sus escrituras pendientes.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	uids := make([]string, 0, len(m.sessions))
	for uid := range m.sessions {
		uids = append(uids, uid)
	}
	m.mu.Unlock()

	for _, uid := range uids {
		m.Release(uid)
	}
}
