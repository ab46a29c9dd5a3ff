// Package session guarda el estado de autenticación de una sesión explícita.
// Reemplaza al listener global de auth: quien lo necesita recibe la Session.
package session

import (
	"strings"
	"sync"

	"pet-care-tracker/internal/ports/auth"
)

// ChangeFunc recibe el uid nuevo; "" significa sesión cerrada.
type ChangeFunc func(uid string)

type Session struct {
	mu        sync.Mutex
	claims    *auth.Claims
	nextID    int
	listeners map[int]ChangeFunc
	order     []int
}

func New() *Session {
	return &Session{listeners: make(map[int]ChangeFunc)}
}

// NewSignedIn crea una sesión ya autenticada.
func NewSignedIn(c auth.Claims) *Session {
	s := New()
	s.SignIn(c)
	return s
}

func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil {
		return ""
	}
	return s.claims.UserID
}

func (s *Session) Claims() (auth.Claims, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil {
		return auth.Claims{}, false
	}
	return *s.claims, true
}

// SignIn notifica solo si cambia el usuario.
func (s *Session) SignIn(c auth.Claims) {
	c.UserID = strings.TrimSpace(c.UserID)
	if c.UserID == "" {
		s.SignOut()
		return
	}

	s.mu.Lock()
	if s.claims != nil && s.claims.UserID == c.UserID {
		s.claims = &c
		s.mu.Unlock()
		return
	}
	s.claims = &c
	fns := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c.UserID)
	}
}

func (s *Session) SignOut() {
	s.mu.Lock()
	if s.claims == nil {
		s.mu.Unlock()
		return
	}
	s.claims = nil
	fns := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn("")
	}
}

// OnChange registra fn y la llama de inmediato con el estado actual
// (como un auth-state listener). Los listeners corren en orden de registro.
func (s *Session) OnChange(fn ChangeFunc) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	uid := ""
	if s.claims != nil {
		uid = s.claims.UserID
	}
	s.mu.Unlock()

	fn(uid)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Session) snapshotListeners() []ChangeFunc {
	out := make([]ChangeFunc, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id])
	}
	return out
}
