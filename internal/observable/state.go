// Package observable implementa un contenedor de valor "vivo": siempre tiene
// un valor actual y publica cada cambio a sus suscriptores.
package observable

import "sync"

// DefaultBuffer es el buffer por suscriptor cuando Subscribe recibe <= 0.
const DefaultBuffer = 16

// Reader es la vista de solo lectura que se entrega a los consumidores.
type Reader[T any] interface {
	Get() T
	Subscribe(buffer int) (<-chan T, func())
}

// State guarda el último valor y lo publica en orden a cada suscriptor.
// Un suscriptor lento nunca bloquea a Set: si su buffer está lleno se descarta
// el valor pendiente más antiguo (conflación, se conserva el último).
type State[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]chan T
}

func New[T any](initial T) *State[T] {
	return &State[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	for _, ch := range s.subs {
		offer(ch, v)
	}
}

// Subscribe devuelve un canal que recibe primero el valor actual y luego cada Set.
// La función devuelta cancela la suscripción y cierra el canal (idempotente).
func (s *State[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan T, buffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.value
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// offer se llama con s.mu tomado; solo este State escribe en ch.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
