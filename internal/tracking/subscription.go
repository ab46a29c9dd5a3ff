package tracking

import (
	"pet-care-tracker/internal/ports/docstore"
)

// subscription envuelve un listener remoto. active se lee y escribe con
// Repository.mu tomado: una entrega que llega después de remove se descarta.
type subscription struct {
	path   docstore.Path
	reg    docstore.Registration
	active bool
}

func (s *subscription) remove() {
	if s == nil {
		return
	}
	s.active = false
	if s.reg != nil {
		s.reg.Remove()
	}
}

// listen abre un listener sobre path y vuelca cada snapshot decodificado en apply.
// Se llama con r.mu tomado. Los errores de escucha se loguean y el estado queda congelado.
// settled (opcional) corre con r.mu tomado después de cada entrega, buena o mala.
func listen[T any](r *Repository, path docstore.Path, collection string, apply func([]T), settled func()) *subscription {
	if settled == nil {
		settled = func() {}
	}
	sub := &subscription{path: path, active: true}
	log := r.log.With(map[string]any{"user_id": r.uid, "path": path.String()})

	fn := func(snap docstore.Snapshot, err error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		if !sub.active {
			return
		}
		defer settled()
		if err != nil {
			log.Warn(collection+" listen failed", map[string]any{"error": err})
			r.metrics.ListenFailed(collection)
			return
		}
		items, err := docstore.Decode[T](snap)
		if err != nil {
			log.Warn(collection+" snapshot decode failed", map[string]any{"error": err})
			r.metrics.ListenFailed(collection)
			return
		}
		apply(items)
		r.metrics.SnapshotApplied(collection)
	}

	reg, err := r.store.Listen(r.ctx, path, fn)
	if err != nil {
		sub.active = false
		log.Warn(collection+" listen failed", map[string]any{"error": err})
		r.metrics.ListenFailed(collection)
		settled()
		return sub
	}
	sub.reg = reg
	return sub
}
