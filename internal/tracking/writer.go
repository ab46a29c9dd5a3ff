package tracking

import (
	"context"
	"sync"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/platform/metrics"
	"pet-care-tracker/internal/ports/docstore"
)

const (
	opSet    = "set"
	opDelete = "delete"
)

type writeOp struct {
	op         string
	collection string
	path       docstore.Path
	id         string
	doc        any
}

// writer ejecuta las escrituras remotas en orden de emisión, en segundo plano.
// enqueue nunca bloquea; los errores se loguean y no se reintentan.
type writer struct {
	store   docstore.Store
	log     logger.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []writeOp
	pending int
	running bool
}

func newWriter(store docstore.Store, log logger.Logger, m *metrics.Metrics) *writer {
	w := &writer{store: store, log: log, metrics: m}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *writer) enqueue(op writeOp) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.queue = append(w.queue, op)
	w.pending++
	if !w.running {
		w.running = true
		go w.drain()
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			w.running = false
			w.mu.Unlock()
			return
		}
		op := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.exec(op)

		w.mu.Lock()
		w.pending--
		if w.pending == 0 {
			w.cond.Broadcast()
		}
		w.mu.Unlock()
	}
}

func (w *writer) exec(op writeOp) {
	// Sin timeout propio: los reintentos/backoff son cosa del cliente del store.
	ctx := context.Background()

	var err error
	switch op.op {
	case opSet:
		err = w.store.Set(ctx, op.path, op.id, op.doc)
	case opDelete:
		err = w.store.Delete(ctx, op.path, op.id)
	}
	if err != nil {
		w.log.Error("remote write failed", map[string]any{
			"op":         op.op,
			"collection": op.collection,
			"path":       op.path.String(),
			"doc_id":     op.id,
			"error":      err,
		})
		w.metrics.WriteFailed(op.collection, op.op)
	}
}

// flush espera a que no queden escrituras pendientes.
func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.pending > 0 {
		w.cond.Wait()
	}
}
