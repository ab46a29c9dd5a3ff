// Package tracking mantiene el estado local observable de una sesión sincronizado
// con el store de documentos remoto del usuario.
package tracking

import (
	"context"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/reminders"
	"pet-care-tracker/internal/observable"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/platform/metrics"
	"pet-care-tracker/internal/ports/docstore"
	"pet-care-tracker/internal/session"
)

// Repository es la única fuente de verdad de las listas de una sesión.
//
// Todas las mutaciones (llamadas de la API y snapshots remotos) pasan por mu,
// en una sola secuencia lógica. Las escrituras remotas salen después del cambio
// local y no se esperan. Un snapshot lento puede pisar una edición optimista
// más nueva: no hay token de versión (race conocido y aceptado).
type Repository struct {
	store   docstore.Store
	sess    *session.Session
	log     logger.Logger
	metrics *metrics.Metrics
	writer  *writer

	mu         sync.Mutex
	ctx        context.Context
	uid        string
	started    bool
	cancelAuth func()

	// ready se cierra con la primera entrega de pets (snapshot o error) de la sesión actual.
	ready chan struct{}

	petsSub      *subscription
	remindersSub *subscription
	healthSub    *subscription
	diarySub     *subscription
	walkSub      *subscription

	pets         *observable.State[[]pets.Pet]
	activePet    *observable.State[*pets.Pet]
	healthEvents *observable.State[[]pets.HealthEvent]
	diaryEntries *observable.State[[]pets.DiaryEntry]
	walkEntries  *observable.State[[]pets.WalkEntry]
	reminders    *observable.State[[]reminders.Reminder]
}

type Option func(*Repository)

func WithLogger(l logger.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

func New(store docstore.Store, sess *session.Session, opts ...Option) *Repository {
	r := &Repository{
		store:        store,
		sess:         sess,
		log:          logger.NewNop(),
		ctx:          context.Background(),
		pets:         observable.New([]pets.Pet{}),
		activePet:    observable.New[*pets.Pet](nil),
		healthEvents: observable.New([]pets.HealthEvent{}),
		diaryEntries: observable.New([]pets.DiaryEntry{}),
		walkEntries:  observable.New([]pets.WalkEntry{}),
		reminders:    observable.New([]reminders.Reminder{}),
	}
	r.ready = make(chan struct{})
	close(r.ready)
	for _, opt := range opts {
		opt(r)
	}
	r.writer = newWriter(store, r.log, r.metrics)
	return r
}

// Start engancha el repositorio al ciclo de vida de la sesión. Si la sesión ya
// está autenticada, las suscripciones se abren de inmediato.
func (r *Repository) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.ctx = ctx
	r.mu.Unlock()

	cancel := r.sess.OnChange(r.onAuthChange)

	r.mu.Lock()
	r.cancelAuth = cancel
	r.mu.Unlock()
}

// Stop corta todas las suscripciones, resetea el estado y espera las escrituras pendientes.
func (r *Repository) Stop() {
	r.mu.Lock()
	cancel := r.cancelAuth
	r.cancelAuth = nil
	r.started = false
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	r.mu.Lock()
	r.teardownLocked()
	r.uid = ""
	r.mu.Unlock()

	r.Flush()
}

// Flush espera a que terminen las escrituras remotas ya emitidas.
func (r *Repository) Flush() { r.writer.flush() }

func (r *Repository) UserID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uid
}

func (r *Repository) Pets() observable.Reader[[]pets.Pet]                 { return r.pets }
func (r *Repository) ActivePet() observable.Reader[*pets.Pet]             { return r.activePet }
func (r *Repository) HealthEvents() observable.Reader[[]pets.HealthEvent] { return r.healthEvents }
func (r *Repository) DiaryEntries() observable.Reader[[]pets.DiaryEntry]  { return r.diaryEntries }
func (r *Repository) WalkEntries() observable.Reader[[]pets.WalkEntry]    { return r.walkEntries }
func (r *Repository) Reminders() observable.Reader[[]reminders.Reminder]  { return r.reminders }

// WaitReady espera la primera entrega de pets del usuario actual, o ctx.
// Sin sesión vuelve enseguida.
func (r *Repository) WaitReady(ctx context.Context) error {
	r.mu.Lock()
	ch := r.ready
	r.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Repository) markReadyLocked() {
	select {
	case <-r.ready:
	default:
		close(r.ready)
	}
}

// PetByID busca en la lista local actual.
func (r *Repository) PetByID(id string) (pets.Pet, bool) {
	for _, p := range r.pets.Get() {
		if p.ID == id {
			return p, true
		}
	}
	return pets.Pet{}, false
}

func (r *Repository) onAuthChange(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if uid == r.uid {
		return
	}
	if r.uid != "" {
		r.teardownLocked()
	}
	r.uid = uid
	if uid == "" {
		r.log.Info("session signed out, state cleared", nil)
		return
	}

	r.log.Info("session signed in, subscribing", map[string]any{"user_id": uid})
	r.ready = make(chan struct{})
	r.petsSub = listen(r, docstore.PetsPath(uid), docstore.CollectionPets, r.applyPetsLocked, r.markReadyLocked)
	r.remindersSub = listen(r, docstore.RemindersPath(uid), docstore.CollectionReminders, func(items []reminders.Reminder) {
		r.reminders.Set(items)
	}, nil)
}

// applyPetsLocked reemplaza la lista completa y revisa la mascota activa:
// si no hay activa, o ya no está en la lista, se promueve la primera (o nil).
// Si sigue presente se refresca su valor sin re-suscribir.
func (r *Repository) applyPetsLocked(items []pets.Pet) {
	r.pets.Set(items)

	current := r.activePet.Get()
	if current == nil {
		if len(items) > 0 {
			r.setActivePetLocked(&items[0])
		}
		return
	}

	for i := range items {
		if items[i].ID == current.ID {
			if items[i] != *current {
				p := items[i]
				r.activePet.Set(&p)
			}
			return
		}
	}

	if len(items) > 0 {
		r.setActivePetLocked(&items[0])
		return
	}
	r.setActivePetLocked(nil)
}

// SetActivePet cambia la mascota activa; nil la deja sin seleccionar.
func (r *Repository) SetActivePet(p *pets.Pet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setActivePetLocked(p)
}

// setActivePetLocked: primero se cortan y vacían las tres sub-listas, después
// se abren las nuevas. Ningún dato de la mascota nueva llega antes del vaciado.
func (r *Repository) setActivePetLocked(p *pets.Pet) {
	var next *pets.Pet
	if p != nil {
		cp := *p
		next = &cp
	}
	r.activePet.Set(next)

	r.healthSub.remove()
	r.diarySub.remove()
	r.walkSub.remove()
	r.healthSub, r.diarySub, r.walkSub = nil, nil, nil

	r.healthEvents.Set([]pets.HealthEvent{})
	r.diaryEntries.Set([]pets.DiaryEntry{})
	r.walkEntries.Set([]pets.WalkEntry{})

	if next == nil || r.uid == "" {
		return
	}
	uid, petID := r.uid, next.ID
	r.healthSub = listen(r, docstore.PetSubPath(uid, petID, docstore.CollectionHealthEvents), docstore.CollectionHealthEvents, func(items []pets.HealthEvent) {
		r.healthEvents.Set(items)
	}, nil)
	r.diarySub = listen(r, docstore.PetSubPath(uid, petID, docstore.CollectionDiaryEntries), docstore.CollectionDiaryEntries, func(items []pets.DiaryEntry) {
		r.diaryEntries.Set(items)
	}, nil)
	r.walkSub = listen(r, docstore.PetSubPath(uid, petID, docstore.CollectionWalkEntries), docstore.CollectionWalkEntries, func(items []pets.WalkEntry) {
		r.walkEntries.Set(items)
	}, nil)
}

// teardownLocked corta todo y deja cada observable en su valor vacío.
func (r *Repository) teardownLocked() {
	for _, s := range []*subscription{r.petsSub, r.remindersSub, r.healthSub, r.diarySub, r.walkSub} {
		s.remove()
	}
	r.petsSub, r.remindersSub, r.healthSub, r.diarySub, r.walkSub = nil, nil, nil, nil, nil

	r.pets.Set([]pets.Pet{})
	r.activePet.Set(nil)
	r.healthEvents.Set([]pets.HealthEvent{})
	r.diaryEntries.Set([]pets.DiaryEntry{})
	r.walkEntries.Set([]pets.WalkEntry{})
	r.reminders.Set([]reminders.Reminder{})
	r.markReadyLocked()
}

// -------------------------
// Pets
// -------------------------

func (r *Repository) SavePet(p pets.Pet) {
	p = p.EnsureID()

	r.mu.Lock()
	uid := r.uid
	if uid == "" {
		r.mu.Unlock()
		return
	}
	r.pets.Set(upsertByID(r.pets.Get(), p, petKey))
	r.mu.Unlock()

	r.writer.enqueue(writeOp{op: opSet, collection: docstore.CollectionPets, path: docstore.PetsPath(uid), id: p.ID, doc: p})
}

// DeletePet no borra las sub-colecciones de la mascota en el store.
func (r *Repository) DeletePet(p pets.Pet) {
	if strings.TrimSpace(p.ID) == "" {
		return
	}

	r.mu.Lock()
	uid := r.uid
	if uid == "" {
		r.mu.Unlock()
		return
	}
	r.pets.Set(removeByID(r.pets.Get(), p.ID, petKey))
	r.mu.Unlock()

	r.writer.enqueue(writeOp{op: opDelete, collection: docstore.CollectionPets, path: docstore.PetsPath(uid), id: p.ID})
}

// -------------------------
// Sub-colecciones de la mascota
// -------------------------

func (r *Repository) SaveHealthEvent(petID string, e pets.HealthEvent) {
	e = e.EnsureID()
	saveSub(r, petID, docstore.CollectionHealthEvents, r.healthEvents, e, e.ID, healthKey)
}

func (r *Repository) DeleteHealthEvent(petID string, e pets.HealthEvent) {
	deleteSub(r, petID, docstore.CollectionHealthEvents, r.healthEvents, e.ID, healthKey)
}

func (r *Repository) SaveDiaryEntry(petID string, e pets.DiaryEntry) {
	e = e.EnsureID()
	saveSub(r, petID, docstore.CollectionDiaryEntries, r.diaryEntries, e, e.ID, diaryKey)
}

func (r *Repository) DeleteDiaryEntry(petID string, e pets.DiaryEntry) {
	deleteSub(r, petID, docstore.CollectionDiaryEntries, r.diaryEntries, e.ID, diaryKey)
}

func (r *Repository) SaveWalkEntry(petID string, e pets.WalkEntry) {
	e = e.EnsureID()
	saveSub(r, petID, docstore.CollectionWalkEntries, r.walkEntries, e, e.ID, walkKey)
}

func (r *Repository) DeleteWalkEntry(petID string, e pets.WalkEntry) {
	deleteSub(r, petID, docstore.CollectionWalkEntries, r.walkEntries, e.ID, walkKey)
}

// saveSub: la lista local solo refleja a la mascota activa, así que el upsert
// optimista se aplica solo si petID es la activa. La escritura remota sale igual.
func saveSub[T any](r *Repository, petID, collection string, list *observable.State[[]T], item T, id string, key func(T) string) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return
	}

	r.mu.Lock()
	uid := r.uid
	if uid == "" {
		r.mu.Unlock()
		return
	}
	if r.isActiveLocked(petID) {
		list.Set(upsertByID(list.Get(), item, key))
	}
	r.mu.Unlock()

	r.writer.enqueue(writeOp{op: opSet, collection: collection, path: docstore.PetSubPath(uid, petID, collection), id: id, doc: item})
}

func deleteSub[T any](r *Repository, petID, collection string, list *observable.State[[]T], id string, key func(T) string) {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.TrimSpace(id) == "" {
		return
	}

	r.mu.Lock()
	uid := r.uid
	if uid == "" {
		r.mu.Unlock()
		return
	}
	if r.isActiveLocked(petID) {
		list.Set(removeByID(list.Get(), id, key))
	}
	r.mu.Unlock()

	r.writer.enqueue(writeOp{op: opDelete, collection: collection, path: docstore.PetSubPath(uid, petID, collection), id: id})
}

func (r *Repository) isActiveLocked(petID string) bool {
	a := r.activePet.Get()
	return a != nil && a.ID == petID
}

// -------------------------
// Reminders (por cuenta)
// -------------------------

func (r *Repository) SaveReminder(rem reminders.Reminder) {
	rem = rem.EnsureID()

	r.mu.Lock()
	uid := r.uid
	if uid == "" {
		r.mu.Unlock()
		return
	}
	r.reminders.Set(upsertByID(r.reminders.Get(), rem, reminderKey))
	r.mu.Unlock()

	r.writer.enqueue(writeOp{op: opSet, collection: docstore.CollectionReminders, path: docstore.RemindersPath(uid), id: rem.ID, doc: rem})
}

func (r *Repository) DeleteReminder(rem reminders.Reminder) {
	if strings.TrimSpace(rem.ID) == "" {
		return
	}

	r.mu.Lock()
	uid := r.uid
	if uid == "" {
		r.mu.Unlock()
		return
	}
	r.reminders.Set(removeByID(r.reminders.Get(), rem.ID, reminderKey))
	r.mu.Unlock()

	r.writer.enqueue(writeOp{op: opDelete, collection: docstore.CollectionReminders, path: docstore.RemindersPath(uid), id: rem.ID})
}

// -------------------------
// helpers
// -------------------------

func petKey(p pets.Pet) string                { return p.ID }
func healthKey(e pets.HealthEvent) string     { return e.ID }
func diaryKey(e pets.DiaryEntry) string       { return e.ID }
func walkKey(e pets.WalkEntry) string         { return e.ID }
func reminderKey(r reminders.Reminder) string { return r.ID }

// upsertByID reemplaza el elemento con el mismo id o lo agrega al final.
// Nunca modifica list: los consumidores pueden estar leyéndola.
func upsertByID[T any](list []T, item T, key func(T) string) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	id := key(item)
	for i := range out {
		if key(out[i]) == id {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

func removeByID[T any](list []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, it := range list {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}
