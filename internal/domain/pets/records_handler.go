package pets

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// recordKind describe una sub-colección de la mascota (eventos, diario, paseos).
type recordKind[T any] struct {
	list   func(Tracker) []T
	save   func(t Tracker, petID string, item T)
	remove func(t Tracker, petID string, item T)
	withID func(item T, id string) T
}

var healthEventRecords = recordKind[HealthEvent]{
	list:   func(t Tracker) []HealthEvent { return t.HealthEvents().Get() },
	save:   func(t Tracker, petID string, e HealthEvent) { t.SaveHealthEvent(petID, e) },
	remove: func(t Tracker, petID string, e HealthEvent) { t.DeleteHealthEvent(petID, e) },
	withID: func(e HealthEvent, id string) HealthEvent { e.ID = id; return e },
}

var diaryEntryRecords = recordKind[DiaryEntry]{
	list:   func(t Tracker) []DiaryEntry { return t.DiaryEntries().Get() },
	save:   func(t Tracker, petID string, e DiaryEntry) { t.SaveDiaryEntry(petID, e) },
	remove: func(t Tracker, petID string, e DiaryEntry) { t.DeleteDiaryEntry(petID, e) },
	withID: func(e DiaryEntry, id string) DiaryEntry { e.ID = id; return e },
}

var walkEntryRecords = recordKind[WalkEntry]{
	list:   func(t Tracker) []WalkEntry { return t.WalkEntries().Get() },
	save:   func(t Tracker, petID string, e WalkEntry) { t.SaveWalkEntry(petID, e) },
	remove: func(t Tracker, petID string, e WalkEntry) { t.DeleteWalkEntry(petID, e) },
	withID: func(e WalkEntry, id string) WalkEntry { e.ID = id; return e },
}

func registerRecordRoutes[T any](r chi.Router, pattern string, sessions SessionFunc, kind recordKind[T]) {
	r.Route(pattern, func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(sessions, kind))
		rr.Post("/", createRecordHandler(sessions, kind))
		rr.Put("/{recordID}", updateRecordHandler(sessions, kind))
		rr.Delete("/{recordID}", deleteRecordHandler(sessions, kind))
	})
}

// listRecordsHandler godoc
// @Summary Listar registros de la mascota activa
// @Description Eventos de salud, diario o paseos. petID debe ser la mascota activa (409 si no).
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} HealthEvent
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "pet is not the active pet"
// @Router /pets/{petID}/health-events [get]
// @Router /pets/{petID}/diary-entries [get]
// @Router /pets/{petID}/walk-entries [get]
func listRecordsHandler[T any](sessions SessionFunc, kind recordKind[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		// las listas locales solo reflejan a la mascota activa
		active := t.ActivePet().Get()
		if active == nil || active.ID != chi.URLParam(r, "petID") {
			http.Error(w, ErrPetNotActive.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, http.StatusOK, kind.list(t))
	}
}

// createRecordHandler godoc
// @Summary Crear registro
// @Description Asigna un id nuevo. Si petID es la activa, la lista local se actualiza al instante.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body HealthEvent true "Registro (el id se ignora)"
// @Success 202 {object} HealthEvent
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/health-events [post]
// @Router /pets/{petID}/diary-entries [post]
// @Router /pets/{petID}/walk-entries [post]
func createRecordHandler[T any](sessions SessionFunc, kind recordKind[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeRecord(w, r, sessions, kind, uuid.NewString())
	}
}

// updateRecordHandler godoc
// @Summary Reemplazar registro
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Param payload body HealthEvent true "Registro"
// @Success 202 {object} HealthEvent
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/health-events/{recordID} [put]
// @Router /pets/{petID}/diary-entries/{recordID} [put]
// @Router /pets/{petID}/walk-entries/{recordID} [put]
func updateRecordHandler[T any](sessions SessionFunc, kind recordKind[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeRecord(w, r, sessions, kind, chi.URLParam(r, "recordID"))
	}
}

// deleteRecordHandler godoc
// @Summary Borrar registro
// @Description Idempotente.
// @Tags records
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 202
// @Failure 401 {string} string "unauthorized"
// @Router /pets/{petID}/health-events/{recordID} [delete]
// @Router /pets/{petID}/diary-entries/{recordID} [delete]
// @Router /pets/{petID}/walk-entries/{recordID} [delete]
func deleteRecordHandler[T any](sessions SessionFunc, kind recordKind[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		var zero T
		kind.remove(t, chi.URLParam(r, "petID"), kind.withID(zero, chi.URLParam(r, "recordID")))
		w.WriteHeader(http.StatusAccepted)
	}
}

func writeRecord[T any](w http.ResponseWriter, r *http.Request, sessions SessionFunc, kind recordKind[T], id string) {
	t, ok := trackerFor(w, r, sessions)
	if !ok {
		return
	}

	petID := chi.URLParam(r, "petID")
	if _, found := t.PetByID(petID); !found {
		http.Error(w, "pet not found", http.StatusNotFound)
		return
	}

	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	item = kind.withID(item, id)
	kind.save(t, petID, item)
	writeJSON(w, http.StatusAccepted, item)
}
