package reminders

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/observable"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Tracker interface {
	Reminders() observable.Reader[[]Reminder]
	SaveReminder(r Reminder)
	DeleteReminder(r Reminder)
}

type SessionFunc func(ctx context.Context, claims auth.Claims) (Tracker, error)

func RegisterRoutes(r chi.Router, sessions SessionFunc) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(sessions))
		rr.Post("/", createReminderHandler(sessions))
		rr.Put("/{reminderID}", updateReminderHandler(sessions))
		rr.Delete("/{reminderID}", deleteReminderHandler(sessions))
		rr.Patch("/{reminderID}/enabled", toggleReminderHandler(sessions))
	})
}

type reminderRequest struct {
	Title   string `json:"title"`
	Time    string `json:"time"`
	Enabled *bool  `json:"enabled"` // omitido = habilitado
}

func (req reminderRequest) toReminder(id string) Reminder {
	rem := NewReminder()
	rem.ID = id
	rem.Title = strings.TrimSpace(req.Title)
	rem.Time = strings.TrimSpace(req.Time)
	if req.Enabled != nil {
		rem.Enabled = *req.Enabled
	}
	return rem
}

type enabledRequest struct {
	Enabled bool `json:"enabled"`
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Reminder
// @Failure 401 {string} string "unauthorized"
// @Router /reminders [get]
func listRemindersHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, t.Reminders().Get())
	}
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Description Habilitado por defecto si no se manda enabled.
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body reminderRequest true "Recordatorio"
// @Success 202 {object} Reminder
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Router /reminders [post]
func createReminderHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saveReminder(w, r, sessions, uuid.NewString())
	}
}

// updateReminderHandler godoc
// @Summary Reemplazar recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body reminderRequest true "Recordatorio"
// @Success 202 {object} Reminder
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/{reminderID} [put]
func updateReminderHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saveReminder(w, r, sessions, chi.URLParam(r, "reminderID"))
	}
}

func saveReminder(w http.ResponseWriter, r *http.Request, sessions SessionFunc, id string) {
	t, ok := trackerFor(w, r, sessions)
	if !ok {
		return
	}

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	rem := req.toReminder(id)
	t.SaveReminder(rem)
	writeJSON(w, http.StatusAccepted, rem)
}

// deleteReminderHandler godoc
// @Summary Borrar recordatorio
// @Description Idempotente.
// @Tags reminders
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param reminderID path string true "ID del recordatorio"
// @Success 202
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/{reminderID} [delete]
func deleteReminderHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}
		t.DeleteReminder(Reminder{ID: chi.URLParam(r, "reminderID")})
		w.WriteHeader(http.StatusAccepted)
	}
}

// toggleReminderHandler godoc
// @Summary Habilitar o deshabilitar un recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body enabledRequest true "Nuevo estado"
// @Success 202 {object} Reminder
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID}/enabled [patch]
func toggleReminderHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		var req enabledRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "reminderID")
		for _, rem := range t.Reminders().Get() {
			if rem.ID == id {
				updated := rem.WithEnabled(req.Enabled)
				t.SaveReminder(updated)
				writeJSON(w, http.StatusAccepted, updated)
				return
			}
		}
		http.Error(w, "reminder not found", http.StatusNotFound)
	}
}

func trackerFor(w http.ResponseWriter, r *http.Request, sessions SessionFunc) (Tracker, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	t, err := sessions(r.Context(), claims)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return nil, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
