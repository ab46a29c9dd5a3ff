package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/observable"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Tracker es lo que los handlers necesitan del repositorio de la sesión.
type Tracker interface {
	Pets() observable.Reader[[]Pet]
	ActivePet() observable.Reader[*Pet]
	HealthEvents() observable.Reader[[]HealthEvent]
	DiaryEntries() observable.Reader[[]DiaryEntry]
	WalkEntries() observable.Reader[[]WalkEntry]

	PetByID(id string) (Pet, bool)
	SavePet(p Pet)
	DeletePet(p Pet)
	SetActivePet(p *Pet)

	SaveHealthEvent(petID string, e HealthEvent)
	DeleteHealthEvent(petID string, e HealthEvent)
	SaveDiaryEntry(petID string, e DiaryEntry)
	DeleteDiaryEntry(petID string, e DiaryEntry)
	SaveWalkEntry(petID string, e WalkEntry)
	DeleteWalkEntry(petID string, e WalkEntry)
}

// SessionFunc resuelve el Tracker del usuario autenticado (lo crea en el primer uso).
type SessionFunc func(ctx context.Context, claims auth.Claims) (Tracker, error)

var ErrPetNotActive = errors.New("pet is not the active pet")

func RegisterRoutes(r chi.Router, sessions SessionFunc) {
	r.Get("/dashboard", dashboardHandler(sessions))

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(sessions))
		pr.Post("/", createPetHandler(sessions))

		pr.Get("/active", getActivePetHandler(sessions))
		pr.Put("/active", setActivePetHandler(sessions))

		pr.Route("/{petID}", func(p chi.Router) {
			p.Put("/", updatePetHandler(sessions))
			p.Delete("/", deletePetHandler(sessions))
			p.Get("/recommendations", recommendationsHandler(sessions))

			registerRecordRoutes(p, "/health-events", sessions, healthEventRecords)
			registerRecordRoutes(p, "/diary-entries", sessions, diaryEntryRecords)
			registerRecordRoutes(p, "/walk-entries", sessions, walkEntryRecords)
		})
	})
}

type petRequest struct {
	Name   string  `json:"name"`
	Breed  string  `json:"breed"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
}

func (req petRequest) toPet(id string) Pet {
	return Pet{
		ID:     id,
		Name:   strings.TrimSpace(req.Name),
		Breed:  strings.TrimSpace(req.Breed),
		Age:    req.Age,
		Weight: req.Weight,
	}
}

type setActiveRequest struct {
	PetID *string `json:"pet_id"` // null = sin mascota activa
}

type dashboardResponse struct {
	ActivePet      *Pet            `json:"active_pet"`
	Pets           []Pet           `json:"pets"`
	Recommendation *Recommendation `json:"recommendation"`
}

// listPetsHandler godoc
// @Summary Listar mascotas de la cuenta
// @Description Devuelve la lista local de la sesión (incluye ediciones optimistas aún no confirmadas).
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Pet
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, t.Pets().Get())
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Asigna un id nuevo, actualiza la lista local y escribe en el store en segundo plano.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body petRequest true "Datos de la mascota"
// @Success 202 {object} Pet
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p := req.toPet(uuid.NewString())
		t.SavePet(p)
		writeJSON(w, http.StatusAccepted, p)
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Reemplaza el documento completo de la mascota.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body petRequest true "Datos de la mascota"
// @Success 202 {object} Pet
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, found := t.PetByID(petID); !found {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p := req.toPet(petID)
		t.SavePet(p)
		writeJSON(w, http.StatusAccepted, p)
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Idempotente. No borra eventos, diario ni paseos de la mascota.
// @Tags pets
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 202
// @Failure 401 {string} string "unauthorized"
// @Router /pets/{petID} [delete]
func deletePetHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}
		t.DeletePet(Pet{ID: chi.URLParam(r, "petID")})
		w.WriteHeader(http.StatusAccepted)
	}
}

// getActivePetHandler godoc
// @Summary Mascota activa
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Pet "null si no hay mascota activa"
// @Failure 401 {string} string "unauthorized"
// @Router /pets/active [get]
func getActivePetHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, t.ActivePet().Get())
	}
}

// setActivePetHandler godoc
// @Summary Cambiar la mascota activa
// @Description Vacía eventos, diario y paseos y empieza a escuchar los de la mascota elegida.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body setActiveRequest true "pet_id o null"
// @Success 200 {object} Pet
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/active [put]
func setActivePetHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		var req setActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.PetID == nil {
			t.SetActivePet(nil)
			writeJSON(w, http.StatusOK, nil)
			return
		}

		p, found := t.PetByID(strings.TrimSpace(*req.PetID))
		if !found {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		t.SetActivePet(&p)
		writeJSON(w, http.StatusOK, p)
	}
}

// recommendationsHandler godoc
// @Summary Recomendación de actividad diaria
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Recommendation
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/recommendations [get]
func recommendationsHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		p, found := t.PetByID(chi.URLParam(r, "petID"))
		if !found {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, Recommend(p))
	}
}

// dashboardHandler godoc
// @Summary Dashboard de la sesión
// @Description Mascota activa, mascotas disponibles y la recomendación de la activa.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} dashboardResponse
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard [get]
func dashboardHandler(sessions SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := trackerFor(w, r, sessions)
		if !ok {
			return
		}

		out := dashboardResponse{
			ActivePet: t.ActivePet().Get(),
			Pets:      t.Pets().Get(),
		}
		if out.ActivePet != nil {
			rec := Recommend(*out.ActivePet)
			out.Recommendation = &rec
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// trackerFor exige claims y resuelve la sesión. Si falla ya escribió la respuesta.
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
