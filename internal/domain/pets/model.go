package pets

import (
	"strings"

	"github.com/google/uuid"
)

// Pet representa el perfil básico de una mascota de la cuenta.
// Los tags JSON son exactamente la forma del documento remoto (users/{uid}/pets/{id}).
type Pet struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Breed  string  `json:"breed"`
	Age    int     `json:"age"`    // años
	Weight float64 `json:"weight"` // kg
}

// HealthEvent es un evento de salud (vacuna, consulta, ...) de una mascota.
type HealthEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"` // DD/MM/YYYY, texto libre
	Type  string `json:"type"` // Ej: Vacuna, Consulta
}

// DiaryEntry es una entrada del diario de comportamiento.
type DiaryEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Mood        string `json:"mood"`
	Appetite    string `json:"appetite"`
	EnergyLevel string `json:"energyLevel"`
	Notes       string `json:"notes"`
}

// WalkEntry es un paseo registrado.
type WalkEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Duration    string `json:"duration"`
	Mood        string `json:"mood"`
	EnergyLevel string `json:"energyLevel"`
}

func NewPet() Pet                 { return Pet{ID: uuid.NewString()} }
func NewHealthEvent() HealthEvent { return HealthEvent{ID: uuid.NewString()} }
func NewDiaryEntry() DiaryEntry   { return DiaryEntry{ID: uuid.NewString()} }
func NewWalkEntry() WalkEntry     { return WalkEntry{ID: uuid.NewString()} }

// EnsureID asigna un id nuevo solo si viene vacío. Un id existente nunca cambia.
func (p Pet) EnsureID() Pet {
	p.ID = ensureID(p.ID)
	return p
}

func (e HealthEvent) EnsureID() HealthEvent {
	e.ID = ensureID(e.ID)
	return e
}

func (e DiaryEntry) EnsureID() DiaryEntry {
	e.ID = ensureID(e.ID)
	return e
}

func (e WalkEntry) EnsureID() WalkEntry {
	e.ID = ensureID(e.ID)
	return e
}

func ensureID(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}
