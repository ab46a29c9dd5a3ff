package reminders

import (
	"strings"

	"github.com/google/uuid"
)

// Reminder es un recordatorio de la cuenta (no depende de una mascota).
// Solo se almacena; no hay motor de alarmas.
type Reminder struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Time    string `json:"time"` // HH:mm, texto libre
	Enabled bool   `json:"enabled"`
}

// NewReminder crea un recordatorio habilitado por defecto, como el formulario de alta.
func NewReminder() Reminder {
	return Reminder{ID: uuid.NewString(), Enabled: true}
}

func (r Reminder) EnsureID() Reminder {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}
	return r
}

// WithEnabled devuelve una copia con enabled cambiado; el original no se toca.
func (r Reminder) WithEnabled(enabled bool) Reminder {
	r.Enabled = enabled
	return r
}
