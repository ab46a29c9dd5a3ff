package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidPath = errors.New("docstore: invalid path")
	ErrInvalidID   = errors.New("docstore: document id required")
	ErrClosed      = errors.New("docstore: store closed")
)

// Path identifica una colección: "users/{uid}/pets", "users/{uid}/pets/{petId}/healthEvents", ...
type Path string

const (
	CollectionUsers        = "users"
	CollectionPets         = "pets"
	CollectionHealthEvents = "healthEvents"
	CollectionDiaryEntries = "diaryEntries"
	CollectionWalkEntries  = "walkEntries"
	CollectionReminders    = "reminders"
)

func PetsPath(uid string) Path {
	return Path(CollectionUsers + "/" + uid + "/" + CollectionPets)
}

func RemindersPath(uid string) Path {
	return Path(CollectionUsers + "/" + uid + "/" + CollectionReminders)
}

// PetSubPath arma la sub-colección de una mascota (healthEvents, diaryEntries, walkEntries).
func PetSubPath(uid, petID, collection string) Path {
	return Path(string(PetsPath(uid)) + "/" + petID + "/" + collection)
}

// Validate exige segmentos no vacíos y número impar de segmentos (colección, no documento).
func (p Path) Validate() error {
	segs := strings.Split(string(p), "/")
	if len(segs)%2 == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidPath, string(p))
	}
	for _, s := range segs {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %q", ErrInvalidPath, string(p))
		}
	}
	return nil
}

func (p Path) String() string { return string(p) }

// Document es un documento crudo; Data incluye también el id (duplicado en el cuerpo).
type Document struct {
	ID   string
	Data json.RawMessage
}

// Snapshot es la vista completa de una colección, ordenada por id ascendente.
type Snapshot struct {
	Path      Path
	Documents []Document
}

// SortDocuments deja los documentos en el orden por defecto (id asc).
func SortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
}

// Listener recibe snapshots o errores de escucha. Nunca se llama dentro de Listen.
type Listener func(Snapshot, error)

// Registration corta un listener. Remove no bloquea y es idempotente.
// No espera una entrega que ya esté en curso: el consumidor descarta esas.
type Registration interface {
	Remove()
}

// Store es el colaborador de documentos remoto.
type Store interface {
	// Set hace upsert del documento completo (JSON).
	Set(ctx context.Context, path Path, id string, doc any) error
	// Delete es idempotente: borrar un id ausente no es error.
	Delete(ctx context.Context, path Path, id string) error
	// Listen entrega el snapshot actual y uno nuevo tras cada cambio, siempre
	// desde una goroutine del store. Cancelar ctx equivale a Remove.
	// No hace I/O: se llama con locks del consumidor tomados. Los errores de
	// red llegan por fn; el error devuelto es solo de validación o ErrClosed.
	Listen(ctx context.Context, path Path, fn Listener) (Registration, error)
}

// Decode convierte todos los documentos del snapshot a T.
func Decode[T any](snap Snapshot) ([]T, error) {
	out := make([]T, 0, len(snap.Documents))
	for _, d := range snap.Documents {
		var v T
		if err := json.Unmarshal(d.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", snap.Path, d.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode serializa doc para Set; acepta json.RawMessage tal cual.
func Encode(doc any) (json.RawMessage, error) {
	if raw, ok := doc.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// CheckWrite valida path e id antes de escribir.
func CheckWrite(path Path, id string) error {
	if err := path.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return ErrInvalidID
	}
	return nil
}
