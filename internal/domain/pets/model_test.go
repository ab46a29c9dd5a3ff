package pets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureID_KeepsExistingID(t *testing.T) {
	p := Pet{ID: "p1", Name: "Milo"}.EnsureID()
	assert.Equal(t, "p1", p.ID)

	blank := Pet{Name: "Luna"}.EnsureID()
	assert.NotEmpty(t, blank.ID)

	e := HealthEvent{ID: "  "}.EnsureID()
	assert.NotEqual(t, "  ", e.ID)
	assert.NotEmpty(t, DiaryEntry{}.EnsureID().ID)
	assert.NotEmpty(t, WalkEntry{}.EnsureID().ID)
}

func TestConstructors_AssignDistinctIDs(t *testing.T) {
	assert.NotEqual(t, NewPet().ID, NewPet().ID)
	assert.NotEmpty(t, NewHealthEvent().ID)
	assert.NotEmpty(t, NewDiaryEntry().ID)
	assert.NotEmpty(t, NewWalkEntry().ID)
}

func TestDocumentShape(t *testing.T) {
	b, err := json.Marshal(DiaryEntry{ID: "d1", Mood: "Feliz", EnergyLevel: "Alta"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "Alta", m["energyLevel"])
	assert.Equal(t, "d1", m["id"])
	assert.Contains(t, m, "appetite")
}
