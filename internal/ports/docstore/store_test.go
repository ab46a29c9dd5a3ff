package docstore

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPaths(t *testing.T) {
	cases := []struct {
		got  Path
		want string
	}{
		{PetsPath("u1"), "users/u1/pets"},
		{RemindersPath("u1"), "users/u1/reminders"},
		{PetSubPath("u1", "p1", CollectionHealthEvents), "users/u1/pets/p1/healthEvents"},
		{PetSubPath("u1", "p1", CollectionWalkEntries), "users/u1/pets/p1/walkEntries"},
	}
	for _, c := range cases {
		if string(c.got) != c.want {
			t.Fatalf("path = %q, want %q", c.got, c.want)
		}
		if err := c.got.Validate(); err != nil {
			t.Fatalf("validate %q: %v", c.got, err)
		}
	}
}

func TestPathValidate_RejectsDocumentsAndEmptySegments(t *testing.T) {
	for _, p := range []Path{"", "users/u1", "users//pets", "users/u1/pets/p1"} {
		if err := p.Validate(); !errors.Is(err, ErrInvalidPath) {
			t.Fatalf("expected ErrInvalidPath for %q, got %v", p, err)
		}
	}
}

func TestCheckWrite_RequiresID(t *testing.T) {
	if err := CheckWrite(PetsPath("u1"), " "); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if err := CheckWrite(PetsPath("u1"), "a/b"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID for nested id, got %v", err)
	}
	if err := CheckWrite(PetsPath("u1"), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecode(t *testing.T) {
	type doc struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	snap := Snapshot{
		Path: PetsPath("u1"),
		Documents: []Document{
			{ID: "a", Data: json.RawMessage(`{"id":"a","name":"Milo"}`)},
			{ID: "b", Data: json.RawMessage(`{"id":"b","name":"Luna"}`)},
		},
	}

	out, err := Decode[doc](snap)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Name != "Milo" || out[1].ID != "b" {
		t.Fatalf("unexpected decode result: %+v", out)
	}

	snap.Documents = append(snap.Documents, Document{ID: "c", Data: json.RawMessage(`{`)})
	if _, err := Decode[doc](snap); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestSortDocuments(t *testing.T) {
	docs := []Document{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	SortDocuments(docs)
	if docs[0].ID != "a" || docs[1].ID != "b" || docs[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", docs)
	}
}
