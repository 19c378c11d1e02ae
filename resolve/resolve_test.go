package resolve

import (
	"strings"
	"testing"

	"github.com/miku/vitakit/schema/vita"
)

func TestResolveDOI(t *testing.T) {
	ws := NewWorkingSet()
	pub := &vita.Publication{DOI: "10.1234/asdf", Title: "A Paper"}
	key, isNew, err := Resolve(pub, ws)
	if err != nil {
		t.Fatal(err)
	}
	if key != "10.1234/asdf" || !isNew {
		t.Errorf("want (10.1234/asdf, true), got (%s, %v)", key, isNew)
	}
	ws.Put(key, pub)
	key, isNew, err = Resolve(pub, ws)
	if err != nil {
		t.Fatal(err)
	}
	if key != "10.1234/asdf" || isNew {
		t.Errorf("second sighting must not be new, got (%s, %v)", key, isNew)
	}
}

func TestResolveTitleMatch(t *testing.T) {
	ws := NewWorkingSet()
	withDOI := &vita.Publication{DOI: "10.1234/asdf", Title: "Mapping the Brain"}
	key, _, err := Resolve(withDOI, ws)
	if err != nil {
		t.Fatal(err)
	}
	ws.Put(key, withDOI)
	// A no-DOI sighting of the same work recovers the existing key.
	withoutDOI := &vita.Publication{Title: "mapping the brain."}
	key, isNew, err := Resolve(withoutDOI, ws)
	if err != nil {
		t.Fatal(err)
	}
	if key != "10.1234/asdf" {
		t.Errorf("want title match onto doi key, got %s", key)
	}
	if isNew {
		t.Error("title match must not be new")
	}
}

func TestResolveSynthetic(t *testing.T) {
	ws := NewWorkingSet()
	pub := &vita.Publication{Title: "A chapter without a DOI"}
	key, isNew, err := Resolve(pub, ws)
	if err != nil {
		t.Fatal(err)
	}
	if !isNew || !IsSynthetic(key) || !strings.HasPrefix(key, SyntheticPrefix) {
		t.Fatalf("want fresh synthetic key, got (%s, %v)", key, isNew)
	}
	ws.Put(key, pub)
	// Same title again: reuse, never mint a second key.
	other := &vita.Publication{Title: "A Chapter Without a DOI"}
	key2, isNew, err := Resolve(other, ws)
	if err != nil {
		t.Fatal(err)
	}
	if key2 != key || isNew {
		t.Errorf("want reuse of %s, got (%s, %v)", key, key2, isNew)
	}
}

func TestMintTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := mintToken()
		if seen[tok] {
			t.Fatalf("duplicate token after %d mints: %s", i, tok)
		}
		seen[tok] = true
	}
}

func TestWorkingSetDelete(t *testing.T) {
	ws := NewWorkingSet()
	ws.Put("10.1234/asdf", &vita.Publication{DOI: "10.1234/asdf", Title: "A"})
	ws.Put("10.1234/qwer", &vita.Publication{DOI: "10.1234/qwer", Title: "B"})
	ws.Delete("10.1234/asdf")
	if ws.Has("10.1234/asdf") {
		t.Error("deleted key still present")
	}
	if got := ws.Keys(); len(got) != 1 || got[0] != "10.1234/qwer" {
		t.Errorf("unexpected keys after delete: %v", got)
	}
	// The title index must not match the deleted entry anymore.
	if key, ok := ws.byTitle("A"); ok {
		t.Errorf("stale title index entry: %s", key)
	}
}
