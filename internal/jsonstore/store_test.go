package jsonstore

import (
	"errors"
	"testing"
)

type fixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	in := fixture{Name: "menu", Count: 3}
	if err := store.Save("menu.json", in); err != nil {
		t.Fatal(err)
	}

	var out fixture
	if err := store.Load("menu.json", &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var out fixture
	if err := store.Load("missing.json", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save("orders.json", fixture{Name: "first", Count: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("orders.json", fixture{Name: "second", Count: 2}); err != nil {
		t.Fatal(err)
	}

	var out fixture
	if err := store.Load("orders.json", &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "second" || out.Count != 2 {
		t.Fatalf("expected latest write, got %+v", out)
	}
}

func TestInvalidNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"", "../escape.json", "sub/dir.json", ".hidden"} {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(name, fixture{}); err == nil {
				t.Fatalf("expected error for name %q", name)
			}
		})
	}
}

func TestExistsAndModTime(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if store.Exists("menu.json") {
		t.Fatal("file should not exist yet")
	}
	if _, err := store.ModTime("menu.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Save("menu.json", fixture{}); err != nil {
		t.Fatal(err)
	}
	if !store.Exists("menu.json") {
		t.Fatal("file should exist after save")
	}
	if _, err := store.ModTime("menu.json"); err != nil {
		t.Fatalf("expected mod time, got error %v", err)
	}
}
