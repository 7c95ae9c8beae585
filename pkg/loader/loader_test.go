package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kraitsura/cardreel/pkg/loader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDeck_JSONL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "deck.jsonl", strings.Join([]string{
		`{"id":"c1","author":"Grace","quote":"Great tool."}`,
		``,
		`not valid json`,
		`{"id":"c2","author":"Ada","quote":"Five stars.","rating":5}`,
		`{"id":"","quote":"missing id is dropped"}`,
	}, "\n"))

	cards, err := loader.LoadDeck(path)
	if err != nil {
		t.Fatalf("LoadDeck failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 valid cards, got %d", len(cards))
	}
	if cards[0].ID != "c1" || cards[1].ID != "c2" {
		t.Errorf("Cards out of order: %s, %s", cards[0].ID, cards[1].ID)
	}
	if cards[1].Rating != 5 {
		t.Errorf("Expected rating 5, got %d", cards[1].Rating)
	}
	if cards[0].SourceDeck != path {
		t.Errorf("Expected source deck %s, got %s", path, cards[0].SourceDeck)
	}
}

func TestLoadDeck_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "deck.yaml", `
name: testimonials
cards:
  - id: y1
    author: Grace Hopper
    company: Navy
    quote: "It just works."
    rating: 4
  - id: y2
    author: Ada Lovelace
    quote: "Weaves like the loom."
    tags: [engine, loom]
`)

	cards, err := loader.LoadDeck(path)
	if err != nil {
		t.Fatalf("LoadDeck failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Company != "Navy" {
		t.Errorf("Expected company Navy, got %s", cards[0].Company)
	}
	if len(cards[1].Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", cards[1].Tags)
	}
}

func TestLoadDeck_YAMLInvalidCardFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "deck.yaml", `
cards:
  - id: bad
    quote: "rated too high"
    rating: 9
`)

	if _, err := loader.LoadDeck(path); err == nil {
		t.Fatal("Expected error for out-of-range rating")
	}
}

func TestLoadDeck_MissingFile(t *testing.T) {
	if _, err := loader.LoadDeck(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatal("Expected error for missing deck")
	}
}

func TestLoadDecks_MergePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"id":"a1","quote":"first deck"}`)
	b := writeFile(t, dir, "b.jsonl", `{"id":"b1","quote":"second deck"}`+"\n"+`{"id":"b2","quote":"still second"}`)

	cards, err := loader.LoadDecks(a, b)
	if err != nil {
		t.Fatalf("LoadDecks failed: %v", err)
	}
	want := []string{"a1", "b1", "b2"}
	if len(cards) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(cards))
	}
	for i, id := range want {
		if cards[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, cards[i].ID)
		}
	}
}

func TestLoadDecks_DuplicateIDsRejected(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"id":"dup","quote":"one"}`)
	b := writeFile(t, dir, "b.jsonl", `{"id":"dup","quote":"two"}`)

	if _, err := loader.LoadDecks(a, b); err == nil {
		t.Fatal("Expected duplicate ID error")
	}
}

func TestLoadDecks_NoPaths(t *testing.T) {
	if _, err := loader.LoadDecks(); err == nil {
		t.Fatal("Expected error for empty path list")
	}
}

func TestDiscoverDecks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "my-deck.yaml", "cards: []")
	writeFile(t, dir, "cards.jsonl", "")
	writeFile(t, dir, "unrelated.yaml", "cards: []")
	writeFile(t, dir, "notes.txt", "")
	if err := os.MkdirAll(filepath.Join(dir, ".reel"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, filepath.Join(".reel", "deck.jsonl"), "")

	found, err := loader.DiscoverDecks(dir)
	if err != nil {
		t.Fatalf("DiscoverDecks failed: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("Expected 3 candidates, got %d: %v", len(found), found)
	}
	for _, f := range found {
		base := filepath.Base(f)
		if base == "unrelated.yaml" || base == "notes.txt" {
			t.Errorf("Unexpected candidate %s", f)
		}
	}
}
