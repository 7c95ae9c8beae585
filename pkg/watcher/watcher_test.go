package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kraitsura/cardreel/pkg/model"
)

type reloadResult struct {
	cards []model.Card
	err   error
}

func TestDeckWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"c1","quote":"one"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan reloadResult, 4)
	w, err := New([]string{path}, 50*time.Millisecond, func(cards []model.Card, err error) {
		reloads <- reloadResult{cards, err}
	})
	if err != nil {
		t.Fatalf("New watcher failed: %v", err)
	}
	defer w.Close()

	content := `{"id":"c1","quote":"one"}` + "\n" + `{"id":"c2","quote":"two"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.err != nil {
			t.Fatalf("Reload returned error: %v", r.err)
		}
		if len(r.cards) != 2 {
			t.Errorf("Expected 2 cards after reload, got %d", len(r.cards))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("No reload delivered")
	}
}

func TestDeckWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"c1","quote":"one"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan reloadResult, 4)
	w, err := New([]string{path}, 50*time.Millisecond, func(cards []model.Card, err error) {
		reloads <- reloadResult{cards, err}
	})
	if err != nil {
		t.Fatalf("New watcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloads:
		t.Fatal("Reload fired for an unrelated file")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestDeckWatcher_CloseCancelsPendingReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"c1","quote":"one"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan reloadResult, 4)
	w, err := New([]string{path}, 200*time.Millisecond, func(cards []model.Card, err error) {
		reloads <- reloadResult{cards, err}
	})
	if err != nil {
		t.Fatalf("New watcher failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"id":"c2","quote":"two"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Close before the debounce elapses; the pending reload must die with it.
	time.Sleep(50 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Second close failed: %v", err)
	}

	select {
	case <-reloads:
		t.Fatal("Reload fired after Close")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestDeckWatcher_NoPaths(t *testing.T) {
	if _, err := New(nil, 0, nil); err == nil {
		t.Fatal("Expected error for empty watch list")
	}
}
