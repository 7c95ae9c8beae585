// Package watcher reloads card decks when their files change on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kraitsura/cardreel/pkg/carousel"
	"github.com/kraitsura/cardreel/pkg/loader"
	"github.com/kraitsura/cardreel/pkg/model"
)

// DefaultReloadDebounce coalesces the bursts of write events editors produce
// when saving a deck file.
const DefaultReloadDebounce = 250 * time.Millisecond

// DeckWatcher watches a set of deck files and delivers freshly loaded cards
// after changes settle. Close cancels both the filesystem watcher and any
// pending debounced reload so no callback fires against a torn-down widget.
type DeckWatcher struct {
	paths    []string
	onReload func([]model.Card, error)

	fs       *fsnotify.Watcher
	debounce *carousel.Debouncer
	done     chan struct{}
}

// New starts watching the given deck files. onReload is called from the
// watcher goroutine with the merged reloaded deck, or the load error.
func New(paths []string, debounce time.Duration, onReload func([]model.Card, error)) (*DeckWatcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no deck files to watch")
	}
	if debounce == 0 {
		debounce = DefaultReloadDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &DeckWatcher{
		paths:    paths,
		onReload: onReload,
		fs:       fs,
		done:     make(chan struct{}),
	}
	w.debounce = carousel.NewDebouncer(debounce, w.reload)

	// Watch the parent directories: editors that save via rename replace
	// the inode, and a watch on the file itself would silently go stale.
	dirs := make(map[string]bool)
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go w.loop()
	return w, nil
}

func (w *DeckWatcher) loop() {
	watched := make(map[string]bool, len(w.paths))
	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		watched[abs] = true
	}

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				abs = ev.Name
			}
			if !watched[abs] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.debounce.Trigger()
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Transient watch errors are not fatal; the fallback is
			// the manual reload key.
		}
	}
}

func (w *DeckWatcher) reload() {
	cards, err := loader.LoadDecks(w.paths...)
	w.onReload(cards, err)
}

// Close stops watching and cancels any pending reload. Idempotent.
func (w *DeckWatcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	w.debounce.Cancel()
	return w.fs.Close()
}
