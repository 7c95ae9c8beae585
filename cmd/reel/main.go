package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/kraitsura/cardreel/pkg/config"
	"github.com/kraitsura/cardreel/pkg/export"
	"github.com/kraitsura/cardreel/pkg/loader"
	"github.com/kraitsura/cardreel/pkg/model"
	"github.com/kraitsura/cardreel/pkg/ui"
	"github.com/kraitsura/cardreel/pkg/updater"
	"github.com/kraitsura/cardreel/pkg/watcher"
)

const version = "0.1.0"

func main() {
	deckFlag := flag.String("deck", "", "Deck file(s), comma separated (JSONL or YAML)")
	configFlag := flag.String("config", "", "Config file path (default ~/.config/reel/config.yaml)")
	exportSVG := flag.String("export-svg", "", "Write an SVG strip to this path instead of running the TUI")
	preview := flag.Bool("preview", false, "Serve the SVG strip on a local preview server instead of running the TUI")
	exportSlide := flag.Int("slide", 0, "Slide to scroll the SVG export to")
	exportWidth := flag.Int("width", 0, "Canvas width for the SVG export (default: terminal width x 8)")
	noWatch := flag.Bool("no-watch", false, "Disable live deck reload")
	showHelp := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showHelp {
		fmt.Println("Usage: reel [options]")
		fmt.Println("\nA terminal carousel for testimonial and marketing card decks.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("reel version %s\n", version)
		if tag, url, err := updater.CheckForUpdates(version); err == nil && tag != "" {
			fmt.Printf("Update available: %s (%s)\n", tag, url)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	paths, err := resolveDecks(*deckFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cards, err := loader.LoadDecks(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading deck: %v\n", err)
		os.Exit(1)
	}
	if len(cards) == 0 {
		fmt.Println("Deck is empty. Add some cards and run reel again.")
		os.Exit(0)
	}

	if *exportSVG != "" {
		if err := runExport(*exportSVG, cards, cfg, *exportSlide, *exportWidth); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *exportSVG)
		return
	}

	if *preview {
		err := export.StartPreview(cards, export.Options{
			Width:      *exportWidth,
			Slide:      *exportSlide,
			Transition: cfg.Transition(),
			Theme:      cfg.Theme,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running preview: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m := ui.NewModel(cards, paths, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.SetSender(p.Send)

	var w *watcher.DeckWatcher
	if !*noWatch {
		w, err = watcher.New(paths, 0, func(cards []model.Card, err error) {
			p.Send(ui.DeckReloadedMsg{Cards: cards, Err: err})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		}
	}

	_, err = p.Run()
	m.Teardown()
	if w != nil {
		w.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running reel: %v\n", err)
		os.Exit(1)
	}
}

// resolveDecks picks the deck files: the -deck flag wins, otherwise discovery
// with a prompt when several candidates exist.
func resolveDecks(deckFlag string) ([]string, error) {
	if deckFlag != "" {
		var paths []string
		for _, p := range strings.Split(deckFlag, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		return paths, nil
	}

	found, err := loader.DiscoverDecks("")
	if err != nil {
		return nil, fmt.Errorf("Error discovering decks: %w", err)
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("No deck files found. Pass one with -deck or create .reel/deck.jsonl.")
	case 1:
		return found, nil
	}

	var picked string
	options := make([]huh.Option[string], len(found))
	for i, p := range found {
		options[i] = huh.NewOption(p, p)
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Multiple decks found").
			Options(options...).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("Deck selection cancelled: %w", err)
	}
	return []string{picked}, nil
}

func runExport(path string, cards []model.Card, cfg config.Config, slide, width int) error {
	if width <= 0 {
		// Scale the terminal width to a page-ish pixel canvas.
		width = 960
		if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = cols * 8
		}
	}
	return export.ExportFile(path, cards, export.Options{
		Width:      width,
		Slide:      slide,
		Transition: cfg.Transition(),
		Theme:      cfg.Theme,
	})
}
