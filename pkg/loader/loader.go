// Package loader reads card decks from JSONL and YAML files.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kraitsura/cardreel/pkg/model"
)

// yamlDeck is the on-disk shape of a YAML deck file.
type yamlDeck struct {
	Name  string       `yaml:"name,omitempty"`
	Cards []model.Card `yaml:"cards"`
}

// LoadDeck reads cards from a single deck file, dispatching on extension:
// .yaml/.yml decks are a document with a top-level cards list, anything else
// is treated as JSONL with one card per line.
func LoadDeck(path string) ([]model.Card, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadJSONL(path)
	}
}

// LoadDecks loads several deck files concurrently and merges them in the
// order the paths were given. Cards with duplicate IDs across decks are
// rejected so search jumps stay unambiguous.
func LoadDecks(paths ...string) ([]model.Card, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no deck files given")
	}

	perDeck := make([][]model.Card, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			cards, err := LoadDeck(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			perDeck[i] = cards
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []model.Card
	seen := make(map[string]string)
	for i, cards := range perDeck {
		for _, card := range cards {
			if prev, ok := seen[card.ID]; ok {
				return nil, fmt.Errorf("duplicate card ID %q in %s (already in %s)", card.ID, paths[i], prev)
			}
			seen[card.ID] = paths[i]
			merged = append(merged, card)
		}
	}
	return merged, nil
}

func loadJSONL(path string) ([]model.Card, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no deck found at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck file: %w", err)
	}
	defer file.Close()

	var cards []model.Card
	scanner := bufio.NewScanner(file)
	// Quotes can be long; give the scanner room.
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var card model.Card
		if err := json.Unmarshal(line, &card); err != nil {
			// Skip malformed lines but keep loading the rest.
			continue
		}
		if err := card.Validate(); err != nil {
			continue
		}
		card.SourceDeck = path
		cards = append(cards, card)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	return cards, nil
}

func loadYAML(path string) ([]model.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	var deck yamlDeck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse deck %s: %w", path, err)
	}

	cards := make([]model.Card, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("invalid card in %s: %w", path, err)
		}
		card.SourceDeck = path
		cards = append(cards, card)
	}
	return cards, nil
}

// DiscoverDecks finds deck files under dir: *.jsonl, *.yaml and *.yml files
// whose name contains "deck" or "cards", plus the conventional
// .reel/deck.jsonl location. Results are sorted for stable prompting.
func DiscoverDecks(dir string) ([]string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	var found []string

	conventional := filepath.Join(dir, ".reel", "deck.jsonl")
	if _, err := os.Stat(conventional); err == nil {
		found = append(found, conventional)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		ext := filepath.Ext(name)
		if ext != ".jsonl" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		if strings.Contains(name, "deck") || strings.Contains(name, "cards") {
			found = append(found, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(found)
	return found, nil
}
