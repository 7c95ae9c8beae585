package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/kraitsura/cardreel/pkg/model"
)

// SearchModel is the fuzzy card-search overlay. Confirming a match jumps the
// reel to the slide that shows the matched card.
type SearchModel struct {
	input    textinput.Model
	cards    []model.Card
	targets  []string
	matches  []int // card indices, best match first
	selected int
	visible  bool
	theme    Theme
	width    int
}

// NewSearchModel creates the search overlay over the given deck.
func NewSearchModel(cards []model.Card, theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search author, company, or quote..."
	ti.CharLimit = 64
	ti.Width = 40

	m := SearchModel{
		input: ti,
		theme: theme,
	}
	m.SetCards(cards)
	return m
}

// SetCards swaps the deck, e.g. after a live reload.
func (m *SearchModel) SetCards(cards []model.Card) {
	m.cards = cards
	m.targets = make([]string, len(cards))
	for i, c := range cards {
		m.targets[i] = strings.Join([]string{c.Author, c.Company, c.Quote}, " ")
	}
	m.refilter()
}

// Show opens the overlay with a cleared query.
func (m *SearchModel) Show() {
	m.visible = true
	if m.width > 0 && m.width-12 < m.input.Width {
		m.input.Width = m.width - 12
	}
	m.input.SetValue("")
	m.input.Focus()
	m.refilter()
}

// Hide closes the overlay.
func (m *SearchModel) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns true while the overlay is open.
func (m SearchModel) IsVisible() bool { return m.visible }

// SetSize stores the available width for rendering.
func (m *SearchModel) SetSize(width int) { m.width = width }

// searchJumpMsg is emitted when the user confirms a match.
type searchJumpMsg struct {
	CardIndex int
}

// Update handles input while the overlay is open.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.Hide()
			return m, nil
		case tea.KeyEnter:
			if len(m.matches) > 0 {
				idx := m.matches[m.selected]
				m.Hide()
				return m, func() tea.Msg { return searchJumpMsg{CardIndex: idx} }
			}
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.matches)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *SearchModel) refilter() {
	m.selected = 0
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = m.matches[:0]
		for i := range m.cards {
			m.matches = append(m.matches, i)
		}
		return
	}

	results := fuzzy.Find(query, m.targets)
	m.matches = m.matches[:0]
	for _, r := range results {
		m.matches = append(m.matches, r.Index)
	}
}

// View renders the overlay box.
func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Find a card"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	const maxRows = 8
	if len(m.matches) == 0 {
		b.WriteString(m.theme.HelpLine.Render("no matches"))
	}
	for row, idx := range m.matches {
		if row == maxRows {
			b.WriteString(m.theme.HelpLine.Render(fmt.Sprintf("…and %d more", len(m.matches)-maxRows)))
			break
		}
		card := m.cards[idx]
		line := card.DisplayName()
		if row == m.selected {
			line = m.theme.DotActive.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Accent).
		Padding(1, 2).
		Render(b.String())
	return box
}
