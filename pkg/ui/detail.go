package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/cardreel/pkg/model"
)

// DetailModel shows a single card expanded, with the quote rendered as
// markdown so decks can use emphasis and links.
type DetailModel struct {
	visible bool
	content string
	header  string
	theme   Theme
	width   int
}

// NewDetailModel creates a hidden detail overlay.
func NewDetailModel(theme Theme) DetailModel {
	return DetailModel{theme: theme}
}

// Show renders the card and opens the overlay.
func (m *DetailModel) Show(card model.Card) {
	m.header = card.DisplayName()

	wrap := m.width - 8
	if wrap < 20 {
		wrap = 60
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.content = card.Quote
	} else if rendered, err := renderer.Render(card.Quote); err != nil {
		m.content = card.Quote
	} else {
		m.content = strings.TrimRight(rendered, "\n")
	}

	if stars := card.Stars(); stars != "" {
		m.content += "\n" + m.theme.Stars.Render(stars)
	}
	if len(card.Tags) > 0 {
		m.content += "\n" + m.theme.HelpLine.Render(strings.Join(card.Tags, " · "))
	}
	m.visible = true
}

// Hide closes the overlay.
func (m *DetailModel) Hide() { m.visible = false }

// IsVisible returns true while the overlay is open.
func (m DetailModel) IsVisible() bool { return m.visible }

// SetSize stores the available width for wrapping.
func (m *DetailModel) SetSize(width int) { m.width = width }

// View renders the overlay box.
func (m DetailModel) View() string {
	body := fmt.Sprintf("%s\n%s\n%s",
		m.theme.Attribution.Render(m.header),
		RenderDivider(lipgloss.Width(m.header)),
		m.content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Accent).
		Padding(1, 2).
		Render(body)
}
