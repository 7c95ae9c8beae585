package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/cardreel/pkg/config"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3

	// CardGap is the horizontal gap between cards in the reel.
	CardGap = 2

	// CardBodyHeight is the inner height of a card box in rows.
	CardBodyHeight = 9
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired defaults, overridable via config theme
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")
	ColorPrimary     = lipgloss.Color("#BD93F9")
	ColorWarning     = lipgloss.Color("#FFB86C")
	ColorDanger      = lipgloss.Color("#FF5555")
)

// Theme bundles the styles derived from the configured colors.
type Theme struct {
	Accent lipgloss.Color
	Border lipgloss.Color
	Subtle lipgloss.Color
	Text   lipgloss.Color

	Card        lipgloss.Style
	ActiveCard  lipgloss.Style
	Attribution lipgloss.Style
	Quote       lipgloss.Style
	Stars       lipgloss.Style
	DotActive   lipgloss.Style
	DotIdle     lipgloss.Style
	Header      lipgloss.Style
	Status      lipgloss.Style
	HelpLine    lipgloss.Style
}

// NewTheme builds a Theme from the config, falling back to the palette
// defaults for any unset color.
func NewTheme(tc config.ThemeConfig) Theme {
	accent := colorOr(tc.Accent, ColorPrimary)
	border := colorOr(tc.Border, ColorMuted)
	subtle := colorOr(tc.Subtle, ColorBgHighlight)
	text := colorOr(tc.TextFg, ColorText)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Theme{
		Accent: accent,
		Border: border,
		Subtle: subtle,
		Text:   text,

		Card:        card,
		ActiveCard:  card.BorderForeground(accent),
		Attribution: lipgloss.NewStyle().Foreground(text).Bold(true),
		Quote:       lipgloss.NewStyle().Foreground(ColorSubtext).Italic(true),
		Stars:       lipgloss.NewStyle().Foreground(accent),
		DotActive:   lipgloss.NewStyle().Foreground(accent),
		DotIdle:     lipgloss.NewStyle().Foreground(subtle),
		Header:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(ColorWarning),
		HelpLine:    lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

func colorOr(hex string, fallback lipgloss.Color) lipgloss.Color {
	if hex == "" {
		return fallback
	}
	return lipgloss.Color(hex)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
