// Package ui implements the cardreel terminal interface: a responsive card
// reel with indicator dots, auto-play, fuzzy search, and a detail overlay.
package ui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kraitsura/cardreel/pkg/carousel"
	"github.com/kraitsura/cardreel/pkg/config"
	"github.com/kraitsura/cardreel/pkg/loader"
	"github.com/kraitsura/cardreel/pkg/model"
)

// AutoAdvanceMsg is sent by the auto-play timer to advance one slide.
type AutoAdvanceMsg struct{}

// DeckReloadedMsg carries a freshly loaded deck, from the file watcher or
// the manual reload key.
type DeckReloadedMsg struct {
	Cards []model.Card
	Err   error
}

// retierMsg is delivered after the resize debounce settles.
type retierMsg struct {
	Width int
}

// statusTickMsg expires a transient status message.
type statusTickMsg struct {
	Seq int
}

const statusTTL = 3 * time.Second

// Model is the top-level bubbletea model. One Model owns one carousel; all
// async collaborators (auto-play, resize debounce, file watcher) re-enter
// the update loop as messages via the injected send function.
type Model struct {
	cards     []model.Card
	deckPaths []string
	reel      *carousel.Carousel
	auto      *carousel.AutoPlay
	resize    *carousel.Debouncer
	last      carousel.Change

	// pendingWidth is written on the update loop and read by the debounce
	// timer goroutine.
	pendingWidth atomic.Int64
	send         func(tea.Msg)

	keys   keyMap
	help   help.Model
	theme  Theme
	search SearchModel
	detail DetailModel

	width, height int
	status        string
	statusSeq     int
	torndown      bool
}

// NewModel creates the reel over the given deck. deckPaths are kept for the
// manual reload key; Send must be wired (SetSender) before the program runs
// so auto-play and debounced retiers can reach the loop.
func NewModel(cards []model.Card, deckPaths []string, cfg config.Config) *Model {
	theme := NewTheme(cfg.Theme)
	m := &Model{
		cards:     cards,
		deckPaths: deckPaths,
		keys:      defaultKeyMap(),
		help:      help.New(),
		theme:     theme,
		search:    NewSearchModel(cards, theme),
		detail:    NewDetailModel(theme),
	}
	m.reel = carousel.New(len(cards), cfg.TierTable(), func(ch carousel.Change) {
		m.last = ch
	})
	m.auto = carousel.NewAutoPlay(cfg.AutoPlayInterval(), func() {
		m.post(AutoAdvanceMsg{})
	})
	m.resize = carousel.NewDebouncer(cfg.ResizeDebounce(), func() {
		m.post(retierMsg{Width: int(m.pendingWidth.Load())})
	})
	return m
}

// SetSender wires the program's Send function. Must be called before Run.
func (m *Model) SetSender(send func(tea.Msg)) { m.send = send }

// Reel exposes the navigation controller, mainly for tests.
func (m *Model) Reel() *carousel.Carousel { return m.reel }

// AutoPlaying reports whether the auto-play timer is running.
func (m *Model) AutoPlaying() bool { return m.auto.Running() }

func (m *Model) post(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.auto.Start()
	return nil
}

// Teardown cancels every pending timer so no callback can fire against a
// removed widget. Idempotent.
func (m *Model) Teardown() {
	if m.torndown {
		return
	}
	m.torndown = true
	m.auto.Stop()
	m.resize.Cancel()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		firstSize := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.SetSize(msg.Width)
		m.detail.SetSize(msg.Width)
		if firstSize {
			// Initial layout is not a resize; retier immediately.
			m.reel.SetViewportWidth(msg.Width)
			return m, nil
		}
		m.pendingWidth.Store(int64(msg.Width))
		m.resize.Trigger()
		return m, nil

	case retierMsg:
		m.reel.SetViewportWidth(msg.Width)
		return m, nil

	case AutoAdvanceMsg:
		// An automatic advance does not reset the timer; the ticker
		// cadence already spaces the next one.
		m.reel.Next()
		return m, nil

	case DeckReloadedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err))
		}
		m.cards = msg.Cards
		m.reel.SetItems(len(msg.Cards))
		m.search.SetCards(msg.Cards)
		return m, m.setStatus(fmt.Sprintf("deck reloaded: %d cards", len(msg.Cards)))

	case searchJumpMsg:
		m.reel.GoTo(carousel.SlideFor(msg.CardIndex, len(m.cards), m.reel.PerView()))
		m.auto.Reset()
		return m, nil

	case statusTickMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail.IsVisible() {
		m.detail.Hide()
		return m, nil
	}
	if m.search.IsVisible() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		m.reel.Prev()
		m.auto.Reset()

	case key.Matches(msg, m.keys.Next):
		m.reel.Next()
		m.auto.Reset()

	case key.Matches(msg, m.keys.First):
		m.reel.GoTo(0)
		m.auto.Reset()

	case key.Matches(msg, m.keys.Last):
		m.reel.GoTo(m.reel.SlideCount() - 1)
		m.auto.Reset()

	case key.Matches(msg, m.keys.Pause):
		if m.auto.Interval() <= 0 {
			return m, m.setStatus("auto-play disabled in config")
		}
		if m.auto.Toggle() {
			return m, m.setStatus("auto-play resumed")
		}
		return m, m.setStatus("auto-play paused")

	case key.Matches(msg, m.keys.Search):
		m.search.Show()

	case key.Matches(msg, m.keys.Detail):
		if card, ok := m.currentCard(); ok {
			m.detail.Show(card)
		}

	case key.Matches(msg, m.keys.Copy):
		if card, ok := m.currentCard(); ok {
			if err := clipboard.WriteAll(card.Quote); err != nil {
				return m, m.setStatus(fmt.Sprintf("copy failed: %v", err))
			}
			return m, m.setStatus("quote copied")
		}

	case key.Matches(msg, m.keys.Reload):
		paths := m.deckPaths
		return m, func() tea.Msg {
			cards, err := loader.LoadDecks(paths...)
			return DeckReloadedMsg{Cards: cards, Err: err}
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		// Digits jump straight to an indicator dot.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			slide := int(s[0] - '1')
			if slide < m.reel.SlideCount() {
				m.reel.GoTo(slide)
				m.auto.Reset()
			}
		}
	}

	return m, nil
}

// currentCard returns the first card of the current slide.
func (m *Model) currentCard() (model.Card, bool) {
	if len(m.cards) == 0 {
		return model.Card{}, false
	}
	return m.cards[m.reel.StartIndex()], true
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusTickMsg{Seq: seq}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	if m.detail.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.detail.View())
	}
	if m.search.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.search.View())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderReel())
	b.WriteString("\n")
	b.WriteString(m.renderDots())
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.theme.Header.Render("✦ cardreel")
	playState := "auto-play off"
	if m.auto.Running() {
		playState = "auto-play on"
	}
	info := m.theme.HelpLine.Render(fmt.Sprintf(
		"slide %d/%d · %d cards · track %.0f%% · %s",
		m.reel.Slide()+1, m.reel.SlideCount(), len(m.cards), m.last.Offset, playState))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(info)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + info
}

func (m *Model) renderReel() string {
	n := len(m.cards)
	if n == 0 {
		empty := m.theme.Card.Width(40).Render(
			m.theme.HelpLine.Render("no cards in this deck"))
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, empty)
	}

	perView := m.reel.PerView()
	start := m.reel.StartIndex()
	end := start + perView
	if end > n {
		end = n
	}

	cardW := (m.width - (perView-1)*CardGap) / perView
	if cardW < 24 {
		cardW = 24
	}

	boxes := make([]string, 0, perView)
	for i := start; i < end; i++ {
		boxes = append(boxes, m.renderCard(m.cards[i], cardW))
		if i < end-1 {
			boxes = append(boxes, strings.Repeat(" ", CardGap))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) renderCard(card model.Card, width int) string {
	// Border and padding eat four columns.
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(m.theme.Attribution.Render(runewidth.Truncate(card.DisplayName(), inner, "…")))
	b.WriteString("\n")
	if stars := card.Stars(); stars != "" {
		b.WriteString(m.theme.Stars.Render(stars))
	}
	b.WriteString("\n\n")

	lines := wrapText(card.Quote, inner)
	const maxLines = CardBodyHeight - 4
	for i, line := range lines {
		if i == maxLines {
			b.WriteString(m.theme.Quote.Render("…"))
			break
		}
		b.WriteString(m.theme.Quote.Render(line))
		b.WriteString("\n")
	}

	return m.theme.Card.Width(width - 2).Height(CardBodyHeight).Render(b.String())
}

func (m *Model) renderDots() string {
	count := m.reel.SlideCount()
	current := m.reel.Slide()

	dots := make([]string, count)
	for i := 0; i < count; i++ {
		if i == current {
			dots[i] = m.theme.DotActive.Render("●")
		} else {
			dots[i] = m.theme.DotIdle.Render("○")
		}
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(dots, " "))
}

// wrapText breaks s into lines no wider than width display columns.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if curW > 0 && curW+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
