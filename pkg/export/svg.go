// Package export renders a deck as a static SVG strip, laid out by the same
// slide planner the TUI uses. Useful for embedding a snapshot of the
// testimonial reel in a page or README.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/kraitsura/cardreel/pkg/carousel"
	"github.com/kraitsura/cardreel/pkg/config"
	"github.com/kraitsura/cardreel/pkg/model"
)

// Options controls the exported strip.
type Options struct {
	// Width is the canvas width in pixels.
	Width int
	// PerView is how many cards are visible; 0 derives it from Width and
	// the default tier table (canvas pixels treated as columns).
	PerView int
	// Slide selects which slide the strip is scrolled to.
	Slide int
	// Transition is emitted as a CSS transition on the track so the strip
	// animates when restyled in a live page. Purely cosmetic.
	Transition time.Duration
	Theme      config.ThemeConfig
}

const (
	cardHeight = 220
	cardPad    = 16
	dotRow     = 36
	quoteWrap  = 38
	quoteLines = 4
)

// WriteSVG renders the deck scrolled to the requested slide.
func WriteSVG(out io.Writer, cards []model.Card, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.PerView <= 0 {
		opts.PerView = carousel.ItemsPerView(opts.Width, carousel.DefaultTiers())
	}
	theme := opts.Theme
	if theme.Accent == "" {
		theme = config.Default().Theme
	}

	n := len(cards)
	count := carousel.SlideCount(n, opts.PerView)
	slide := opts.Slide
	if slide < 0 || slide >= count {
		return fmt.Errorf("slide %d out of range 0-%d", slide, count-1)
	}
	start := carousel.StartIndex(slide, n, opts.PerView)
	offsetPx := int(carousel.OffsetPercent(start, opts.PerView) / 100.0 * float64(opts.Width))

	height := cardHeight + 2*cardPad + dotRow
	canvas := svg.New(out)
	canvas.Start(opts.Width, height)
	canvas.Style("text/css", fmt.Sprintf(
		".track { transition: transform %dms ease; }", opts.Transition.Milliseconds()))
	canvas.Rect(0, 0, opts.Width, height, "fill:"+theme.CardBg)

	cardW := opts.Width / opts.PerView

	canvas.Gtransform(fmt.Sprintf("translate(%d,0)", -offsetPx))
	canvas.Group(`class="track"`)
	for i, card := range cards {
		drawCard(canvas, card, i*cardW+cardPad/2, cardPad, cardW-cardPad, theme)
	}
	canvas.Gend()
	canvas.Gend()

	// Indicator dots, current slide filled with the accent color.
	dotY := height - dotRow/2
	dotSpace := 20
	startX := (opts.Width - (count-1)*dotSpace) / 2
	for s := 0; s < count; s++ {
		fill := theme.Subtle
		if s == slide {
			fill = theme.Accent
		}
		canvas.Circle(startX+s*dotSpace, dotY, 5, "fill:"+fill)
	}

	canvas.End()
	return nil
}

// ExportFile writes the strip to path.
func ExportFile(path string, cards []model.Card, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSVG(f, cards, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func drawCard(canvas *svg.SVG, card model.Card, x, y, w int, theme config.ThemeConfig) {
	canvas.Roundrect(x, y, w, cardHeight, 8, 8,
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", theme.Border))

	// Avatar badge.
	canvas.Circle(x+28, y+30, 16, "fill:"+theme.Accent)
	canvas.Text(x+28, y+35, card.Initials(),
		fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:12px;text-anchor:middle", theme.CardBg))

	canvas.Text(x+52, y+28, card.DisplayName(),
		fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:13px", theme.TextFg))
	if stars := card.Stars(); stars != "" {
		canvas.Text(x+52, y+44, stars,
			fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:12px", theme.Accent))
	}

	for i, line := range wrapQuote(card.Quote) {
		canvas.Text(x+16, y+76+i*18, line,
			fmt.Sprintf("fill:%s;font-family:serif;font-size:13px", theme.TextFg))
	}
}

// wrapQuote breaks the quote into at most quoteLines lines of roughly
// quoteWrap characters, ellipsizing the rest.
func wrapQuote(quote string) []string {
	words := strings.Fields(quote)
	var lines []string
	var cur strings.Builder
	for _, word := range words {
		if cur.Len() > 0 && cur.Len()+1+len(word) > quoteWrap {
			lines = append(lines, cur.String())
			cur.Reset()
			if len(lines) == quoteLines {
				last := lines[quoteLines-1]
				lines[quoteLines-1] = last + "…"
				return lines
			}
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
