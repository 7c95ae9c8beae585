package carousel

// Change describes the carousel state after a navigation or retier, passed to
// the onChange collaborator so the rendering layer can refresh the track
// offset and indicator row.
type Change struct {
	Slide      int
	SlideCount int
	StartIndex int
	Offset     float64
	PerView    int
}

// Carousel tracks the current slide over a fixed deck of items and applies
// the circular navigation and resize-clamp rules. One Carousel per widget
// instance; it is not safe for concurrent use and expects to be driven from
// a single event loop.
type Carousel struct {
	n        int
	tiers    TierTable
	perView  int
	current  int
	onChange func(Change)
}

// New creates a carousel over n items using the given tier table. A nil or
// empty table falls back to DefaultTiers. The initial per-view value is the
// widest tier's until SetViewportWidth is called.
func New(n int, tiers TierTable, onChange func(Change)) *Carousel {
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	c := &Carousel{
		n:        n,
		tiers:    tiers,
		onChange: onChange,
	}
	c.perView = ItemsPerView(1<<30, tiers)
	return c
}

// Len returns the number of items in the deck.
func (c *Carousel) Len() int { return c.n }

// PerView returns the current items-per-view value.
func (c *Carousel) PerView() int { return c.perView }

// Slide returns the current slide index.
func (c *Carousel) Slide() int { return c.current }

// SlideCount returns the number of slides at the current tier.
func (c *Carousel) SlideCount() int { return SlideCount(c.n, c.perView) }

// StartIndex returns the first visible item index on the current slide.
func (c *Carousel) StartIndex() int { return StartIndex(c.current, c.n, c.perView) }

// Offset returns the track translation percentage for the current slide.
func (c *Carousel) Offset() float64 { return OffsetPercent(c.StartIndex(), c.perView) }

// GoTo navigates to the given slide. Out-of-range requests wrap: one past the
// end returns to the first slide and one before the start jumps to the last,
// so next/prev cycle endlessly.
func (c *Carousel) GoTo(slide int) {
	count := c.SlideCount()
	switch {
	case slide < 0:
		slide = count - 1
	case slide >= count:
		slide = 0
	}
	c.current = slide
	c.notify()
}

// Next advances one slide, wrapping to the first after the last.
func (c *Carousel) Next() { c.GoTo(c.current + 1) }

// Prev goes back one slide, wrapping to the last before the first.
func (c *Carousel) Prev() { c.GoTo(c.current - 1) }

// SetItems replaces the deck size, clamping the current slide if the new deck
// has fewer slides. Used on live deck reload.
func (c *Carousel) SetItems(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	c.clamp()
	c.notify()
}

// SetViewportWidth retiers the carousel for a new viewport width. When the
// per-view value changes and the current slide no longer exists, the slide is
// clamped to the last one rather than wrapped: a resize is a correction, not
// a navigation.
func (c *Carousel) SetViewportWidth(width int) {
	perView := ItemsPerView(width, c.tiers)
	if perView == c.perView {
		return
	}
	c.perView = perView
	c.clamp()
	c.notify()
}

func (c *Carousel) clamp() {
	if count := c.SlideCount(); c.current >= count {
		c.current = count - 1
	}
	if c.current < 0 {
		c.current = 0
	}
}

func (c *Carousel) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(Change{
		Slide:      c.current,
		SlideCount: c.SlideCount(),
		StartIndex: c.StartIndex(),
		Offset:     c.Offset(),
		PerView:    c.perView,
	})
}
