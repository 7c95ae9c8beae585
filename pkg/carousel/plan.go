// Package carousel implements the sliding-window logic behind cardreel:
// tier selection from viewport width, slide planning with the full-final-slide
// overlap rule, circular navigation, and the auto-play timer.
package carousel

// Tier maps a viewport width bucket to the number of cards shown at once.
// MaxWidth is the inclusive upper bound in terminal columns; a MaxWidth of 0
// marks the default tier that applies when the width exceeds every bound.
type Tier struct {
	Name     string
	MaxWidth int
	PerView  int
}

// TierTable is an ordered list of tiers, narrowest first, with the default
// (unbounded) tier last.
type TierTable []Tier

// DefaultTiers mirrors the classic mobile/tablet/desktop split, translated
// to terminal columns.
func DefaultTiers() TierTable {
	return TierTable{
		{Name: "narrow", MaxWidth: 80, PerView: 1},
		{Name: "medium", MaxWidth: 120, PerView: 2},
		{Name: "wide", MaxWidth: 0, PerView: 3},
	}
}

// ItemsPerView selects the tier whose bound is the smallest one that still
// fits width, falling back to the default tier when width exceeds all bounds.
// A per-view value below 1 (misconfigured tier, or an empty table) is coerced
// to 1 so downstream offset math never divides by zero.
func ItemsPerView(width int, table TierTable) int {
	perView := 0
	for _, t := range table {
		if t.MaxWidth == 0 {
			// Default tier. Keep it as the fallback but let a
			// narrower matching tier win.
			if perView == 0 {
				perView = t.PerView
			}
			continue
		}
		if width <= t.MaxWidth {
			perView = t.PerView
			break
		}
	}
	if perView < 1 {
		return 1
	}
	return perView
}

// SlideCount returns how many slides are needed to show n items perView at a
// time. A deck that fits in one window (including an empty deck) is a single
// slide. When the division is not exact, one extra slide is added; that slide
// overlaps the previous one rather than showing an underfull window.
func SlideCount(n, perView int) int {
	if perView < 1 {
		perView = 1
	}
	if n <= perView {
		return 1
	}
	count := n / perView
	if n%perView != 0 {
		count++
	}
	return count
}

// StartIndex returns the index of the first item visible on the given slide.
// The last slide is pulled back so it always shows a full window when the
// deck has at least perView items: the leftover items overlap with the
// previous slide instead of leaving blank space. Slide 0 always starts at 0,
// even when the deck itself is smaller than one window.
func StartIndex(slide, n, perView int) int {
	if perView < 1 {
		perView = 1
	}
	if slide <= 0 || n <= 0 {
		return 0
	}
	base := slide * perView
	if n-base < perView {
		base = n - perView
	}
	if base < 0 {
		return 0
	}
	return base
}

// OffsetPercent converts a start index into the horizontal translation of a
// track whose items each occupy 100/perView percent of the window.
func OffsetPercent(start, perView int) float64 {
	if perView < 1 {
		perView = 1
	}
	return float64(start) * (100.0 / float64(perView))
}

// SlideFor returns the slide on which the given item first becomes visible.
// Used to jump straight to a card found by search.
func SlideFor(item, n, perView int) int {
	count := SlideCount(n, perView)
	for s := 0; s < count; s++ {
		start := StartIndex(s, n, perView)
		if item >= start && item < start+max(perView, 1) {
			return s
		}
	}
	return count - 1
}
