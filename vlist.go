// Package vlist provides a virtual scrolling engine for very large lists.
//
// The engine renders nothing itself. It tracks measured and estimated item
// sizes along the scroll axis, answers offset<->index queries, computes the
// visible index window for a scroll position, and keeps the viewport visually
// stable when item sizes change above it. Hosts feed it reports (item sizes,
// viewport size, scroll offsets) and subscribe to state changes; a Bubble Tea
// adapter is included in listmodel.go.
package vlist

import "time"

const (
	// defaultItemSize is the estimate used before anything has been measured
	// and no size hint was supplied.
	defaultItemSize = 40

	// defaultOverscan is how many extra items are included on each side of
	// the strictly visible band.
	defaultOverscan = 4

	// scrollEndQuiescence is how long the engine waits after the last scroll
	// report before declaring the scroll finished.
	scrollEndQuiescence = 150 * time.Millisecond
)

// Align controls where scrollToIndex places the target item in the viewport.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

type config struct {
	sizeHint    float64
	overscan    int
	startMargin float64
	shift       bool
	horizontal  bool
	clock       Clock
	apply       func(offset float64, smooth bool)
}

// Option configures an Engine or Store at construction time.
type Option func(*config)

// WithItemSizeHint sets the fallback size for unmeasured items. Without a
// hint the engine uses a running average of measured sizes.
func WithItemSizeHint(size float64) Option {
	return func(c *config) {
		if size > 0 {
			c.sizeHint = size
		}
	}
}

// WithOverscan sets how many items beyond the visible band are included in
// the computed range on each side. Default 4.
func WithOverscan(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.overscan = n
		}
	}
}

// WithStartMargin reserves leading space before the first item.
func WithStartMargin(m float64) Option {
	return func(c *config) {
		if m >= 0 {
			c.startMargin = m
		}
	}
}

// WithShift switches item-count changes to shift mode: inserts and removals
// are assumed to happen at the logical start of the list, and the scroll
// offset is compensated so the items on screen stay visually anchored.
func WithShift() Option {
	return func(c *config) { c.shift = true }
}

// WithHorizontal marks the scroll axis as horizontal. The engine's geometry
// is axis-agnostic; the flag is surfaced to hosts so adapters can pick the
// matching viewport dimension and scroll events.
func WithHorizontal() Option {
	return func(c *config) { c.horizontal = true }
}

// WithClock replaces the timer facility used for scroll-end detection.
// Hosts with their own schedulers (or tests) supply one; the default uses
// time.AfterFunc.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithScrollApplier sets the host callback that performs the physical scroll
// for scrollTo/scrollBy/scrollToIndex and jump corrections. The default
// applier reports the offset straight back into the engine, which is correct
// for hosts whose scroll position is purely virtual.
func WithScrollApplier(fn func(offset float64, smooth bool)) Option {
	return func(c *config) {
		if fn != nil {
			c.apply = fn
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		overscan: defaultOverscan,
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
