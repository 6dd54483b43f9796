package vlist

// Engine is the imperative handle hosts hold: a Store and a Scroller wired
// together behind the boundary contract from the package doc. Reports flow
// in, ranges and offsets flow out, and the three event hooks cover the
// notification categories a renderer needs.
type Engine struct {
	store    *Store
	scroller *Scroller
}

// New creates an engine for itemCount items.
func New(itemCount int, opts ...Option) *Engine {
	cfg := newConfig(opts)
	store := NewStore(itemCount, opts...)
	return &Engine{
		store:    store,
		scroller: NewScroller(store, cfg.apply),
	}
}

// --- Reports consumed from the host ---

// ReportItemSize records the measured size of the item at index.
func (e *Engine) ReportItemSize(index int, size float64) {
	e.store.ReportItemSize(index, size)
}

// ReportViewportSize records the viewport's visible extent.
func (e *Engine) ReportViewportSize(size float64) {
	e.store.ReportViewportSize(size)
}

// ReportScrollOffset records a raw scroll position from the host.
func (e *Engine) ReportScrollOffset(offset float64) {
	e.store.ReportScrollOffset(offset)
}

// SetItemCount resizes the list (see Store.SetItemCount for shift mode).
func (e *Engine) SetItemCount(count int) {
	e.store.SetItemCount(count)
}

// SetStartMargin updates the leading space before the first item.
func (e *Engine) SetStartMargin(m float64) {
	e.store.SetStartMargin(m)
}

// SetItemSizeHint replaces the fallback size for unmeasured items.
func (e *Engine) SetItemSizeHint(hint float64) {
	e.store.SetItemSizeHint(hint)
}

// --- Read-only accessors ---

// ScrollOffset returns the current scroll offset.
func (e *Engine) ScrollOffset() float64 { return e.store.ScrollOffset() }

// ScrollSize returns the full scrollable extent along the axis.
func (e *Engine) ScrollSize() float64 { return e.store.TotalSize() }

// ViewportSize returns the viewport extent along the axis.
func (e *Engine) ViewportSize() float64 { return e.store.ViewportSize() }

// ItemCount returns the number of items.
func (e *Engine) ItemCount() int { return e.store.ItemCount() }

// IsScrolling reports whether a scroll is in flight.
func (e *Engine) IsScrolling() bool { return e.store.IsScrolling() }

// FindStartIndex returns the first index of the current visible window.
func (e *Engine) FindStartIndex() int { return e.store.VisibleRange().Start }

// FindEndIndex returns the last index of the current visible window.
func (e *Engine) FindEndIndex() int { return e.store.VisibleRange().End }

// VisibleRange returns the current visible window including overscan.
func (e *Engine) VisibleRange() Range { return e.store.VisibleRange() }

// GetItemOffset returns the leading-edge offset of the item at index.
func (e *Engine) GetItemOffset(index int) float64 { return e.store.ItemOffset(index) }

// GetItemSize returns the effective size of the item at index.
func (e *Engine) GetItemSize(index int) float64 { return e.store.ItemSize(index) }

// --- Imperative scrolling ---

// ScrollTo requests an absolute scroll, clamped into the scrollable extent.
func (e *Engine) ScrollTo(offset float64) { e.scroller.ScrollTo(offset) }

// ScrollBy requests a relative scroll.
func (e *Engine) ScrollBy(delta float64) { e.scroller.ScrollBy(delta) }

// ScrollToIndex scrolls the item at index into the viewport.
func (e *Engine) ScrollToIndex(index int, opts ...ScrollToIndexOption) {
	e.scroller.ScrollToIndex(index, opts...)
}

// --- Events surfaced to the host ---

// OnRangeChanged calls fn whenever the visible window actually changes.
// Notifications with an identical [start, end] pair are suppressed.
// Returns an unsubscribe function.
func (e *Engine) OnRangeChanged(fn func(Range)) (unsubscribe func()) {
	last := e.store.VisibleRange()
	return e.store.Subscribe(EventStateChanged, func(Event) {
		r := e.store.VisibleRange()
		if r == last {
			return
		}
		last = r
		fn(r)
	})
}

// OnScroll calls fn with the new offset whenever a reported scroll moved it.
// Jump corrections do not fire it. Returns an unsubscribe function.
func (e *Engine) OnScroll(fn func(offset float64)) (unsubscribe func()) {
	return e.store.Subscribe(EventScroll, func(Event) {
		fn(e.store.ScrollOffset())
	})
}

// OnScrollEnd calls fn once scrolling has been quiescent. Returns an
// unsubscribe function.
func (e *Engine) OnScrollEnd(fn func()) (unsubscribe func()) {
	return e.store.Subscribe(EventScrollEnd, func(Event) {
		fn()
	})
}

// Store exposes the underlying store for advanced wiring.
func (e *Engine) Store() *Store { return e.store }

// Scroller exposes the underlying scroller for advanced wiring.
func (e *Engine) Scroller() *Scroller { return e.scroller }

// Close releases the engine's timer and subscriptions.
func (e *Engine) Close() {
	e.scroller.Close()
	e.store.Close()
}
