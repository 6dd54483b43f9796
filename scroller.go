package vlist

import "sync"

// scrollToIndexOpts configures ScrollToIndex.
type scrollToIndexOpts struct {
	align  Align
	smooth bool
}

// ScrollToIndexOption configures a ScrollToIndex call.
type ScrollToIndexOption func(*scrollToIndexOpts)

// WithAlign places the target item at the start, center or end of the
// viewport. Default AlignStart.
func WithAlign(a Align) ScrollToIndexOption {
	return func(o *scrollToIndexOpts) { o.align = a }
}

// WithSmooth requests an animated scroll from the host. Hosts without smooth
// scrolling treat it as immediate.
func WithSmooth() ScrollToIndexOption {
	return func(o *scrollToIndexOpts) { o.smooth = true }
}

// Scroller translates between index space and offset space for imperative
// scrolling. It never moves anything itself: every motion is a request to
// the host applier, and the resulting position flows back in through
// Store.ReportScrollOffset.
//
// Two consistency duties live here. When the store compensates the logical
// offset (jump correction), the scroller applies the same delta to the
// physical position before the next paint; because the store then sees a
// report matching its logical offset, no scroll event fires. And when
// ScrollToIndex targets an unmeasured item, the first target is an estimate:
// each later measurement that moves the target re-issues the scroll until
// the item is measured or the scroll completes.
type Scroller struct {
	store *Store
	apply func(offset float64, smooth bool)
	unsub func()

	mu            sync.Mutex
	pendingIndex  int // index still being scrolled toward, -1 when idle
	pendingAlign  Align
	pendingSmooth bool
	lastIssued    float64
}

// NewScroller binds a scroller to the store. A nil apply falls back to
// reporting the offset straight into the store, which suits hosts whose
// scroll position is purely virtual.
func NewScroller(store *Store, apply func(offset float64, smooth bool)) *Scroller {
	sc := &Scroller{
		store:        store,
		apply:        apply,
		pendingIndex: -1,
	}
	if sc.apply == nil {
		sc.apply = func(offset float64, _ bool) {
			store.ReportScrollOffset(offset)
		}
	}
	sc.unsub = store.Subscribe(EventStateChanged|EventScrollEnd, sc.onEvent)
	return sc
}

// ScrollTo requests an absolute scroll. Targets are clamped into
// [0, totalSize-viewportSize]; no overscroll. A manual scroll supersedes any
// in-flight ScrollToIndex correction.
func (sc *Scroller) ScrollTo(offset float64) {
	sc.mu.Lock()
	sc.pendingIndex = -1
	sc.mu.Unlock()
	sc.apply(sc.clamp(offset), false)
}

// ScrollBy requests a relative scroll of delta from the current offset.
func (sc *Scroller) ScrollBy(delta float64) {
	sc.ScrollTo(sc.store.ScrollOffset() + delta)
}

// ScrollToIndex scrolls the item at index into the viewport. Out-of-range
// indices are clamped; an empty list is a no-op. If the item is still
// unmeasured the computed offset is an estimate and will be corrected as
// measurements arrive (see type doc).
func (sc *Scroller) ScrollToIndex(index int, opts ...ScrollToIndexOption) {
	count := sc.store.ItemCount()
	if count == 0 {
		return
	}
	index = clampIndex(index, count)

	var o scrollToIndexOpts
	for _, opt := range opts {
		opt(&o)
	}

	target := sc.targetFor(index, o.align)
	sc.mu.Lock()
	if sc.store.ItemMeasured(index) {
		sc.pendingIndex = -1
	} else {
		sc.pendingIndex = index
		sc.pendingAlign = o.align
		sc.pendingSmooth = o.smooth
	}
	sc.lastIssued = target
	sc.mu.Unlock()

	sc.apply(target, o.smooth)
}

// Close detaches the scroller from the store.
func (sc *Scroller) Close() {
	if sc.unsub != nil {
		sc.unsub()
	}
}

// onEvent runs inside store notification delivery. No scroller lock may be
// held while calling apply: the default applier reports back into the store,
// which re-enters this handler.
func (sc *Scroller) onEvent(ev Event) {
	if ev&EventScrollEnd != 0 {
		sc.mu.Lock()
		sc.pendingIndex = -1
		sc.mu.Unlock()
		return
	}

	// Physical catch-up for jump corrections, before anything repaints.
	if _, ok := sc.store.FlushJump(); ok {
		sc.apply(sc.store.ScrollOffset(), false)
	}

	sc.mu.Lock()
	index := sc.pendingIndex
	align := sc.pendingAlign
	smooth := sc.pendingSmooth
	sc.mu.Unlock()
	if index < 0 {
		return
	}
	if index >= sc.store.ItemCount() {
		// Target disappeared in a shrink.
		sc.mu.Lock()
		sc.pendingIndex = -1
		sc.mu.Unlock()
		return
	}

	target := sc.targetFor(index, align)
	measured := sc.store.ItemMeasured(index)

	sc.mu.Lock()
	moved := target != sc.lastIssued
	if moved {
		sc.lastIssued = target
	}
	if measured {
		sc.pendingIndex = -1
	}
	sc.mu.Unlock()

	if moved {
		sc.apply(target, smooth)
	}
}

// targetFor converts an index and alignment into a clamped scroll offset.
func (sc *Scroller) targetFor(index int, align Align) float64 {
	offset := sc.store.ItemOffset(index)
	switch align {
	case AlignCenter:
		offset -= (sc.store.ViewportSize() - sc.store.ItemSize(index)) / 2
	case AlignEnd:
		offset -= sc.store.ViewportSize() - sc.store.ItemSize(index)
	}
	return sc.clamp(offset)
}

func (sc *Scroller) clamp(offset float64) float64 {
	limit := max(sc.store.TotalSize()-sc.store.ViewportSize(), 0)
	return min(max(offset, 0), limit)
}
