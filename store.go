package vlist

import "sync"

// Event identifies a notification category. Subscribers register with a mask
// of the categories they care about so a raw scroll report doesn't re-render
// consumers that only track the visible range.
type Event uint8

const (
	// EventStateChanged fires when geometry or derived state changed: item
	// count, sizes, viewport size, start margin, or a jump correction.
	EventStateChanged Event = 1 << iota

	// EventScroll fires when a reported scroll moved the offset. Jump
	// corrections deliberately do not fire it.
	EventScroll

	// EventScrollEnd fires once scrolling has been quiescent for
	// scrollEndQuiescence.
	EventScrollEnd
)

type listener struct {
	mask Event
	fn   func(Event)
}

// Store is the engine's state machine: item count, size ledger, scroll
// offset, scrolling flag and jump counter. Every reported action mutates it
// atomically and notifies subscribers of the matching category.
//
// Hosts drive the Store from a single event loop; the internal mutex exists
// only because the default scroll-end timer fires on a runtime goroutine.
type Store struct {
	mu     sync.Mutex
	ledger *Ledger

	overscan   int
	shift      bool
	horizontal bool

	scrollOffset float64
	viewportSize float64
	isScrolling  bool

	// jumpCount increments on every silent offset compensation; pendingJump
	// accumulates the physical delta the scroller still has to apply.
	jumpCount   int
	pendingJump float64

	clock           Clock
	cancelScrollEnd func()
	timerGen        int

	// listeners keeps registration order; unsubscribed slots are nil so
	// removal during delivery cannot skip or crash later subscribers.
	listeners []*listener
	closed    bool
}

// NewStore creates a store for itemCount items. One store serves one mounted
// list; Close releases its subscriptions and timer.
func NewStore(itemCount int, opts ...Option) *Store {
	cfg := newConfig(opts)
	if itemCount < 0 {
		itemCount = 0
	}
	s := &Store{
		ledger:     NewLedger(itemCount, cfg.sizeHint),
		overscan:   cfg.overscan,
		shift:      cfg.shift,
		horizontal: cfg.horizontal,
		clock:      cfg.clock,
	}
	s.ledger.SetStartMargin(cfg.startMargin)
	return s
}

// Subscribe registers fn for the categories in mask and returns its
// unsubscribe function. Delivery is in registration order; unsubscribing is
// safe at any time, including from inside a notification.
func (s *Store) Subscribe(mask Event, fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil || mask == 0 {
		return func() {}
	}
	s.listeners = append(s.listeners, &listener{mask: mask, fn: fn})
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
		s.mu.Unlock()
	}
}

// notify delivers ev outside the lock. The slice header is captured under
// the lock; nil-slot removal mutates the shared backing array, so a listener
// removed mid-delivery is observed immediately.
func (s *Store) notify(ev Event) {
	if ev == 0 {
		return
	}
	s.mu.Lock()
	ls := s.listeners
	s.mu.Unlock()
	for _, l := range ls {
		if l != nil && l.mask&ev != 0 {
			l.fn(ev)
		}
	}
}

// SetItemCount resizes the list. In shift mode the change is assumed to
// happen at the logical start and the scroll offset is compensated so the
// anchored items stay put; the compensation counts as a jump, not a scroll.
// Negative counts are rejected.
func (s *Store) SetItemCount(count int) {
	if count < 0 {
		return
	}
	s.mu.Lock()
	if count == s.ledger.Count() {
		s.mu.Unlock()
		return
	}
	delta := s.ledger.Resize(count, s.shift)
	if delta != 0 {
		s.scrollOffset = max(s.scrollOffset+delta, 0)
		s.pendingJump += delta
		s.jumpCount++
		logger.Debug("shift compensation", "delta", delta, "offset", s.scrollOffset)
	}
	s.clampOffsetLocked()
	s.mu.Unlock()
	s.notify(EventStateChanged)
}

// SetStartMargin updates the leading space before the first item.
func (s *Store) SetStartMargin(m float64) {
	s.mu.Lock()
	if m == s.ledger.StartMargin() {
		s.mu.Unlock()
		return
	}
	s.ledger.SetStartMargin(m)
	s.mu.Unlock()
	s.notify(EventStateChanged)
}

// SetItemSizeHint replaces the fallback size used for unmeasured items.
// A non-positive hint reverts to the measurement-derived estimate.
func (s *Store) SetItemSizeHint(hint float64) {
	s.mu.Lock()
	s.ledger.SetEstimate(hint)
	s.clampOffsetLocked()
	s.mu.Unlock()
	s.notify(EventStateChanged)
}

// ReportScrollOffset records a scroll position observed by the host. A
// changed offset marks the store as scrolling and re-arms the scroll-end
// timer; reporting the current offset is a no-op, which is what keeps the
// scroller's jump catch-up from looking like a user scroll.
func (s *Store) ReportScrollOffset(offset float64) {
	offset = max(offset, 0)
	s.mu.Lock()
	if s.closed || offset == s.scrollOffset {
		s.mu.Unlock()
		return
	}
	s.scrollOffset = offset
	s.isScrolling = true
	s.armScrollEndLocked()
	s.mu.Unlock()
	s.notify(EventStateChanged | EventScroll)
}

// ReportItemSize records a measured size for an item. If the item starts at
// or before the current scroll offset, its size change would visually shift
// everything on screen, so the offset is silently adjusted by the same delta
// and jumpCount incremented — no scroll event, no isScrolling churn. At the
// very top of the list no compensation happens; content naturally grows
// downward there.
//
// Out-of-range indices (including measurements racing a shrink) and negative
// sizes are ignored. Re-reporting an identical size changes nothing.
func (s *Store) ReportItemSize(index int, size float64) {
	s.mu.Lock()
	itemStart := s.ledger.OffsetOf(index)
	delta, changed := s.ledger.ReportMeasured(index, size)
	if !changed {
		s.mu.Unlock()
		return
	}
	if delta != 0 && itemStart <= s.scrollOffset && s.scrollOffset > 0 {
		s.scrollOffset = max(s.scrollOffset+delta, 0)
		s.pendingJump += delta
		s.jumpCount++
		logger.Debug("jump correction", "index", index, "delta", delta, "offset", s.scrollOffset)
	}
	s.mu.Unlock()
	s.notify(EventStateChanged)
}

// ReportViewportSize records the viewport's visible extent. A zero size is a
// degenerate but valid state that produces an empty-ish range, not an error.
func (s *Store) ReportViewportSize(size float64) {
	size = max(size, 0)
	s.mu.Lock()
	if size == s.viewportSize {
		s.mu.Unlock()
		return
	}
	s.viewportSize = size
	s.mu.Unlock()
	s.notify(EventStateChanged)
}

// VisibleRange derives the current visible index window. It is recomputed
// from the inputs on every call, never stored.
func (s *Store) VisibleRange() Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rangeFor(s.ledger, s.scrollOffset, s.viewportSize, s.overscan)
}

// ScrollOffset returns the current logical scroll offset.
func (s *Store) ScrollOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollOffset
}

// ViewportSize returns the viewport extent along the scroll axis.
func (s *Store) ViewportSize() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewportSize
}

// TotalSize returns the full scrollable extent.
func (s *Store) TotalSize() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TotalSize()
}

// ItemCount returns the number of items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Count()
}

// ItemOffset returns the leading-edge offset of index i (clamped).
func (s *Store) ItemOffset(i int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.OffsetOf(i)
}

// ItemSize returns the effective size of index i (clamped).
func (s *Store) ItemSize(i int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SizeOf(i)
}

// ItemMeasured reports whether index i has an exact size.
func (s *Store) ItemMeasured(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Measured(i)
}

// IndexAtOffset returns the index whose span contains offset.
func (s *Store) IndexAtOffset(offset float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IndexAtOffset(offset)
}

// IsScrolling reports whether a scroll is in flight (quiescence window not
// yet elapsed).
func (s *Store) IsScrolling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isScrolling
}

// JumpCount returns how many silent offset compensations have occurred.
func (s *Store) JumpCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jumpCount
}

// FlushJump returns the accumulated physical compensation not yet applied to
// the host's scroll position and resets it. The scroller calls this whenever
// jumpCount moves.
func (s *Store) FlushJump() (delta float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingJump == 0 {
		return 0, false
	}
	delta = s.pendingJump
	s.pendingJump = 0
	return delta, true
}

// Horizontal reports whether the scroll axis is horizontal.
func (s *Store) Horizontal() bool {
	return s.horizontal
}

// Close cancels the scroll-end timer and drops all subscriptions. The store
// must not be used afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.timerGen++
	if s.cancelScrollEnd != nil {
		s.cancelScrollEnd()
		s.cancelScrollEnd = nil
	}
	s.listeners = nil
}

// armScrollEndLocked (re)arms the quiescence timer. The generation counter
// keeps a cancelled-but-already-fired timer from ending a newer scroll.
func (s *Store) armScrollEndLocked() {
	if s.cancelScrollEnd != nil {
		s.cancelScrollEnd()
	}
	s.timerGen++
	gen := s.timerGen
	s.cancelScrollEnd = s.clock.AfterFunc(scrollEndQuiescence, func() {
		s.scrollEnded(gen)
	})
}

func (s *Store) scrollEnded(gen int) {
	s.mu.Lock()
	if s.closed || gen != s.timerGen || !s.isScrolling {
		s.mu.Unlock()
		return
	}
	s.isScrolling = false
	s.cancelScrollEnd = nil
	offset := s.scrollOffset
	s.mu.Unlock()
	logger.Debug("scroll end", "offset", offset)
	s.notify(EventScrollEnd)
}

// clampOffsetLocked keeps the offset inside the scrollable extent after the
// list shrinks under the viewport.
func (s *Store) clampOffsetLocked() {
	limit := max(s.ledger.TotalSize()-s.viewportSize, 0)
	if s.scrollOffset > limit {
		s.scrollOffset = limit
	}
}
