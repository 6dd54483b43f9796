package vlist

import "testing"

// newScrollerFixture builds a store with the default loopback applier:
// requested offsets feed straight back in as scroll reports.
func newScrollerFixture(t *testing.T, count int, hint, viewport float64) (*Store, *Scroller, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	s := NewStore(count, WithItemSizeHint(hint), WithClock(clock))
	s.ReportViewportSize(viewport)
	return s, NewScroller(s, nil), clock
}

func TestScrollerClamping(t *testing.T) {
	s, sc, _ := newScrollerFixture(t, 10, 100, 300) // total 1000, limit 700

	for _, tc := range []struct {
		name   string
		target float64
		want   float64
	}{
		{"Inside", 250, 250},
		{"Negative", -50, 0},
		{"PastEnd", 5000, 700},
		{"AtLimit", 700, 700},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sc.ScrollTo(tc.target)
			if got := s.ScrollOffset(); got != tc.want {
				t.Errorf("ScrollTo(%v): offset = %v, want %v", tc.target, got, tc.want)
			}
		})
	}

	t.Run("ViewportLargerThanContent", func(t *testing.T) {
		s, sc, _ := newScrollerFixture(t, 2, 10, 300)
		sc.ScrollTo(100)
		if got := s.ScrollOffset(); got != 0 {
			t.Errorf("offset = %v, want 0", got)
		}
	})
}

func TestScrollBy(t *testing.T) {
	s, sc, _ := newScrollerFixture(t, 10, 100, 300)

	sc.ScrollBy(150)
	sc.ScrollBy(150)
	if got := s.ScrollOffset(); got != 300 {
		t.Errorf("offset = %v, want 300", got)
	}
	sc.ScrollBy(-1000)
	if got := s.ScrollOffset(); got != 0 {
		t.Errorf("offset = %v, want 0", got)
	}
}

func TestScrollToIndex(t *testing.T) {
	t.Run("Alignments", func(t *testing.T) {
		s, sc, _ := newScrollerFixture(t, 10, 100, 300)

		sc.ScrollToIndex(5)
		if got := s.ScrollOffset(); got != 500 {
			t.Errorf("start align: offset = %v, want 500", got)
		}

		sc.ScrollToIndex(5, WithAlign(AlignCenter))
		if got := s.ScrollOffset(); got != 400 {
			t.Errorf("center align: offset = %v, want 400", got)
		}

		sc.ScrollToIndex(5, WithAlign(AlignEnd))
		if got := s.ScrollOffset(); got != 300 {
			t.Errorf("end align: offset = %v, want 300", got)
		}
	})

	t.Run("ClampsIndexAndOffset", func(t *testing.T) {
		s, sc, _ := newScrollerFixture(t, 10, 100, 300)

		sc.ScrollToIndex(999)
		if got := s.ScrollOffset(); got != 700 {
			t.Errorf("offset = %v, want 700", got)
		}
		sc.ScrollToIndex(-3)
		if got := s.ScrollOffset(); got != 0 {
			t.Errorf("offset = %v, want 0", got)
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		s, sc, _ := newScrollerFixture(t, 0, 0, 300)
		sc.ScrollToIndex(5)
		if got := s.ScrollOffset(); got != 0 {
			t.Errorf("offset = %v, want 0", got)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		s, sc, _ := newScrollerFixture(t, 100, 10, 100)
		s.ReportItemSize(40, 10)

		sc.ScrollToIndex(40)
		if got, want := s.ScrollOffset(), s.ItemOffset(40); got != want {
			t.Errorf("offset = %v, want ItemOffset(40) = %v", got, want)
		}
	})
}

func TestScrollToIndexCorrection(t *testing.T) {
	// 1000 unmeasured items, no hint: estimate 40, so index 500 is first
	// targeted at 500*40 = 20000. Items then measure at 60 each while the
	// scroll is in flight; the target must be re-issued until it settles
	// at 500*60 = 30000.
	t.Run("EstimateRefinedWhileScrolling", func(t *testing.T) {
		clock := &manualClock{}
		s := NewStore(1000, WithClock(clock))
		s.ReportViewportSize(100)
		sc := NewScroller(s, nil)

		sc.ScrollToIndex(500)
		if got := s.ScrollOffset(); got != 20000 {
			t.Fatalf("initial target = %v, want 20000", got)
		}

		for i := 0; i < 500; i++ {
			s.ReportItemSize(i, 60)
		}
		if got := s.ScrollOffset(); got != 30000 {
			t.Errorf("corrected target = %v, want 30000", got)
		}
	})

	t.Run("TargetMeasurementEndsCorrection", func(t *testing.T) {
		clock := &manualClock{}
		s := NewStore(100, WithClock(clock))
		s.ReportViewportSize(100)
		sc := NewScroller(s, nil)

		sc.ScrollToIndex(50)
		s.ReportItemSize(50, 40) // target measured: correction finishes

		// A later measurement of an unrelated below-viewport item must not
		// drag the offset back toward the old target.
		offset := s.ScrollOffset()
		s.ReportItemSize(80, 90)
		if got := s.ScrollOffset(); got != offset {
			t.Errorf("offset = %v, want %v after correction finished", got, offset)
		}
	})

	t.Run("ScrollEndCancelsCorrection", func(t *testing.T) {
		clock := &manualClock{}
		s := NewStore(1000, WithClock(clock))
		s.ReportViewportSize(100)
		sc := NewScroller(s, nil)

		sc.ScrollToIndex(500)
		clock.fire() // quiescence: the scroll completed short of the target

		s.ReportItemSize(0, 60)
		// Only the jump compensation moved the offset; no re-targeting.
		if got := s.ScrollOffset(); got != 20020 {
			t.Errorf("offset = %v, want 20020", got)
		}
	})

	t.Run("ManualScrollSupersedes", func(t *testing.T) {
		clock := &manualClock{}
		s := NewStore(1000, WithClock(clock))
		s.ReportViewportSize(100)
		sc := NewScroller(s, nil)

		sc.ScrollToIndex(500)
		sc.ScrollTo(1000)

		s.ReportItemSize(0, 60)
		if got := s.ScrollOffset(); got != 1020 {
			t.Errorf("offset = %v, want 1020 (manual scroll + jump delta)", got)
		}
	})

	t.Run("TargetDroppedByShrink", func(t *testing.T) {
		clock := &manualClock{}
		s := NewStore(1000, WithClock(clock))
		s.ReportViewportSize(100)
		sc := NewScroller(s, nil)

		sc.ScrollToIndex(500)
		s.SetItemCount(100)

		offset := s.ScrollOffset()
		s.ReportItemSize(99, 60)
		if got := s.ScrollOffset(); got != offset {
			t.Errorf("offset = %v, want %v after target vanished", got, offset)
		}
	})
}

func TestScrollerJumpFix(t *testing.T) {
	clock := &manualClock{}
	s := NewStore(100, WithItemSizeHint(10), WithClock(clock))
	s.ReportViewportSize(100)

	// A host with a real scroll position: the applier records what the
	// engine asks it to apply and reports the result back, as a platform
	// scroll observer would.
	var physical float64
	sc := NewScroller(s, func(offset float64, smooth bool) {
		physical = offset
		s.ReportScrollOffset(offset)
	})

	sc.ScrollTo(500)
	clock.fire()

	scrolls := 0
	s.Subscribe(EventScroll, func(Event) { scrolls++ })

	s.ReportItemSize(10, 30) // +20 above the viewport

	if physical != 520 {
		t.Errorf("physical position = %v, want 520", physical)
	}
	if got := s.ScrollOffset(); got != 520 {
		t.Errorf("logical offset = %v, want 520", got)
	}
	if scrolls != 0 {
		t.Errorf("jump fix fired %d scroll events, want 0", scrolls)
	}
	if _, ok := s.FlushJump(); ok {
		t.Error("pending jump left unflushed")
	}
}
