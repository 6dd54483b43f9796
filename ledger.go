package vlist

// unmeasuredSize marks an index whose true size has not been reported yet.
const unmeasuredSize = -1

// Ledger tracks per-index item sizes along the scroll axis and answers
// offset<->index queries.
//
// Each index is either measured (an exact size was reported) or estimated.
// Estimated entries all share the current estimate: the user-supplied hint if
// one was given, otherwise a running average of first measurements, otherwise
// defaultItemSize. Offsets are served from two Fenwick trees — one summing
// measured sizes, one counting measured entries — so a change to the shared
// estimate re-prices every unmeasured entry without touching the trees:
//
//	offsetOf(i) = startMargin + measuredSumBefore(i) + unmeasuredBefore(i)*estimate
//
// Query methods clamp out-of-range indices; mutating methods reject them.
// A size report for an index that no longer exists after a shrink is
// therefore a silent no-op.
type Ledger struct {
	sizes       []float64 // measured size per index, unmeasuredSize sentinel
	measuredSum *fenwick  // measured sizes (0 at unmeasured indices)
	measuredCnt *fenwick  // 1 at measured indices
	startMargin float64

	hint   float64 // user-supplied estimate, 0 = derive from average
	avgSum float64 // running average over first measurements
	avgCnt int
}

// NewLedger creates a ledger for count items, all unmeasured. A positive
// hint fixes the estimate for unmeasured items; pass 0 to derive it from
// measurements instead.
func NewLedger(count int, hint float64) *Ledger {
	if count < 0 {
		count = 0
	}
	l := &Ledger{hint: max(hint, 0)}
	l.sizes = make([]float64, count)
	for i := range l.sizes {
		l.sizes[i] = unmeasuredSize
	}
	l.rebuild()
	return l
}

// Count returns the number of tracked items.
func (l *Ledger) Count() int {
	return len(l.sizes)
}

// Estimate returns the size assumed for unmeasured items.
func (l *Ledger) Estimate() float64 {
	if l.hint > 0 {
		return l.hint
	}
	if l.avgCnt > 0 {
		return l.avgSum / float64(l.avgCnt)
	}
	return defaultItemSize
}

// SetEstimate sets the fallback size for unmeasured items. A non-positive
// value reverts to the measurement-derived estimate.
func (l *Ledger) SetEstimate(hint float64) {
	l.hint = max(hint, 0)
}

// StartMargin returns the leading space before the first item.
func (l *Ledger) StartMargin() float64 {
	return l.startMargin
}

// SetStartMargin sets the leading space before the first item. Negative
// values are treated as zero.
func (l *Ledger) SetStartMargin(m float64) {
	l.startMargin = max(m, 0)
}

// Measured reports whether index i has an exact size.
func (l *Ledger) Measured(i int) bool {
	return i >= 0 && i < len(l.sizes) && l.sizes[i] != unmeasuredSize
}

// SizeOf returns the effective size of index i, clamped into range.
// Returns 0 when the ledger is empty.
func (l *Ledger) SizeOf(i int) float64 {
	if len(l.sizes) == 0 {
		return 0
	}
	i = clampIndex(i, len(l.sizes))
	if l.sizes[i] == unmeasuredSize {
		return l.Estimate()
	}
	return l.sizes[i]
}

// OffsetOf returns the offset of the leading edge of index i, clamped into
// [0, count]. OffsetOf(count) equals TotalSize.
func (l *Ledger) OffsetOf(i int) float64 {
	if i < 0 {
		i = 0
	}
	if i > len(l.sizes) {
		i = len(l.sizes)
	}
	unmeasured := float64(i) - l.measuredCnt.prefix(i)
	return l.startMargin + l.measuredSum.prefix(i) + unmeasured*l.Estimate()
}

// TotalSize returns the full scrollable extent, including the start margin.
func (l *Ledger) TotalSize() float64 {
	return l.OffsetOf(len(l.sizes))
}

// IndexAtOffset returns the index of the item whose span contains offset:
// the largest i with OffsetOf(i) <= offset. Offsets before the first item
// map to 0, offsets at or past the end map to count-1. Returns 0 for an
// empty ledger.
func (l *Ledger) IndexAtOffset(offset float64) int {
	n := len(l.sizes)
	if n == 0 {
		return 0
	}
	// Binary search over the monotone offset sequence. An item starting
	// exactly at offset wins the tie (inclusive start).
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.OffsetOf(mid) <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// ReportMeasured records an exact size for index i. It returns the change in
// the item's own effective size and whether anything changed. Out-of-range
// indices and negative sizes are rejected; re-reporting an identical size is
// a no-op.
//
// The first measurement of an index feeds the running average; replacing an
// already-measured value does not, so a re-measure of +d moves TotalSize by
// exactly +d.
func (l *Ledger) ReportMeasured(i int, size float64) (delta float64, changed bool) {
	if i < 0 || i >= len(l.sizes) || size < 0 {
		return 0, false
	}
	old := l.sizes[i]
	if old == size {
		return 0, false
	}
	if old == unmeasuredSize {
		prev := l.Estimate()
		l.avgSum += size
		l.avgCnt++
		l.measuredCnt.add(i, 1)
		l.measuredSum.add(i, size)
		l.sizes[i] = size
		return size - prev, true
	}
	l.measuredSum.add(i, size-old)
	l.sizes[i] = size
	return size - old, true
}

// Resize grows or shrinks the ledger to newCount items and returns the
// scroll-offset compensation the caller must apply.
//
// In normal mode, items are assumed to change at the end: growth appends
// unmeasured entries, shrink drops trailing entries, and the compensation is
// always 0. In shift mode, items change at the logical start: growth inserts
// unmeasured entries before index 0 and the compensation is their total
// estimated size; shrink drops leading entries and the compensation is the
// negative of their total size. Applying the compensation keeps the item at
// the viewport anchor visually stationary.
func (l *Ledger) Resize(newCount int, shift bool) (offsetDelta float64) {
	if newCount < 0 {
		newCount = 0
	}
	n := len(l.sizes)
	if newCount == n {
		return 0
	}

	if newCount > n {
		grown := newCount - n
		fresh := make([]float64, grown)
		for i := range fresh {
			fresh[i] = unmeasuredSize
		}
		if shift {
			l.sizes = append(fresh, l.sizes...)
			offsetDelta = float64(grown) * l.Estimate()
		} else {
			l.sizes = append(l.sizes, fresh...)
		}
	} else {
		dropped := n - newCount
		if shift {
			offsetDelta = -(l.OffsetOf(dropped) - l.startMargin)
			l.sizes = append(l.sizes[:0], l.sizes[dropped:]...)
		} else {
			l.sizes = l.sizes[:newCount]
		}
	}

	l.rebuild()
	return offsetDelta
}

// rebuild reconstructs both Fenwick trees from the size slice.
func (l *Ledger) rebuild() {
	sums := make([]float64, len(l.sizes))
	cnts := make([]float64, len(l.sizes))
	for i, s := range l.sizes {
		if s != unmeasuredSize {
			sums[i] = s
			cnts[i] = 1
		}
	}
	l.measuredSum = buildFenwick(sums)
	l.measuredCnt = buildFenwick(cnts)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
