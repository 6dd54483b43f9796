package vlist

// Range is an inclusive window of item indices. A range with End < Start is
// empty.
type Range struct {
	Start, End int
}

// emptyRange is the canonical empty window.
var emptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

// rangeFor computes the visible index window for a scroll position: the
// items overlapping [offset, offset+viewport], widened by overscan on each
// side and clamped to the ledger. A zero-size viewport still yields the
// single item under the offset (degenerate but valid); an empty ledger
// yields the empty range.
func rangeFor(l *Ledger, offset, viewport float64, overscan int) Range {
	n := l.Count()
	if n == 0 {
		return emptyRange
	}
	start := l.IndexAtOffset(offset) - overscan
	end := l.IndexAtOffset(offset+viewport) + overscan
	return Range{
		Start: max(start, 0),
		End:   min(end, n-1),
	}
}
