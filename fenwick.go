package vlist

// fenwick is a binary indexed tree over float64 values, used as the offset
// cache: point updates and prefix sums in O(log n). Indexing is 0-based at
// the API, 1-based internally.
type fenwick struct {
	tree []float64
	n    int
}

func newFenwick(n int) *fenwick {
	return &fenwick{tree: make([]float64, n+1), n: n}
}

// buildFenwick constructs a tree from initial values in O(n).
func buildFenwick(vals []float64) *fenwick {
	f := newFenwick(len(vals))
	copy(f.tree[1:], vals)
	for i := 1; i <= f.n; i++ {
		if p := i + (i & -i); p <= f.n {
			f.tree[p] += f.tree[i]
		}
	}
	return f
}

// add applies a delta to the value at index i.
func (f *fenwick) add(i int, delta float64) {
	for i++; i <= f.n; i += i & -i {
		f.tree[i] += delta
	}
}

// prefix returns the sum of values at indices [0, i).
func (f *fenwick) prefix(i int) float64 {
	if i > f.n {
		i = f.n
	}
	var sum float64
	for ; i > 0; i -= i & -i {
		sum += f.tree[i]
	}
	return sum
}

// total returns the sum of all values.
func (f *fenwick) total() float64 {
	return f.prefix(f.n)
}
