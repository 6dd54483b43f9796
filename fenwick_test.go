package vlist

import (
	"math/rand"
	"testing"
)

func TestFenwick(t *testing.T) {
	t.Run("BuildMatchesNaive", func(t *testing.T) {
		vals := []float64{3, 1, 4, 1, 5, 9, 2, 6}
		f := buildFenwick(vals)

		sum := 0.0
		for i := 0; i <= len(vals); i++ {
			if got := f.prefix(i); got != sum {
				t.Errorf("prefix(%d) = %v, want %v", i, got, sum)
			}
			if i < len(vals) {
				sum += vals[i]
			}
		}
	})

	t.Run("PointUpdate", func(t *testing.T) {
		f := newFenwick(5)
		f.add(2, 10)
		f.add(4, 7)

		if got := f.prefix(2); got != 0 {
			t.Errorf("prefix(2) = %v, want 0", got)
		}
		if got := f.prefix(3); got != 10 {
			t.Errorf("prefix(3) = %v, want 10", got)
		}
		if got := f.total(); got != 17 {
			t.Errorf("total() = %v, want 17", got)
		}

		f.add(2, -10)
		if got := f.total(); got != 7 {
			t.Errorf("total() after removal = %v, want 7", got)
		}
	})

	t.Run("PrefixPastEnd", func(t *testing.T) {
		f := buildFenwick([]float64{1, 2, 3})
		if got := f.prefix(100); got != 6 {
			t.Errorf("prefix(100) = %v, want 6", got)
		}
	})

	t.Run("RandomAgainstNaive", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		const n = 200
		naive := make([]float64, n)
		f := newFenwick(n)

		for op := 0; op < 1000; op++ {
			i := rng.Intn(n)
			delta := float64(rng.Intn(100))
			naive[i] += delta
			f.add(i, delta)

			q := rng.Intn(n + 1)
			want := 0.0
			for j := 0; j < q; j++ {
				want += naive[j]
			}
			if got := f.prefix(q); got != want {
				t.Fatalf("op %d: prefix(%d) = %v, want %v", op, q, got, want)
			}
		}
	})
}
