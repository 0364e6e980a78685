package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and agree element-wise within eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}

	for i, g := range got {
		if d := math.Abs(g - want[i]); d > eps {
			t.Fatalf("[%d] = %v, want %v within %v (off by %v)", i, g, want[i], eps, d)
		}
	}
}

// RequireFinite fails t on the first NaN or infinite value.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	requireEach(t, data, "finite", func(v float64) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
}

// RequireNonNegative fails t on the first negative or NaN value.
func RequireNonNegative(t *testing.T, data []float64) {
	t.Helper()
	requireEach(t, data, "non-negative", func(v float64) bool { return v >= 0 })
}

func requireEach(t *testing.T, data []float64, what string, ok func(float64) bool) {
	t.Helper()

	for i, v := range data {
		if !ok(v) {
			t.Fatalf("[%d] = %v, want %s", i, v, what)
		}
	}
}
