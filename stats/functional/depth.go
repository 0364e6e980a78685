package functional

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// Measure selects the band depth statistic used to score a function
// against a band formed by two other functions.
type Measure int

const (
	// MeasureModified counts the sample positions at which a function lies
	// inside the band (modified band depth, MBD).
	MeasureModified Measure = iota
	// MeasureSimple scores a function only if it lies inside the band at
	// every sampled position (band depth, BD).
	MeasureSimple
)

// String returns the configuration name of the measure.
func (m Measure) String() string {
	switch m {
	case MeasureModified:
		return "modified"
	case MeasureSimple:
		return "simple"
	default:
		return fmt.Sprintf("Measure(%d)", int(m))
	}
}

// ParseMeasure converts a configuration name ("modified", "simple",
// case-insensitive) into a Measure.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "modified", "mbd":
		return MeasureModified, nil
	case "simple", "bd":
		return MeasureSimple, nil
	default:
		return 0, fmt.Errorf("%w: unknown depth measure %q", ErrInvalidInput, s)
	}
}

func (m Measure) valid() bool {
	return m == MeasureModified || m == MeasureSimple
}

// ArgRange addresses sample positions First, First+Step, ... below Last.
// Last itself is the final sample position of the domain.
type ArgRange struct {
	First int
	Last  int
	Step  int
}

// Calculate scores cur against the band spanned by lim1 and lim2.
// The range is only used by MeasureSimple.
func Calculate[A cmp.Ordered, V Number](m Measure, cur, lim1, lim2 *Function[A, V], r ArgRange) float64 {
	if m == MeasureSimple {
		return SimpleDepth(cur, lim1, lim2, r)
	}

	return ModifiedDepth(cur, lim1, lim2)
}

// SimpleDepth returns 0 if cur leaves the band spanned by lim1 and lim2 at
// any position sampled by r, and the number of positions in
// [r.First, r.Last] otherwise.
func SimpleDepth[A cmp.Ordered, V Number](cur, lim1, lim2 *Function[A, V], r ArgRange) float64 {
	c, a, b := cur.values, lim1.values, lim2.values
	last := min(r.Last, len(c)-1, len(a)-1, len(b)-1)
	step := max(r.Step, 1)

	for p := r.First; p < last; p += step {
		lo, hi := a[p], b[p]
		if lo > hi {
			lo, hi = hi, lo
		}

		if c[p] < lo || c[p] > hi {
			return 0
		}
	}

	return float64(r.Last - r.First + 1)
}

// ModifiedDepth returns the number of positions at which cur lies inside
// the band spanned by lim1 and lim2. The three functions are walked in
// lock-step up to the shortest of them.
func ModifiedDepth[A cmp.Ordered, V Number](cur, lim1, lim2 *Function[A, V]) float64 {
	c, a, b := cur.values, lim1.values, lim2.values
	n := min(len(c), len(a), len(b))

	var count int

	for p := range n {
		lo, hi := a[p], b[p]
		if lo > hi {
			lo, hi = hi, lo
		}

		if c[p] >= lo && c[p] <= hi {
			count++
		}
	}

	return float64(count)
}

// fromFloat converts x to V. For integer types the result is rounded up
// or down so that it stays on the inner side of a fence value.
func fromFloat[V Number](x float64, roundUp bool) V {
	half := 0.5
	if V(half) != 0 {
		return V(x)
	}

	if roundUp {
		return V(math.Ceil(x))
	}

	return V(math.Floor(x))
}
