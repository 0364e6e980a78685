package pointwise

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-fda/stats/functional"
)

// Stats holds statistics of a set of functions, evaluated independently at
// every argument.
type Stats[A cmp.Ordered] struct {
	Args     []A
	Count    int
	Mean     []float64
	Variance []float64 // population variance
	StdDev   []float64
	Skewness []float64
	Kurtosis []float64 // excess kurtosis
	Min      []float64
	Max      []float64
}

// Band returns mean - k*stddev and mean + k*stddev at every argument.
func (s Stats[A]) Band(k float64) (lo, hi []float64) {
	lo = make([]float64, len(s.Mean))
	hi = make([]float64, len(s.Mean))

	for i, m := range s.Mean {
		lo[i] = m - k*s.StdDev[i]
		hi[i] = m + k*s.StdDev[i]
	}

	return lo, hi
}

// Accumulator gathers pointwise statistics one function at a time using
// Welford's online algorithm. All functions must share one argument domain.
type Accumulator[A cmp.Ordered, V functional.Number] struct {
	args []A
	n    int
	mean []float64
	m2   []float64
	m3   []float64
	m4   []float64
	min  []float64
	max  []float64
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator[A cmp.Ordered, V functional.Number]() *Accumulator[A, V] {
	return &Accumulator[A, V]{}
}

// Update adds f to the running statistics.
func (a *Accumulator[A, V]) Update(f *functional.Function[A, V]) error {
	if a.n == 0 {
		a.init(f.Args())
	} else if !a.sameArgs(f) {
		return fmt.Errorf("%w: function domain differs from accumulated domain", functional.ErrInvalidInput)
	}

	a.n++
	ni := float64(a.n)

	for i := range a.args {
		x := float64(f.Value(i))

		delta := x - a.mean[i]
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		// M4 must be updated before M3, and M3 before M2.
		a.m4[i] += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2[i] - 4*deltaN*a.m3[i]
		a.m3[i] += term1*deltaN*(ni-2) - 3*deltaN*a.m2[i]
		a.m2[i] += term1
		a.mean[i] += deltaN

		a.min[i] = math.Min(a.min[i], x)
		a.max[i] = math.Max(a.max[i], x)
	}

	return nil
}

func (a *Accumulator[A, V]) sameArgs(f *functional.Function[A, V]) bool {
	if f.Len() != len(a.args) {
		return false
	}

	for i, arg := range a.args {
		if f.Arg(i) != arg {
			return false
		}
	}

	return true
}

func (a *Accumulator[A, V]) init(args []A) {
	n := len(args)
	a.args = args
	a.mean = make([]float64, n)
	a.m2 = make([]float64, n)
	a.m3 = make([]float64, n)
	a.m4 = make([]float64, n)
	a.min = make([]float64, n)
	a.max = make([]float64, n)

	for i := range a.min {
		a.min[i] = math.Inf(1)
		a.max[i] = math.Inf(-1)
	}
}

// Count returns the number of accumulated functions.
func (a *Accumulator[A, V]) Count() int {
	return a.n
}

// Result computes the statistics of all functions added so far.
func (a *Accumulator[A, V]) Result() Stats[A] {
	k := len(a.args)
	s := Stats[A]{
		Args:     slices.Clone(a.args),
		Count:    a.n,
		Mean:     slices.Clone(a.mean),
		Variance: make([]float64, k),
		StdDev:   make([]float64, k),
		Skewness: make([]float64, k),
		Kurtosis: make([]float64, k),
		Min:      slices.Clone(a.min),
		Max:      slices.Clone(a.max),
	}

	if a.n == 0 {
		return s
	}

	nf := float64(a.n)

	for i := range k {
		variance := a.m2[i] / nf
		s.Variance[i] = variance
		s.StdDev[i] = math.Sqrt(variance)

		if variance > 0 {
			s.Skewness[i] = (a.m3[i] / nf) / (variance * math.Sqrt(variance))
			s.Kurtosis[i] = (a.m4[i]/nf)/(variance*variance) - 3
		}
	}

	return s
}

// Reset clears all accumulated data.
func (a *Accumulator[A, V]) Reset() {
	*a = Accumulator[A, V]{}
}

// Calculate returns the pointwise statistics of functions.
func Calculate[A cmp.Ordered, V functional.Number](functions []*functional.Function[A, V]) (Stats[A], error) {
	acc := NewAccumulator[A, V]()

	for i, f := range functions {
		if err := acc.Update(f); err != nil {
			return Stats[A]{}, fmt.Errorf("function %d: %w", i, err)
		}
	}

	return acc.Result(), nil
}
