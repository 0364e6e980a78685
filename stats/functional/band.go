package functional

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// Interval is the closed value range [Min, Max] of a band at one argument.
type Interval[V Number] struct {
	Min V
	Max V
}

// Band is a pointwise min/max envelope of a set of functions. It only ever
// widens as functions are merged into it.
type Band[A cmp.Ordered, V Number] struct {
	args      []A
	bounds    []Interval[V]
	functions []int // sorted, unique
}

// NewBand returns an empty band.
func NewBand[A cmp.Ordered, V Number]() *Band[A, V] {
	return &Band[A, V]{}
}

// Clone returns an independent copy of the band.
func (b *Band[A, V]) Clone() *Band[A, V] {
	return &Band[A, V]{
		args:      slices.Clone(b.args),
		bounds:    slices.Clone(b.bounds),
		functions: slices.Clone(b.functions),
	}
}

// Merge widens the band so that f lies inside it and records index as a
// contributing function.
func (b *Band[A, V]) Merge(f *Function[A, V], index int) {
	if pos, ok := slices.BinarySearch(b.functions, index); !ok {
		b.functions = slices.Insert(b.functions, pos, index)
	}

	if len(b.args) == 0 {
		b.args = slices.Clone(f.args)
		b.bounds = make([]Interval[V], len(f.values))

		for i, v := range f.values {
			b.bounds[i] = Interval[V]{Min: v, Max: v}
		}

		return
	}

	if slices.Equal(b.args, f.args) {
		for i, v := range f.values {
			b.widen(i, v)
		}

		return
	}

	b.mergeUnion(f)
}

// mergeUnion merges a function whose arguments differ from the band's.
func (b *Band[A, V]) mergeUnion(f *Function[A, V]) {
	args := make([]A, 0, len(b.args)+len(f.args))
	bounds := make([]Interval[V], 0, len(b.args)+len(f.args))

	i, j := 0, 0
	for i < len(b.args) || j < len(f.args) {
		switch {
		case j == len(f.args) || (i < len(b.args) && cmp.Less(b.args[i], f.args[j])):
			args = append(args, b.args[i])
			bounds = append(bounds, b.bounds[i])
			i++
		case i == len(b.args) || cmp.Less(f.args[j], b.args[i]):
			v := f.values[j]
			args = append(args, f.args[j])
			bounds = append(bounds, Interval[V]{Min: v, Max: v})
			j++
		default:
			iv := b.bounds[i]
			v := f.values[j]
			iv.Min = min(iv.Min, v)
			iv.Max = max(iv.Max, v)
			args = append(args, b.args[i])
			bounds = append(bounds, iv)
			i++
			j++
		}
	}

	b.args = args
	b.bounds = bounds
}

func (b *Band[A, V]) widen(i int, v V) {
	if v < b.bounds[i].Min {
		b.bounds[i].Min = v
	}

	if v > b.bounds[i].Max {
		b.bounds[i].Max = v
	}
}

func (b *Band[A, V]) lookup(arg A) (Interval[V], error) {
	i, ok := slices.BinarySearch(b.args, arg)
	if !ok {
		return Interval[V]{}, fmt.Errorf("%w: %v", ErrMissingArgument, arg)
	}

	return b.bounds[i], nil
}

// Min returns the lower bound at arg.
func (b *Band[A, V]) Min(arg A) (V, error) {
	iv, err := b.lookup(arg)
	return iv.Min, err
}

// Max returns the upper bound at arg.
func (b *Band[A, V]) Max(arg A) (V, error) {
	iv, err := b.lookup(arg)
	return iv.Max, err
}

// Contains reports whether value lies within the band at arg. It fails
// with ErrMissingArgument if no merged function was sampled at arg.
func (b *Band[A, V]) Contains(arg A, value V) (bool, error) {
	iv, err := b.lookup(arg)
	if err != nil {
		return false, err
	}

	return iv.Min <= value && value <= iv.Max, nil
}

// ContainsFunction reports whether every sample of f lies within the band.
// An argument the band has never seen counts as not contained.
func (b *Band[A, V]) ContainsFunction(f *Function[A, V]) bool {
	if slices.Equal(b.args, f.args) {
		for i, v := range f.values {
			if v < b.bounds[i].Min || v > b.bounds[i].Max {
				return false
			}
		}

		return true
	}

	for a, v := range f.All() {
		ok, err := b.Contains(a, v)
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// Len returns the number of arguments covered by the band.
func (b *Band[A, V]) Len() int {
	return len(b.args)
}

// Args returns a copy of the covered arguments in ascending order.
func (b *Band[A, V]) Args() []A {
	return slices.Clone(b.args)
}

// All iterates over (argument, interval) pairs in ascending argument order.
func (b *Band[A, V]) All() iter.Seq2[A, Interval[V]] {
	return func(yield func(A, Interval[V]) bool) {
		for i, a := range b.args {
			if !yield(a, b.bounds[i]) {
				return
			}
		}
	}
}

// Functions returns the sorted indices of all merged functions.
func (b *Band[A, V]) Functions() []int {
	return slices.Clone(b.functions)
}

// clamp narrows every interval towards [lo(i), hi(i)] without ever moving a
// bound past the given fence values. Positions where the fence is wider
// than the band are left untouched.
func (b *Band[A, V]) clamp(fence func(i int) (lo, hi float64)) {
	for i := range b.bounds {
		lo, hi := fence(i)

		if float64(b.bounds[i].Min) < lo {
			b.bounds[i].Min = fromFloat[V](lo, true)
		}

		if float64(b.bounds[i].Max) > hi {
			b.bounds[i].Max = fromFloat[V](hi, false)
		}
	}
}
