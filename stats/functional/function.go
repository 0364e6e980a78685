package functional

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
)

var (
	// ErrInvalidInput indicates a precondition violation on the input data.
	ErrInvalidInput = errors.New("functional: invalid input")
	// ErrMissingArgument indicates a lookup of an argument that is not present.
	ErrMissingArgument = errors.New("functional: missing argument")
)

// Number is the set of value types a Function may hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Function is a discretely sampled scalar function: an immutable mapping
// from strictly ascending arguments to values.
type Function[A cmp.Ordered, V Number] struct {
	args   []A
	values []V
}

// NewFunction creates a function from parallel argument and value slices.
// Arguments must be strictly ascending. Both slices are copied.
func NewFunction[A cmp.Ordered, V Number](args []A, values []V) (*Function[A, V], error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: function has no samples", ErrInvalidInput)
	}

	if len(args) != len(values) {
		return nil, fmt.Errorf("%w: %d arguments but %d values", ErrInvalidInput, len(args), len(values))
	}

	for i := 1; i < len(args); i++ {
		if cmp.Compare(args[i-1], args[i]) >= 0 {
			return nil, fmt.Errorf("%w: arguments not strictly ascending at index %d", ErrInvalidInput, i)
		}
	}

	if err := checkFinite(values); err != nil {
		return nil, err
	}

	return &Function[A, V]{
		args:   slices.Clone(args),
		values: slices.Clone(values),
	}, nil
}

// FunctionFromMap creates a function from a map. Keys are sorted ascending.
func FunctionFromMap[A cmp.Ordered, V Number](m map[A]V) (*Function[A, V], error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: function has no samples", ErrInvalidInput)
	}

	args := slices.Sorted(maps.Keys(m))
	values := make([]V, len(args))

	for i, a := range args {
		values[i] = m[a]
	}

	if err := checkFinite(values); err != nil {
		return nil, err
	}

	return &Function[A, V]{args: args, values: values}, nil
}

// FunctionFromValues creates a function over the arguments 0..len(values)-1.
func FunctionFromValues[V Number](values []V) (*Function[int, V], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: function has no samples", ErrInvalidInput)
	}

	if err := checkFinite(values); err != nil {
		return nil, err
	}

	args := make([]int, len(values))
	for i := range args {
		args[i] = i
	}

	return &Function[int, V]{args: args, values: slices.Clone(values)}, nil
}

// Len returns the number of samples.
func (f *Function[A, V]) Len() int {
	return len(f.args)
}

// Arg returns the i-th argument in ascending order.
func (f *Function[A, V]) Arg(i int) A {
	return f.args[i]
}

// Value returns the value at the i-th argument.
func (f *Function[A, V]) Value(i int) V {
	return f.values[i]
}

// Args returns a copy of the arguments.
func (f *Function[A, V]) Args() []A {
	return slices.Clone(f.args)
}

// Values returns a copy of the values.
func (f *Function[A, V]) Values() []V {
	return slices.Clone(f.values)
}

// Get returns the value at arg or ErrMissingArgument.
func (f *Function[A, V]) Get(arg A) (V, error) {
	i, ok := slices.BinarySearch(f.args, arg)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrMissingArgument, arg)
	}

	return f.values[i], nil
}

// All iterates over (argument, value) pairs in ascending argument order.
func (f *Function[A, V]) All() iter.Seq2[A, V] {
	return func(yield func(A, V) bool) {
		for i, a := range f.args {
			if !yield(a, f.values[i]) {
				return
			}
		}
	}
}

// SameDomain reports whether f and other are sampled at identical arguments.
func (f *Function[A, V]) SameDomain(other *Function[A, V]) bool {
	return slices.Equal(f.args, other.args)
}

// checkFinite rejects NaN and infinite samples. They compare false against
// every band bound and would pass as contained.
func checkFinite[V Number](values []V) error {
	for i, v := range values {
		x := float64(v)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: non-finite value %v at index %d", ErrInvalidInput, x, i)
		}
	}

	return nil
}
