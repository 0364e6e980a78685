package functional

import (
	"errors"
	"math"
	"testing"
)

func TestNewFunction(t *testing.T) {
	args := []int{0, 2, 5}
	vals := []float64{1, 4, 9}

	f, err := NewFunction(args, vals)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}

	args[0] = 99
	vals[0] = 99

	if f.Arg(0) != 0 || f.Value(0) != 1 {
		t.Fatalf("function aliases its input: got (%v, %v)", f.Arg(0), f.Value(0))
	}

	if f.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", f.Len())
	}
}

func TestNewFunctionInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []int
		vals []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []int{0, 1}, []float64{1}},
		{"descending", []int{1, 0}, []float64{1, 2}},
		{"duplicate", []int{0, 0}, []float64{1, 2}},
		{"nan", []int{0, 1}, []float64{1, math.NaN()}},
		{"inf", []int{0, 1}, []float64{math.Inf(-1), 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFunction(tt.args, tt.vals)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFunctionConstructorsRejectNonFinite(t *testing.T) {
	if _, err := FunctionFromValues([]float64{0, math.NaN()}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("FunctionFromValues(NaN): got %v, want ErrInvalidInput", err)
	}

	if _, err := FunctionFromMap(map[int]float32{0: 1, 1: float32(math.Inf(1))}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("FunctionFromMap(+Inf): got %v, want ErrInvalidInput", err)
	}

	if _, err := FunctionFromValues([]int{math.MaxInt32, math.MinInt32}); err != nil {
		t.Errorf("FunctionFromValues(int extremes): %v", err)
	}
}

func TestFunctionGet(t *testing.T) {
	f, err := FunctionFromMap(map[float64]int{0.5: 3, -1: 7, 2: 1})
	if err != nil {
		t.Fatalf("FunctionFromMap: %v", err)
	}

	v, err := f.Get(0.5)
	if err != nil || v != 3 {
		t.Fatalf("Get(0.5): got (%v, %v), want (3, nil)", v, err)
	}

	if _, err := f.Get(1); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("Get(1): got %v, want ErrMissingArgument", err)
	}
}

func TestFunctionAllAscending(t *testing.T) {
	f, err := FunctionFromMap(map[int]float64{3: 30, 1: 10, 2: 20})
	if err != nil {
		t.Fatalf("FunctionFromMap: %v", err)
	}

	// Iterate twice: the sequence must be restartable.
	for range 2 {
		var gotArgs []int
		var gotVals []float64

		for a, v := range f.All() {
			gotArgs = append(gotArgs, a)
			gotVals = append(gotVals, v)
		}

		if len(gotArgs) != 3 || gotArgs[0] != 1 || gotArgs[1] != 2 || gotArgs[2] != 3 {
			t.Fatalf("args: got %v, want [1 2 3]", gotArgs)
		}

		if gotVals[0] != 10 || gotVals[2] != 30 {
			t.Fatalf("values: got %v, want [10 20 30]", gotVals)
		}
	}
}

func TestFunctionAllEarlyStop(t *testing.T) {
	f, _ := FunctionFromValues([]int{1, 2, 3, 4})

	var seen int
	for range f.All() {
		seen++
		if seen == 2 {
			break
		}
	}

	if seen != 2 {
		t.Fatalf("seen: got %d, want 2", seen)
	}
}

func TestFunctionSameDomain(t *testing.T) {
	a, _ := FunctionFromValues([]float64{1, 2, 3})
	b, _ := FunctionFromValues([]float64{4, 5, 6})
	c, _ := FunctionFromValues([]float64{4, 5})

	if !a.SameDomain(b) {
		t.Error("a and b should share a domain")
	}

	if a.SameDomain(c) {
		t.Error("a and c should not share a domain")
	}
}

func TestFunctionCopies(t *testing.T) {
	f, _ := FunctionFromValues([]float64{1, 2})

	vals := f.Values()
	vals[0] = 42

	args := f.Args()
	args[0] = 42

	if f.Value(0) != 1 || f.Arg(0) != 0 {
		t.Fatal("accessors expose internal storage")
	}
}
