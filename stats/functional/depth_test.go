package functional

import (
	"errors"
	"testing"
)

func TestModifiedDepth(t *testing.T) {
	lo := mustValues(t, 0, 0, 0, 0)
	hi := mustValues(t, 2, 2, 2, 2)

	tests := []struct {
		name string
		cur  []float64
		want float64
	}{
		{"inside", []float64{1, 1, 1, 1}, 4},
		{"on the bounds", []float64{0, 2, 0, 2}, 4},
		{"partially outside", []float64{1, 3, -1, 1}, 2},
		{"outside", []float64{5, 5, 5, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := mustValues(t, tt.cur...)

			if got := ModifiedDepth(cur, lo, hi); got != tt.want {
				t.Errorf("ModifiedDepth: got %v, want %v", got, tt.want)
			}

			// The band is symmetric in its two limits.
			if got := ModifiedDepth(cur, hi, lo); got != tt.want {
				t.Errorf("ModifiedDepth swapped limits: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModifiedDepthShortest(t *testing.T) {
	cur := mustValues(t, 1, 1, 1, 1, 1)
	lo := mustValues(t, 0, 0, 0)
	hi := mustValues(t, 2, 2, 2, 2)

	if got := ModifiedDepth(cur, lo, hi); got != 3 {
		t.Fatalf("ModifiedDepth: got %v, want 3", got)
	}
}

func TestSimpleDepth(t *testing.T) {
	lo := mustValues(t, 0, 0, 0, 0, 0)
	hi := mustValues(t, 2, 2, 2, 2, 2)
	full := ArgRange{First: 0, Last: 4, Step: 1}

	if got := SimpleDepth(mustValues(t, 1, 1, 1, 1, 1), lo, hi, full); got != 5 {
		t.Errorf("inside: got %v, want 5", got)
	}

	if got := SimpleDepth(mustValues(t, 1, 1, 3, 1, 1), lo, hi, full); got != 0 {
		t.Errorf("one sample outside: got %v, want 0", got)
	}

	// Position 2 is skipped with a stride of 3, so the excursion is not seen.
	strided := ArgRange{First: 0, Last: 4, Step: 3}
	if got := SimpleDepth(mustValues(t, 1, 1, 3, 1, 1), lo, hi, strided); got != 5 {
		t.Errorf("strided: got %v, want 5", got)
	}
}

func TestSimpleDepthDoesNotMutate(t *testing.T) {
	cur := mustValues(t, 3, 1, 2)
	lo := mustValues(t, 0, 0, 0)
	hi := mustValues(t, 2, 2, 2)

	SimpleDepth(cur, lo, hi, ArgRange{Last: 2, Step: 1})
	ModifiedDepth(cur, hi, lo)

	if cur.Value(0) != 3 || lo.Value(0) != 0 || hi.Value(0) != 2 {
		t.Fatal("depth measure mutated its inputs")
	}
}

func TestCalculateDispatch(t *testing.T) {
	lo := mustValues(t, 0, 0, 0)
	hi := mustValues(t, 2, 2, 2)
	cur := mustValues(t, 1, 1, 5)
	r := ArgRange{First: 0, Last: 2, Step: 1}

	if got := Calculate(MeasureModified, cur, lo, hi, r); got != 2 {
		t.Errorf("modified: got %v, want 2", got)
	}

	// The final position is outside the sampled half-open range.
	if got := Calculate(MeasureSimple, cur, lo, hi, r); got != 3 {
		t.Errorf("simple: got %v, want 3", got)
	}
}

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		in   string
		want Measure
	}{
		{"modified", MeasureModified},
		{"MBD", MeasureModified},
		{" simple ", MeasureSimple},
		{"bd", MeasureSimple},
	}

	for _, tt := range tests {
		got, err := ParseMeasure(tt.in)
		if err != nil {
			t.Fatalf("ParseMeasure(%q): %v", tt.in, err)
		}

		if got != tt.want {
			t.Errorf("ParseMeasure(%q): got %v, want %v", tt.in, got, tt.want)
		}

		back, err := ParseMeasure(got.String())
		if err != nil || back != got {
			t.Errorf("ParseMeasure(%v.String()): got (%v, %v)", got, back, err)
		}
	}

	if _, err := ParseMeasure("median"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseMeasure(median): got %v, want ErrInvalidInput", err)
	}

	if s := Measure(7).String(); s != "Measure(7)" {
		t.Errorf("String: got %q", s)
	}
}
