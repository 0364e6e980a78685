package testutil

import (
	"math"
	"math/rand"
)

// Constant returns a curve of the given length with every sample set to value.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp returns offset + slope*i for i in [0, length).
func Ramp(offset, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = offset + slope*float64(i)
	}
	return out
}

// NoisyCurves generates count curves of the given length that share a
// half-period sine shape (peak 1) and differ by a per-curve vertical shift
// plus white noise. The fixed seed makes the set reproducible.
func NoisyCurves(seed int64, count, length int, noise float64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, count)
	for c := range out {
		shift := (rng.Float64()*2 - 1) * 0.25
		curve := make([]float64, length)
		for i := range curve {
			base := math.Sin(math.Pi * float64(i) / float64(max(length-1, 1)))
			curve[i] = base + shift + (rng.Float64()*2-1)*noise
		}
		out[c] = curve
	}
	return out
}

// Spike returns a copy of curve with the sample at pos replaced by height.
func Spike(curve []float64, pos int, height float64) []float64 {
	out := append([]float64(nil), curve...)
	if pos >= 0 && pos < len(out) {
		out[pos] = height
	}
	return out
}
