package functional

import (
	"fmt"
	"math"
	"math/bits"
)

// Default sampling limits.
const (
	DefaultMaxOverallLoops     uint64 = 10_000_000_000_000
	DefaultMinBandsPerFunction uint64 = 40
	DefaultMinArgsPerBand      uint64 = 40
)

// SamplingConfig bounds the work spent on depth evaluation. The engine
// visits roughly n * FuncStepCount² bands with ArgStepCount positions each
// and keeps that product below MaxOverallLoops, but never drops below the
// two floors.
type SamplingConfig struct {
	MaxOverallLoops     uint64 `toml:"max_overall_loops"`
	MinBandsPerFunction uint64 `toml:"min_bands_per_function"`
	MinArgsPerBand      uint64 `toml:"min_args_per_band"`
}

// DefaultSamplingConfig returns the default limits.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		MaxOverallLoops:     DefaultMaxOverallLoops,
		MinBandsPerFunction: DefaultMinBandsPerFunction,
		MinArgsPerBand:      DefaultMinArgsPerBand,
	}
}

// Validate checks that all limits are positive.
func (c SamplingConfig) Validate() error {
	switch {
	case c.MaxOverallLoops == 0:
		return fmt.Errorf("%w: max overall loops must be positive", ErrInvalidInput)
	case c.MinBandsPerFunction == 0:
		return fmt.Errorf("%w: min bands per function must be positive", ErrInvalidInput)
	case c.MinArgsPerBand == 0:
		return fmt.Errorf("%w: min args per band must be positive", ErrInvalidInput)
	}

	return nil
}

// SamplingPlan holds the step counts and strides derived from a
// SamplingConfig for a concrete input size.
type SamplingPlan struct {
	FuncStepCount uint64
	FuncStepSize  int
	ArgStepCount  uint64
	ArgStepSize   int
	argCount      int
}

// NewSamplingPlan derives the plan for n functions sampled at argCount
// arguments. The config must be valid.
func NewSamplingPlan(cfg SamplingConfig, n, argCount int) SamplingPlan {
	un := uint64(max(n, 1))
	argSpan := uint64(max(argCount-1, 1))

	funcStepCnt := cfg.MinBandsPerFunction
	argStepCnt := cfg.MinArgsPerBand

	if loops(un, funcStepCnt, argStepCnt) < cfg.MaxOverallLoops {
		budget := float64(cfg.MaxOverallLoops / mulSat(un, argStepCnt))
		funcStepCnt = max(min(un, uint64(math.Sqrt(budget))), 1)

		if loops(un, funcStepCnt, argStepCnt) < cfg.MaxOverallLoops {
			argStepCnt = min(argSpan, cfg.MaxOverallLoops/mulSat(un, mulSat(funcStepCnt, funcStepCnt)))
		}
	}

	argStepCnt = max(argStepCnt, 1)

	funcStepSize := int(math.Sqrt(float64(mulSat(un, un) / funcStepCnt)))
	argStepSize := int(argSpan / argStepCnt)

	return SamplingPlan{
		FuncStepCount: funcStepCnt,
		FuncStepSize:  max(funcStepSize, 1),
		ArgStepCount:  argStepCnt,
		ArgStepSize:   max(argStepSize, 1),
		argCount:      argCount,
	}
}

// ArgRange returns the argument positions sampled by MeasureSimple.
func (p SamplingPlan) ArgRange() ArgRange {
	return ArgRange{First: 0, Last: max(p.argCount-1, 0), Step: p.ArgStepSize}
}

// Pairs returns the number of (f1, f2) pairs visited per candidate function
// when iterating n functions with the plan's stride.
func (p SamplingPlan) Pairs(n int) int {
	var count int

	for f1 := 0; f1 < n-1; f1 += p.FuncStepSize {
		for f2 := f1 + 1; f2 < n; f2 += p.FuncStepSize {
			count++
		}
	}

	return count
}

func loops(n, funcSteps, argSteps uint64) uint64 {
	return mulSat(mulSat(n, mulSat(funcSteps, funcSteps)), argSteps)
}

// mulSat multiplies a and b, saturating at math.MaxUint64.
func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}

	return lo
}
