package functional

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"
)

// Boxplot is the result of a functional boxplot computation. All accessors
// return copies; the value is immutable after Compute returns.
type Boxplot[A cmp.Ordered, V Number] struct {
	functions     []*Function[A, V]
	median        int
	centralRegion *Band[A, V]
	envelope      *Band[A, V]
	outliers      []int
	ranking       []int
	depths        []float64
	plan          SamplingPlan
	evaluations   int64
}

// Compute ranks functions by band depth and derives the functional boxplot.
//
// All functions must share the same argument domain, there must be at
// least two of them, and maxBandSize must lie in [2, len(functions)]. Only
// pairwise bands are evaluated; maxBandSize is validated but otherwise
// unused. The functions are read concurrently and must not be modified
// while Compute runs.
func Compute[A cmp.Ordered, V Number](
	ctx context.Context,
	functions []*Function[A, V],
	measure Measure,
	maxBandSize int,
	opts ...Option,
) (*Boxplot[A, V], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg = cfg.finalized()

	if err := validate(functions, measure, maxBandSize, cfg); err != nil {
		return nil, err
	}

	n := len(functions)
	plan := NewSamplingPlan(cfg.sampling, n, functions[0].Len())
	log := cfg.logger.With(zap.Int("functions", n), zap.Stringer("measure", measure))

	log.Debug("functional boxplot sampling plan",
		zap.Int("arguments", functions[0].Len()),
		zap.Uint64("funcStepCount", plan.FuncStepCount),
		zap.Int("funcStepSize", plan.FuncStepSize),
		zap.Uint64("argStepCount", plan.ArgStepCount),
		zap.Int("argStepSize", plan.ArgStepSize),
		zap.Int("pairs", plan.Pairs(n)),
		zap.Int("workers", cfg.workers),
	)

	start := time.Now()

	depths, evaluations, err := bandDepths(ctx, functions, measure, plan, cfg.workers)
	if err != nil {
		return nil, err
	}

	ranking := rank(depths)

	bp := &Boxplot[A, V]{
		functions:   functions,
		median:      ranking[0],
		ranking:     ranking,
		depths:      depths,
		plan:        plan,
		evaluations: evaluations,
	}

	bp.partition(cfg.outlierFence)

	log.Debug("functional boxplot computed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("evaluations", evaluations),
		zap.Int("median", bp.median),
		zap.Int("outliers", len(bp.outliers)),
	)

	return bp, nil
}

func validate[A cmp.Ordered, V Number](functions []*Function[A, V], measure Measure, maxBandSize int, cfg config) error {
	n := len(functions)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 functions, got %d", ErrInvalidInput, n)
	}

	if maxBandSize < 2 || maxBandSize > n {
		return fmt.Errorf("%w: max band size %d outside [2, %d]", ErrInvalidInput, maxBandSize, n)
	}

	if !measure.valid() {
		return fmt.Errorf("%w: unknown depth measure %v", ErrInvalidInput, measure)
	}

	if err := cfg.sampling.Validate(); err != nil {
		return err
	}

	for i, f := range functions {
		if f == nil {
			return fmt.Errorf("%w: function %d is nil", ErrInvalidInput, i)
		}

		if f.Len() == 0 {
			return fmt.Errorf("%w: function %d has no samples", ErrInvalidInput, i)
		}
	}

	for i, f := range functions[1:] {
		if !f.SameDomain(functions[0]) {
			return fmt.Errorf("%w: function %d has a different argument domain than function 0", ErrInvalidInput, i+1)
		}
	}

	return nil
}

// bandDepths accumulates the depth of every function over the sampled
// pairs. Workers claim candidate indices from a shared counter and each
// index is written by exactly one worker.
func bandDepths[A cmp.Ordered, V Number](
	ctx context.Context,
	functions []*Function[A, V],
	measure Measure,
	plan SamplingPlan,
	workers int,
) ([]float64, int64, error) {
	n := len(functions)
	depths := make([]float64, n)
	argRange := plan.ArgRange()
	step := plan.FuncStepSize
	selfBonus := float64(n)

	var (
		next        atomic.Int64
		evaluations atomic.Int64
		wg          sync.WaitGroup
	)

	worker := func() {
		defer wg.Done()

		var evals int64

		for ctx.Err() == nil {
			i := int(next.Add(1) - 1)
			if i >= n {
				break
			}

			cur := functions[i]

			var depth float64

			for f1 := 0; f1 < n-1; f1 += step {
				for f2 := f1 + 1; f2 < n; f2 += step {
					if i == f1 || i == f2 {
						depth += selfBonus
						continue
					}

					depth += Calculate(measure, cur, functions[f1], functions[f2], argRange)
					evals++
				}
			}

			depths[i] = depth
		}

		evaluations.Add(evals)
	}

	workers = min(workers, n)
	wg.Add(workers)

	for range workers {
		go worker()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	return depths, evaluations.Load(), nil
}

// rank orders function indices by descending depth. Equal depths keep
// ascending index order.
func rank(depths []float64) []int {
	ranking := make([]int, len(depths))
	for i := range ranking {
		ranking[i] = i
	}

	slices.SortStableFunc(ranking, func(a, b int) int {
		return cmp.Compare(depths[b], depths[a])
	})

	return ranking
}

// partition builds the central region from the top half of the ranking,
// extends a copy of it with the rest into the envelope and collects the
// lower-ranked functions that escape the envelope.
func (bp *Boxplot[A, V]) partition(fence float64) {
	centralRegionEnd := len(bp.ranking) / 2

	bp.centralRegion = NewBand[A, V]()
	for _, idx := range bp.ranking[:centralRegionEnd] {
		bp.centralRegion.Merge(bp.functions[idx], idx)
	}

	bp.envelope = bp.centralRegion.Clone()
	for _, idx := range bp.ranking[centralRegionEnd:] {
		bp.envelope.Merge(bp.functions[idx], idx)
	}

	if fence > 0 && bp.centralRegion.Len() > 0 {
		central := bp.centralRegion.bounds
		bp.envelope.clamp(func(i int) (float64, float64) {
			lo, hi := float64(central[i].Min), float64(central[i].Max)
			width := fence * (hi - lo)

			return lo - width, hi + width
		})
	}

	for _, idx := range bp.ranking[centralRegionEnd:] {
		if !bp.envelope.ContainsFunction(bp.functions[idx]) {
			bp.outliers = append(bp.outliers, idx)
		}
	}
}

// Len returns the number of input functions.
func (bp *Boxplot[A, V]) Len() int {
	return len(bp.functions)
}

// Functions returns the input functions in input order.
func (bp *Boxplot[A, V]) Functions() []*Function[A, V] {
	return slices.Clone(bp.functions)
}

// Median returns the deepest input function.
func (bp *Boxplot[A, V]) Median() *Function[A, V] {
	return bp.functions[bp.median]
}

// MedianIndex returns the input index of the median function.
func (bp *Boxplot[A, V]) MedianIndex() int {
	return bp.median
}

// CentralRegion returns the band spanned by the deepest half of the functions.
func (bp *Boxplot[A, V]) CentralRegion() *Band[A, V] {
	return bp.centralRegion.Clone()
}

// Envelope returns the band spanned by all functions, clamped to the
// outlier fence if one was configured.
func (bp *Boxplot[A, V]) Envelope() *Band[A, V] {
	return bp.envelope.Clone()
}

// Outliers returns the input indices of the outlier functions in rank order.
func (bp *Boxplot[A, V]) Outliers() []int {
	return slices.Clone(bp.outliers)
}

// OutlierFunctions returns the outlier functions in rank order.
func (bp *Boxplot[A, V]) OutlierFunctions() []*Function[A, V] {
	out := make([]*Function[A, V], len(bp.outliers))
	for i, idx := range bp.outliers {
		out[i] = bp.functions[idx]
	}

	return out
}

// Ranking returns the input indices ordered by descending depth.
func (bp *Boxplot[A, V]) Ranking() []int {
	return slices.Clone(bp.ranking)
}

// Depths returns the accumulated band depth of every input function.
func (bp *Boxplot[A, V]) Depths() []float64 {
	return slices.Clone(bp.depths)
}

// NormalizedDepths returns the depths scaled so that the median has depth 1.
func (bp *Boxplot[A, V]) NormalizedDepths() []float64 {
	out := make([]float64, len(bp.depths))

	peak := vecmath.MaxAbs(bp.depths)
	if peak == 0 {
		return out
	}

	vecmath.ScaleBlock(out, bp.depths, 1/peak)

	return out
}

// MeanDepth returns the mean of the normalized depths.
func (bp *Boxplot[A, V]) MeanDepth() float64 {
	nd := bp.NormalizedDepths()
	if len(nd) == 0 {
		return 0
	}

	return vecmath.Sum(nd) / float64(len(nd))
}

// Plan returns the sampling plan used for the computation.
func (bp *Boxplot[A, V]) Plan() SamplingPlan {
	return bp.plan
}

// Evaluations returns the number of depth measure evaluations performed.
func (bp *Boxplot[A, V]) Evaluations() int64 {
	return bp.evaluations
}
