package functional

import (
	"runtime"

	"go.uber.org/zap"
)

type config struct {
	sampling     SamplingConfig
	workers      int
	outlierFence float64
	logger       *zap.Logger
}

// Option configures Compute.
type Option func(*config)

// WithSampling overrides the sampling limits.
func WithSampling(cfg SamplingConfig) Option {
	return func(c *config) {
		c.sampling = cfg
	}
}

// WithWorkers sets the number of goroutines used for depth evaluation.
// Values < 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithOutlierFence clamps the envelope at every argument to the central
// region widened by k times its width on either side. Functions crossing
// the clamped envelope are reported as outliers. k = 1.5 gives the usual
// functional boxplot whiskers. k <= 0 disables the fence (the default), in
// which case the envelope holds every input function.
func WithOutlierFence(k float64) Option {
	return func(c *config) {
		if k > 0 {
			c.outlierFence = k
		} else {
			c.outlierFence = 0
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func defaultConfig() config {
	return config{
		sampling: DefaultSamplingConfig(),
		logger:   zap.NewNop(),
	}
}

func (c config) finalized() config {
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}

	return c
}
