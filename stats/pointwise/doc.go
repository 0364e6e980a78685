// Package pointwise computes cross-sectional statistics of a set of sampled
// functions: mean, variance, skewness, kurtosis and range at every
// argument.
//
// The statistics complement the depth-based functional boxplot in package
// functional. A mean ± k·stddev band is sensitive to outlying curves
// while the central region of a boxplot is not, so comparing both helps
// to judge how much outliers distort a data set.
//
// # Usage
//
//	acc := pointwise.NewAccumulator[int, float64]()
//	for _, f := range curves {
//		if err := acc.Update(f); err != nil {
//			return err
//		}
//	}
//	s := acc.Result()
//	lo, hi := s.Band(2)
package pointwise
