// Package functional computes functional boxplots of discretely sampled
// scalar functions using band depth ranking.
//
// Every input function is scored by how often it lies inside the bands
// spanned by pairs of other functions. Two statistics are available:
//
//   - MeasureSimple: band depth (BD), a pair counts only if the function is
//     inside the band at every sampled argument
//   - MeasureModified: modified band depth (MBD), a pair contributes the
//     number of arguments at which the function is inside the band
//
// The functions are ranked by depth. The deepest one is the median, the
// deepest half spans the central region and all functions together span
// the envelope. An optional fence (WithOutlierFence) clamps the envelope to
// a multiple of the central region width, and lower-ranked functions that
// escape the envelope are reported as outliers.
//
// Exact band depth is cubic in the number of functions. For large inputs
// the pair space is subsampled on a regular stride chosen by a
// SamplingPlan so that the total work stays below
// SamplingConfig.MaxOverallLoops.
//
// References:
//
//   - Lopez-Pintado, S.; Romo, J. (2009). On the Concept of Depth for
//     Functional Data. JASA 104 (486): 718-734.
//   - Sun, Y.; Genton, M. G. (2011). Functional boxplots. JCGS 20: 316-334.
//
// # Usage
//
//	curves := make([]*functional.Function[int, float64], 0, len(spectra))
//	for _, s := range spectra {
//		f, err := functional.FunctionFromValues(s)
//		if err != nil {
//			return err
//		}
//		curves = append(curves, f)
//	}
//	bp, err := functional.Compute(ctx, curves, functional.MeasureModified, 2,
//		functional.WithOutlierFence(1.5))
//	if err != nil {
//		return err
//	}
//	fmt.Println("median:", bp.MedianIndex(), "outliers:", bp.Outliers())
package functional
