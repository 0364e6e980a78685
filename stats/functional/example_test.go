package functional_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-fda/stats/functional"
)

func ExampleCompute() {
	var curves []*functional.Function[int, float64]
	for _, level := range []float64{0, 1, 2} {
		f, _ := functional.FunctionFromValues([]float64{level, level, level})
		curves = append(curves, f)
	}

	bp, err := functional.Compute(context.Background(), curves, functional.MeasureModified, 2)
	if err != nil {
		fmt.Println(err)
		return
	}

	lo, _ := bp.Envelope().Min(0)
	hi, _ := bp.Envelope().Max(0)
	fmt.Printf("median=%d envelope=[%.0f,%.0f] outliers=%d\n", bp.MedianIndex(), lo, hi, len(bp.Outliers()))

	// Output:
	// median=1 envelope=[0,2] outliers=0
}

func ExampleBand() {
	b := functional.NewBand[int, int]()
	for i, vals := range [][]int{{1, 4}, {3, 2}} {
		f, _ := functional.FunctionFromValues(vals)
		b.Merge(f, i)
	}

	for arg, iv := range b.All() {
		fmt.Printf("%d: [%d,%d]\n", arg, iv.Min, iv.Max)
	}

	// Output:
	// 0: [1,3]
	// 1: [2,4]
}

func ExampleNewSamplingPlan() {
	p := functional.NewSamplingPlan(functional.DefaultSamplingConfig(), 400, 1024)
	fmt.Printf("funcStepSize=%d pairs=%d\n", p.FuncStepSize, p.Pairs(400))

	// Output:
	// funcStepSize=20 pairs=210
}
