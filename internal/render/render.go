// Package render draws functional boxplots with gonum/plot.
//
// The envelope and the central region are drawn as filled polygons, the
// median as a thick line and every outlier as a dashed line. The pointwise
// mean of all curves can be overlaid for comparison. The output
// format follows the file extension (.png, .svg, .pdf, ...).
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-fda/stats/functional"
	"github.com/cwbudde/algo-fda/stats/pointwise"
)

// ErrEmpty indicates a boxplot without any arguments to draw.
var ErrEmpty = errors.New("render: nothing to draw")

// Style controls colors and labels.
type Style struct {
	Title         string
	XLabel        string
	YLabel        string
	EnvelopeColor color.Color
	CentralColor  color.Color
	MedianColor   color.Color
	OutlierColor  color.Color
	MeanColor     color.Color // nil hides the pointwise mean
}

// DefaultStyle returns grey bands, a black median and red outliers.
func DefaultStyle() Style {
	return Style{
		Title:         "Functional boxplot",
		XLabel:        "argument",
		YLabel:        "value",
		EnvelopeColor: color.RGBA{R: 220, G: 220, B: 220, A: 255},
		CentralColor:  color.RGBA{R: 150, G: 150, B: 200, A: 255},
		MedianColor:   color.Black,
		OutlierColor:  color.RGBA{R: 200, G: 0, B: 0, A: 255},
	}
}

// Plot builds a gonum plot of bp.
func Plot[A functional.Number, V functional.Number](bp *functional.Boxplot[A, V], style Style) (*plot.Plot, error) {
	envelope := bp.Envelope()
	if envelope.Len() == 0 {
		return nil, ErrEmpty
	}

	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = style.XLabel
	p.Y.Label.Text = style.YLabel

	env, err := bandPolygon(envelope, style.EnvelopeColor)
	if err != nil {
		return nil, err
	}

	central, err := bandPolygon(bp.CentralRegion(), style.CentralColor)
	if err != nil {
		return nil, err
	}

	p.Add(env, central)
	p.Legend.Add("envelope", env)
	p.Legend.Add("central region", central)

	for i, f := range bp.OutlierFunctions() {
		l, err := plotter.NewLine(functionXYs(f))
		if err != nil {
			return nil, fmt.Errorf("render: outlier %d: %w", i, err)
		}

		l.Color = style.OutlierColor
		l.Width = vg.Points(1)
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)

		if i == 0 {
			p.Legend.Add("outliers", l)
		}
	}

	if style.MeanColor != nil {
		mean, err := meanLine(bp, style.MeanColor)
		if err != nil {
			return nil, err
		}

		p.Add(mean)
		p.Legend.Add("pointwise mean", mean)
	}

	median, err := plotter.NewLine(functionXYs(bp.Median()))
	if err != nil {
		return nil, fmt.Errorf("render: median: %w", err)
	}

	median.Color = style.MedianColor
	median.Width = vg.Points(2.5)
	p.Add(median)
	p.Legend.Add("median", median)

	return p, nil
}

// Save renders bp into file with the given size.
func Save[A functional.Number, V functional.Number](bp *functional.Boxplot[A, V], style Style, width, height vg.Length, file string) error {
	p, err := Plot(bp, style)
	if err != nil {
		return err
	}

	if err := p.Save(width, height, file); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

// bandPolygon traces the upper bound left to right and the lower bound
// right to left.
func bandPolygon[A functional.Number, V functional.Number](b *functional.Band[A, V], fill color.Color) (*plotter.Polygon, error) {
	n := b.Len()
	ring := make(plotter.XYs, 2*n)

	var i int
	for a, iv := range b.All() {
		ring[i] = plotter.XY{X: float64(a), Y: float64(iv.Max)}
		ring[2*n-1-i] = plotter.XY{X: float64(a), Y: float64(iv.Min)}
		i++
	}

	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, fmt.Errorf("render: band: %w", err)
	}

	poly.Color = fill
	poly.LineStyle.Width = 0

	return poly, nil
}

func meanLine[A functional.Number, V functional.Number](bp *functional.Boxplot[A, V], c color.Color) (*plotter.Line, error) {
	s, err := pointwise.Calculate(bp.Functions())
	if err != nil {
		return nil, fmt.Errorf("render: mean: %w", err)
	}

	xys := make(plotter.XYs, len(s.Args))
	for i, a := range s.Args {
		xys[i] = plotter.XY{X: float64(a), Y: s.Mean[i]}
	}

	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("render: mean: %w", err)
	}

	l.Color = c
	l.Width = vg.Points(1)
	l.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}

	return l, nil
}

func functionXYs[A functional.Number, V functional.Number](f *functional.Function[A, V]) plotter.XYs {
	xys := make(plotter.XYs, 0, f.Len())
	for a, v := range f.All() {
		xys = append(xys, plotter.XY{X: float64(a), Y: float64(v)})
	}

	return xys
}
