package plotfig

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/backmassage/animatrix"
)

// LineOptions configures [LineRenderer].
type LineOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  float64 // inches
	Height float64 // inches
	// YMin and YMax pin the y axis so frames do not rescale as the data
	// moves. When both are zero the axis follows each frame's data.
	YMin, YMax float64
}

// LineRenderer returns a render function that draws one series per frame
// as a line over x = 0, 1, 2, ...
func LineRenderer(opts LineOptions) animatrix.RenderFunc[[]float64] {
	return func(ys []float64) (animatrix.Figure, error) {
		p := plot.New()
		p.Title.Text = opts.Title
		p.X.Label.Text = opts.XLabel
		p.Y.Label.Text = opts.YLabel
		if opts.YMin != 0 || opts.YMax != 0 {
			p.Y.Min, p.Y.Max = opts.YMin, opts.YMax
		}
		p.X.Min, p.X.Max = 0, math.Max(float64(len(ys)-1), 1)

		pts := make(plotter.XYs, len(ys))
		for i, y := range ys {
			pts[i].X = float64(i)
			pts[i].Y = y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("build line: %w", err)
		}
		p.Add(line)
		return New(p, opts.Width, opts.Height), nil
	}
}

// Range returns the minimum and maximum over every frame, padded by 5% so
// extremes stay off the axis edge. Non-finite values are ignored.
func Range(frames [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, f := range frames {
		for _, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 1
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}
