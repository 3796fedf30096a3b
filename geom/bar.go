// Package geom turns binned data into drawable gonum plotters.
package geom

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/posthist/stat"
)

// Bar draws a histogram as adjacent bars, one per bin.
type Bar struct {
	// Density selects count/(N*width) heights instead of plain counts.
	Density bool

	// Fill is the bar colour. A nil Fill leaves the bars unfilled.
	Fill color.Color

	// Line is the outline of the bars.
	Line draw.LineStyle
}

// Plotter returns a gonum histogram plotter showing h.
func (b Bar) Plotter(h stat.Histogram) *plotter.Histogram {
	heights := h.Heights(b.Density)
	edges := h.Edges()
	bins := make([]plotter.HistogramBin, len(heights))
	for i, y := range heights {
		bins[i] = plotter.HistogramBin{
			Min:    edges[i],
			Max:    edges[i+1],
			Weight: y,
		}
	}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     h.Width,
		FillColor: b.Fill,
		LineStyle: b.Line,
	}
}
