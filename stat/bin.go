// Package stat provides the statistical transformations behind the
// histogram panels: equal-width binning and posterior summaries.
package stat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultNumBins is the number of bins used if BinOptions do not say
// otherwise.
const DefaultNumBins = 30

// ErrNoData is returned when there is nothing to bin or summarize.
var ErrNoData = errors.New("stat: no data")

// BinOptions control Bin.
type BinOptions struct {
	// NumBins is the number of equal-width bins. Zero means
	// DefaultNumBins.
	NumBins int
}

// Histogram is the result of binning values into equal-width bins
// covering [Min, Max]. Bin i covers [Min+i*Width, Min+(i+1)*Width), the
// last bin is closed on both sides.
type Histogram struct {
	Min, Max float64
	Width    float64
	Counts   []int64
	N        int64 // total number of binned values
}

// BinnedData describes one bin.
type BinnedData struct {
	X        float64 // center of the bin
	Lo, Hi   float64 // bin boundaries
	Count    int64
	Density  float64 // Count / (N * Width)
	NCount   float64 // Count scaled to a maximum of 1
	NDensity float64 // Density scaled to a maximum of 1
}

// Bin groups values into bins and counts the occurrences in these bins.
// The bins span the range of values; if all values are equal the range
// is widened by one on both sides (relatively for values beyond 1e9). A nil options will use the default
// BinOptions.
func Bin(values []float64, options *BinOptions) (Histogram, error) {
	if len(values) == 0 {
		return Histogram{}, ErrNoData
	}
	numBins := DefaultNumBins
	if options != nil && options.NumBins != 0 {
		numBins = options.NumBins
	}
	if numBins < 0 {
		return Histogram{}, fmt.Errorf("stat: invalid number of bins %d", numBins)
	}
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Histogram{}, fmt.Errorf("stat: cannot bin non-finite value %g", x)
		}
	}

	min, max := floats.Min(values), floats.Max(values)
	if min == max {
		d := math.Max(1, math.Abs(min)*1e-9)
		min -= d
		max += d
	}
	// Divide before subtracting: max-min overflows for ranges wider
	// than math.MaxFloat64.
	binWidth := max/float64(numBins) - min/float64(numBins)
	if math.IsInf(binWidth, 0) || !(binWidth > 0) {
		return Histogram{}, fmt.Errorf("stat: cannot bin range [%g, %g] into %d bins", min, max, numBins)
	}

	h := Histogram{
		Min:    min,
		Max:    max,
		Width:  binWidth,
		Counts: make([]int64, numBins),
		N:      int64(len(values)),
	}
	for _, x := range values {
		bin := int(x/binWidth - min/binWidth)
		switch {
		case bin < 0:
			bin = 0
		case bin >= numBins:
			bin = numBins - 1 // x == max, or rounding just below it
		}
		h.Counts[bin]++
	}
	return h, nil
}

// Edges returns the len(h.Counts)+1 bin boundaries.
func (h Histogram) Edges() []float64 {
	edges := make([]float64, len(h.Counts)+1)
	n := float64(len(h.Counts))
	for i := range edges {
		f := float64(i) / n
		edges[i] = h.Min*(1-f) + h.Max*f
	}
	edges[0], edges[len(edges)-1] = h.Min, h.Max
	return edges
}

// Heights returns the bar heights: the plain counts or, if density is
// set, the counts scaled so that the total bar area is 1.
func (h Histogram) Heights(density bool) []float64 {
	heights := make([]float64, len(h.Counts))
	for i, count := range h.Counts {
		if density {
			heights[i] = float64(count) / float64(h.N) / h.Width
		} else {
			heights[i] = float64(count)
		}
	}
	return heights
}

// Binned returns the per-bin description of h.
func (h Histogram) Binned() []BinnedData {
	edges := h.Edges()
	density := h.Heights(true)
	maxCount, maxDensity := int64(0), 0.0
	for i, count := range h.Counts {
		if count > maxCount {
			maxCount = count
		}
		if density[i] > maxDensity {
			maxDensity = density[i]
		}
	}

	binned := make([]BinnedData, len(h.Counts))
	for i, count := range h.Counts {
		b := &binned[i]
		b.Lo, b.Hi = edges[i], edges[i+1]
		b.X = b.Lo/2 + b.Hi/2
		b.Count = count
		b.Density = density[i]
		if maxCount > 0 {
			b.NCount = float64(count) / float64(maxCount)
			b.NDensity = density[i] / maxDensity
		}
	}
	return binned
}
