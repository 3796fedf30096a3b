package stat

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultProbs are the percentiles reported for posterior
// hyper-parameters.
var DefaultProbs = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// DetailedProbs returns the percentiles 0.01, 0.02, ..., 0.98 of the
// detailed hyper-posterior table.
func DetailedProbs() []float64 {
	probs := make([]float64, 98)
	for i := range probs {
		probs[i] = float64(i+1) / 100
	}
	return probs
}

// Summary describes the posterior sample of one parameter.
type Summary struct {
	N         int
	Mean      float64
	StdDev    float64 // sample standard deviation, NaN for N == 1
	Probs     []float64
	Quantiles []float64 // interpolated quantiles, one per Probs
}

// Summarize computes mean, standard deviation and the quantiles at
// probs of values. A nil probs uses DefaultProbs.
// Values is not modified.
func Summarize(values []float64, probs []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoData
	}
	if probs == nil {
		probs = DefaultProbs
	}
	for _, p := range probs {
		if p < 0 || p > 1 {
			return Summary{}, fmt.Errorf("stat: probability %g outside [0,1]", p)
		}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:         len(values),
		Probs:     append([]float64(nil), probs...),
		Quantiles: make([]float64, len(probs)),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	for i, p := range probs {
		s.Quantiles[i] = Quantile(p, sorted)
	}
	return s, nil
}

// Quantile returns the p-quantile of the sorted, non-empty x,
// interpolating linearly between the order statistics at positions
// floor(h) and ceil(h) with h = (len(x)-1)*p.
func Quantile(p float64, x []float64) float64 {
	h := float64(len(x)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(x)-1 {
		return x[len(x)-1]
	}
	return x[lo] + (h-float64(lo))*(x[lo+1]-x[lo])
}
