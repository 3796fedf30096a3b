package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[len(values)-1-i] = float64(i + 1) // descending, 100..1
	}
	s, err := Summarize(values, nil)
	require.NoError(t, err)

	assert.Equal(t, 100, s.N)
	assert.InDelta(t, 50.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(100*101/12.0), s.StdDev, 1e-9)
	assert.Equal(t, DefaultProbs, s.Probs)
	assert.InDeltaSlice(t, []float64{5.95, 25.75, 50.5, 75.25, 95.05}, s.Quantiles, 1e-9)
	assert.Equal(t, 100.0, values[0], "input must not be sorted in place")
}

func TestSummarizeSingleValue(t *testing.T) {
	s, err := Summarize([]float64{4}, []float64{0, 0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, 4.0, s.Mean)
	assert.True(t, math.IsNaN(s.StdDev))
	assert.Equal(t, []float64{4, 4, 4}, s.Quantiles)
}

func TestSummarizeErrors(t *testing.T) {
	_, err := Summarize(nil, nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Summarize([]float64{1, 2}, []float64{0.5, 1.5})
	assert.Error(t, err)
}

func TestQuantile(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	tests := []struct {
		p, want float64
	}{
		{0, 1},
		{0.05, 1.15},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{0.95, 3.85},
		{1, 4},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, Quantile(tc.p, x), 1e-12, "p=%g", tc.p)
	}
	assert.Equal(t, 7.0, Quantile(0.3, []float64{7}))
}

func TestDetailedProbs(t *testing.T) {
	probs := DetailedProbs()
	require.Len(t, probs, 98)
	assert.Equal(t, 0.01, probs[0])
	assert.Equal(t, 0.5, probs[49])
	assert.Equal(t, 0.98, probs[97])

	s, err := Summarize([]float64{3, 1, 2}, probs)
	require.NoError(t, err)
	assert.Len(t, s.Quantiles, 98)
	assert.InDelta(t, 2.0, s.Quantiles[49], 1e-12)
}
