package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEvenCount(t *testing.T) {
	summary := Summarize([]float64{10, 20, 30, 40})
	require.NotNil(t, summary)

	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, 100.0, summary.Sum)
	assert.Equal(t, 25.0, summary.Mean)
	assert.Equal(t, 25.0, summary.Median)
	assert.Equal(t, 10.0, summary.Min)
	assert.Equal(t, 40.0, summary.Max)
	assert.Equal(t, 30.0, summary.Range)
}

func TestSummarizeOddCountMedian(t *testing.T) {
	summary := Summarize([]float64{5, 1, 3})
	require.NotNil(t, summary)

	assert.Equal(t, 3.0, summary.Median)
}

func TestSummarizePositionalQuartiles(t *testing.T) {
	// n=4: q1 = sorted[floor(4*0.25)] = sorted[1], q3 = sorted[floor(4*0.75)] = sorted[3]
	summary := Summarize([]float64{10, 20, 30, 40})
	require.NotNil(t, summary)

	assert.Equal(t, 20.0, summary.Q1)
	assert.Equal(t, 40.0, summary.Q3)
	assert.Equal(t, 20.0, summary.IQR)
}

func TestSummarizePopulationVariance(t *testing.T) {
	summary := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NotNil(t, summary)

	// Classic population-variance example: mean 5, variance 4, stddev 2.
	assert.InDelta(t, 4.0, summary.Variance, 1e-9)
	assert.InDelta(t, 2.0, summary.StdDev, 1e-9)
}

func TestSummarizeEmptyIsNil(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize([]float64{}))
}

func TestSummarizeDiscardsNonFinite(t *testing.T) {
	assert.Nil(t, Summarize([]float64{math.NaN(), math.Inf(1)}))

	summary := Summarize([]float64{math.NaN(), 10, math.Inf(-1), 20})
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 15.0, summary.Mean)
}

func TestSummarizeOrderingInvariant(t *testing.T) {
	sequences := [][]float64{
		{1},
		{3, 1, 2},
		{-5, 100, 42, 0.5, 7, 7, 7},
		{0, 0, 0, 0},
	}
	for _, seq := range sequences {
		summary := Summarize(seq)
		require.NotNil(t, summary)
		assert.LessOrEqual(t, summary.Min, summary.Median)
		assert.LessOrEqual(t, summary.Median, summary.Max)
		assert.LessOrEqual(t, summary.Q1, summary.Q3)
	}
}

func TestCountOutliers(t *testing.T) {
	// A single extreme value against a tight cluster.
	values := []float64{10, 11, 12, 10, 11, 12, 10, 11, 12, 500}
	assert.Equal(t, 1, CountOutliers(values))

	assert.Equal(t, 0, CountOutliers(nil))
	assert.Equal(t, 0, CountOutliers([]float64{5, 5, 5}))
}

func TestMomentsShortSequences(t *testing.T) {
	assert.Equal(t, 0.0, Moments([]float64{1, 2}).Skewness)
	assert.Equal(t, 0.0, Moments(nil).Kurtosis)
}

func TestMomentsSkewedData(t *testing.T) {
	right := Moments([]float64{1, 1, 1, 2, 2, 3, 10, 50})
	assert.Greater(t, right.Skewness, 0.0)
}
