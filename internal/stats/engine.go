package stats

import (
	"math"
	"sort"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes descriptive statistics for a numeric sequence.
// NaN and infinite values are discarded first; a sequence with no finite
// values yields nil, the sentinel for "no numeric data".
func Summarize(values []float64) *dataset.NumericSummary {
	clean := finite(values)
	if len(clean) == 0 {
		return nil
	}

	sorted := make([]float64, len(clean))
	copy(sorted, clean)
	sort.Float64s(sorted)
	n := len(sorted)

	sum, _ := stats.Sum(sorted)
	mean, _ := stats.Mean(sorted)
	median, _ := stats.Median(sorted)
	variance, _ := stats.PopulationVariance(sorted)

	// Positional quartiles: sorted[floor(n*q)], no interpolation. The
	// dashboard depends on this exact indexing for outlier counts.
	q1 := sorted[int(math.Floor(float64(n)*0.25))]
	q3 := sorted[int(math.Floor(float64(n)*0.75))]

	return &dataset.NumericSummary{
		Count:    n,
		Sum:      sum,
		Mean:     mean,
		Median:   median,
		Min:      sorted[0],
		Max:      sorted[n-1],
		Q1:       q1,
		Q3:       q3,
		IQR:      q3 - q1,
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Range:    sorted[n-1] - sorted[0],
	}
}

// CountOutliers applies the 1.5×IQR rule to a sequence using the
// positional quartiles of Summarize.
func CountOutliers(values []float64) int {
	summary := Summarize(values)
	if summary == nil {
		return 0
	}
	lower := summary.Q1 - 1.5*summary.IQR
	upper := summary.Q3 + 1.5*summary.IQR

	count := 0
	for _, v := range finite(values) {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

// Moments computes skewness and excess kurtosis for a numeric sequence.
// Sequences too short for stable higher moments yield zeros.
func Moments(values []float64) dataset.DistributionMoments {
	clean := finite(values)
	if len(clean) < 3 {
		return dataset.DistributionMoments{}
	}
	moments := dataset.DistributionMoments{
		Skewness: stat.Skew(clean, nil),
	}
	if len(clean) >= 4 {
		moments.Kurtosis = stat.ExKurtosis(clean, nil)
	}
	if math.IsNaN(moments.Skewness) {
		moments.Skewness = 0
	}
	if math.IsNaN(moments.Kurtosis) {
		moments.Kurtosis = 0
	}
	return moments
}

// NumericValues extracts the finite numbers from a column's cells.
func NumericValues(values []dataset.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
