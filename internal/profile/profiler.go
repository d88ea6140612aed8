package profile

import (
	"fmt"
	"math"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/EducAI25/intellidash-insights-ai/internal/classify"
	"github.com/EducAI25/intellidash-insights-ai/internal/stats"
)

// Thresholds for partitioning and narrative insights.
const (
	confidenceFloor  = 0.7  // minimum confidence to trust a numeric/currency column
	missingThreshold = 0.1  // average missing-data ratio that triggers a warning
	outlierThreshold = 0.05 // outlier share per column that triggers an insight
)

// Profiler classifies every column of a dataset and derives narrative
// insights plus a 0-100 quality score.
type Profiler struct {
	classifier *classify.Classifier
}

// New creates a profiler with the default classifier.
func New() *Profiler {
	return &Profiler{classifier: classify.New()}
}

// ProfileColumns classifies every column, in dataset column order.
func (p *Profiler) ProfileColumns(ds dataset.Dataset) []dataset.ColumnProfile {
	profiles := make([]dataset.ColumnProfile, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		profiles = append(profiles, p.classifier.Classify(col, ds.ColumnValues(col)))
	}
	return profiles
}

// Profile analyzes a dataset snapshot. Absence of data is a valid state:
// an empty dataset yields empty partitions, quality 0 and a single
// explanatory insight. It never fails.
func (p *Profiler) Profile(ds dataset.Dataset) dataset.DataInsights {
	if ds.IsEmpty() {
		return dataset.DataInsights{
			NumericColumns:  []string{},
			TextColumns:     []string{},
			CurrencyColumns: []string{},
			Insights:        []string{"Nenhum dado disponível para análise"},
		}
	}

	profiles := p.ProfileColumns(ds)

	insights := dataset.DataInsights{
		TotalRecords:    len(ds.Rows),
		NumericColumns:  []string{},
		TextColumns:     []string{},
		CurrencyColumns: []string{},
	}

	confidenceSum := 0.0
	for _, profile := range profiles {
		confidenceSum += profile.Confidence
		switch {
		case profile.Type == dataset.TypeNumeric && !profile.IsIdentifier && profile.Confidence > confidenceFloor:
			insights.NumericColumns = append(insights.NumericColumns, profile.Name)
		case profile.Type == dataset.TypeCurrency && profile.Confidence > confidenceFloor:
			insights.CurrencyColumns = append(insights.CurrencyColumns, profile.Name)
		case profile.Type == dataset.TypeText && !profile.IsIdentifier:
			insights.TextColumns = append(insights.TextColumns, profile.Name)
		}
	}
	insights.Quality = int(math.Round(confidenceSum / float64(len(profiles)) * 100))

	insights.Insights = p.narrate(ds, insights)
	return insights
}

// narrate builds the insight strings in their fixed display order.
func (p *Profiler) narrate(ds dataset.Dataset, insights dataset.DataInsights) []string {
	lines := []string{
		fmt.Sprintf("Dataset contém %d registros com %d colunas", len(ds.Rows), len(ds.Columns)),
	}

	if len(insights.NumericColumns) > 0 {
		lines = append(lines, fmt.Sprintf("%d colunas numéricas identificadas para análise estatística", len(insights.NumericColumns)))
	}
	if len(insights.CurrencyColumns) > 0 {
		lines = append(lines, fmt.Sprintf("%d colunas monetárias detectadas", len(insights.CurrencyColumns)))
	}

	if ratio := missingDataRatio(ds); ratio > missingThreshold {
		lines = append(lines, fmt.Sprintf("Atenção: %.1f%% dos dados estão faltando", ratio*100))
	}

	for _, col := range insights.NumericColumns {
		values := stats.NumericValues(ds.ColumnValues(col))
		if len(values) == 0 {
			continue
		}
		if outliers := stats.CountOutliers(values); float64(outliers) > float64(len(values))*outlierThreshold {
			lines = append(lines, fmt.Sprintf("Coluna %q contém %d valores atípicos", col, outliers))
		}
	}

	return lines
}

// missingDataRatio averages, across columns, the share of rows with an
// empty cell in that column.
func missingDataRatio(ds dataset.Dataset) float64 {
	if ds.IsEmpty() || len(ds.Columns) == 0 {
		return 0
	}

	total := 0.0
	for _, col := range ds.Columns {
		missing := 0
		for _, row := range ds.Rows {
			if row.Get(col).IsEmpty() {
				missing++
			}
		}
		total += float64(missing) / float64(len(ds.Rows))
	}
	return total / float64(len(ds.Columns))
}
