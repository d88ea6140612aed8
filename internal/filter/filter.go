package filter

import (
	"strings"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

// Apply narrows rows to those matching every non-empty filter pattern.
// A row matches a (column, pattern) pair when the column's value,
// lower-cased, contains the lower-cased pattern as a substring; a
// missing column reads as the empty string. Row order is preserved and
// the input is never mutated.
func Apply(rows []dataset.Row, filters dataset.FilterState) []dataset.Row {
	active := activePatterns(filters)
	if len(active) == 0 {
		return rows
	}

	filtered := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, active) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func activePatterns(filters dataset.FilterState) map[string]string {
	active := make(map[string]string, len(filters))
	for column, pattern := range filters {
		if pattern == "" {
			continue
		}
		active[column] = strings.ToLower(pattern)
	}
	return active
}

func matches(row dataset.Row, patterns map[string]string) bool {
	for column, pattern := range patterns {
		value := strings.ToLower(row.Get(column).String())
		if !strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
