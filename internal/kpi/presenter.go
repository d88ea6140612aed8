package kpi

import (
	"fmt"
	"strings"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

// Role is the business meaning of a column, independent of its data
// type. Role detection is keyword-driven on purpose: uploaded sheets
// carry Portuguese or English business vocabulary and nothing else.
type Role int

const (
	RoleNone Role = iota
	RoleStock
	RoleRevenue
	RoleCost
	RoleName
)

// Role vocabularies. Exported so deployments can extend them.
var (
	StockKeywords   = []string{"estoque", "stock", "quantidade", "qty", "inventory", "units", "unidades"}
	RevenueKeywords = []string{"venda", "receita", "revenue", "sales", "faturamento", "valor", "price", "preço", "total"}
	CostKeywords    = []string{"custo", "cost", "expense", "gasto", "despesa"}
	NameKeywords    = []string{"nome", "name", "produto", "product", "descrição", "description", "title", "titulo"}
)

const (
	averageValueCap = 1_000_000
	growthFloor     = 1000
	maxChartRows    = 8
	maxPieSlices    = 5
)

// RoleFor returns the business role of a column name. Stock wins over
// revenue wins over cost when vocabularies overlap.
func RoleFor(column string) Role {
	lower := strings.ToLower(column)
	switch {
	case containsAny(lower, StockKeywords):
		return RoleStock
	case containsAny(lower, RevenueKeywords):
		return RoleRevenue
	case containsAny(lower, CostKeywords):
		return RoleCost
	case containsAny(lower, NameKeywords):
		return RoleName
	default:
		return RoleNone
	}
}

// DeriveKPIs walks every row and field once, bucketing absolute numeric
// values by role. Fields whose name contains "id" are skipped entirely.
// All divisions are guarded; the result is fully deterministic.
func DeriveKPIs(rows []dataset.Row) dataset.KPIReport {
	report := dataset.KPIReport{TotalRecords: len(rows)}

	var unbucketedSum float64
	var unbucketedCount int
	bestRevenue := 0.0
	haveBest := false

	for i, row := range rows {
		rowRevenue := 0.0
		rowHasRevenue := false

		for column, value := range row {
			lower := strings.ToLower(column)
			if strings.Contains(lower, "id") {
				continue
			}
			num, ok := value.Float()
			if !ok {
				continue
			}
			abs := num
			if abs < 0 {
				abs = -abs
			}

			switch RoleFor(column) {
			case RoleStock:
				report.TotalStock += abs
			case RoleRevenue:
				report.TotalRevenue += abs
				rowRevenue += abs
				rowHasRevenue = true
			case RoleCost:
				report.TotalCost += abs
			default:
				if num > 0 && num <= averageValueCap {
					unbucketedSum += num
					unbucketedCount++
				}
			}
		}

		if rowHasRevenue && (!haveBest || rowRevenue > bestRevenue) {
			haveBest = true
			bestRevenue = rowRevenue
			report.BestProduct = truncate(rowLabel(row, i), 20)
		}
	}

	report.Profit = report.TotalRevenue - report.TotalCost
	if report.TotalRevenue > 0 {
		report.ProfitMargin = report.Profit / report.TotalRevenue * 100
	}
	if unbucketedCount > 0 {
		report.AverageValue = unbucketedSum / float64(unbucketedCount)
	}
	report.GrowthRate = growthRate(report.TotalRevenue, report.TotalCost)

	return report
}

// growthRate is a bounded heuristic over the revenue/cost ratio. When
// cost data is absent or revenue is too thin to be meaningful it falls
// back to a neutral 0 so repeated renders stay stable.
func growthRate(revenue, cost float64) float64 {
	if revenue <= growthFloor || cost <= 0 {
		return 0
	}
	return clamp((revenue/cost-1)*10, -50, 50)
}

// ChartData derives the named series rendered as bar/area charts: the
// first rows with at least one matched series, labeled by the name-like
// column or a positional fallback.
func ChartData(rows []dataset.Row) []dataset.ChartPoint {
	points := make([]dataset.ChartPoint, 0, maxChartRows)

	for i, row := range rows {
		if len(points) == maxChartRows {
			break
		}
		point := dataset.ChartPoint{Name: truncate(rowLabel(row, i), 15)}

		for column, value := range row {
			num, ok := value.Float()
			if !ok || num <= 0 {
				continue
			}
			switch RoleFor(column) {
			case RoleRevenue:
				point.Sales += num
				point.HasData = true
			case RoleCost:
				point.Cost += num
				point.HasData = true
			case RoleStock:
				point.Stock += num
				point.HasData = true
			}
		}

		if point.HasData {
			points = append(points, point)
		}
	}
	return points
}

// PieData reduces chart points to the distribution pie: one slice per
// point, valued by the first populated series.
func PieData(points []dataset.ChartPoint) []dataset.PieSlice {
	slices := make([]dataset.PieSlice, 0, maxPieSlices)
	for _, point := range points {
		if len(slices) == maxPieSlices {
			break
		}
		value := point.Sales
		if value == 0 {
			value = point.Cost
		}
		if value == 0 {
			value = point.Stock
		}
		slices = append(slices, dataset.PieSlice{Name: point.Name, Value: value})
	}
	return slices
}

// ColumnStats computes the live stats table over the filtered rows:
// min/max/avg/count for every column whose cells are all numeric.
func ColumnStats(columns []string, rows []dataset.Row) map[string]dataset.ColumnQuickStats {
	table := make(map[string]dataset.ColumnQuickStats)
	if len(rows) == 0 {
		return table
	}

	for _, col := range columns {
		allNumeric := true
		var sum, min, max float64
		count := 0

		for _, row := range rows {
			num, ok := row.Get(col).Float()
			if !ok {
				allNumeric = false
				break
			}
			if count == 0 || num < min {
				min = num
			}
			if count == 0 || num > max {
				max = num
			}
			sum += num
			count++
		}

		if allNumeric && count > 0 {
			table[col] = dataset.ColumnQuickStats{
				Min:   min,
				Max:   max,
				Avg:   sum / float64(count),
				Count: count,
			}
		}
	}
	return table
}

// rowLabel resolves a human label for a row: the first name-like column
// in insertion-independent lookup, else a positional fallback.
func rowLabel(row dataset.Row, index int) string {
	best := ""
	for column, value := range row {
		if RoleFor(column) != RoleName || value.IsEmpty() {
			continue
		}
		// Map iteration order is random; pick deterministically.
		if best == "" || column < best {
			best = column
		}
	}
	if best != "" {
		return row.Get(best).String()
	}
	return fmt.Sprintf("Item %d", index+1)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
