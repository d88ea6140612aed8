package insight

import (
	"fmt"
	"strings"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

const (
	lowStockThreshold   = 10
	highMarginThreshold = 40.0
	weakMarginThreshold = 20.0
	strongShare         = 0.7
	performerLabelMax   = 25
)

var (
	stockColumnKeywords = []string{"estoque", "stock"}
	salesColumnKeywords = []string{"venda", "receita"}
	costColumnKeywords  = []string{"custo", "cost"}
	nameColumnKeywords  = []string{"nome", "produto"}
)

// DeriveAlerts scans the filtered rows for low stock and profit-margin
// signals and produces the alert panel shown next to the charts.
func DeriveAlerts(columns []string, rows []dataset.Row) dataset.InsightAlerts {
	out := dataset.InsightAlerts{TotalItems: len(rows), Alerts: []string{}}
	if len(rows) == 0 {
		return out
	}

	stockCol := firstMatching(columns, stockColumnKeywords)
	salesCol := firstMatching(columns, salesColumnKeywords)
	costCol := firstMatching(columns, costColumnKeywords)
	nameCol := firstMatching(columns, nameColumnKeywords)

	var marginSum, bestMargin float64
	for _, row := range rows {
		if stockCol != "" {
			if qty, ok := row.Get(stockCol).Float(); ok && qty < lowStockThreshold {
				out.LowStockItems++
			}
		}
		if salesCol == "" || costCol == "" {
			continue
		}
		sales, okS := row.Get(salesCol).Float()
		cost, okC := row.Get(costCol).Float()
		if !okS || !okC || sales == 0 {
			continue
		}
		margin := (sales - cost) / sales * 100
		marginSum += margin
		if margin > highMarginThreshold {
			out.HighMarginRows++
		}
		if nameCol != "" && (out.BestPerformer == "" || margin > bestMargin) {
			if label := row.Get(nameCol).String(); label != "" {
				out.BestPerformer = truncateLabel(label, performerLabelMax)
				bestMargin = margin
			}
		}
	}

	out.AvgMargin = marginSum / float64(out.TotalItems)
	out.StockHealth = float64(out.TotalItems-out.LowStockItems) / float64(out.TotalItems) * 100
	out.ProfitHealth = min(out.AvgMargin*2, 100)

	if out.LowStockItems > 0 {
		out.Alerts = append(out.Alerts, fmt.Sprintf("%d produtos com estoque baixo", out.LowStockItems))
	}
	if out.AvgMargin < weakMarginThreshold {
		out.Alerts = append(out.Alerts, "Margem de lucro média abaixo do ideal")
	}
	if float64(out.HighMarginRows)/float64(out.TotalItems) > strongShare {
		out.Alerts = append(out.Alerts, "Ótima performance geral dos produtos")
	}
	return out
}

// firstMatching returns the first column whose lowercase name contains
// any of the keywords. Column order keeps the pick deterministic.
func firstMatching(columns []string, keywords []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col
			}
		}
	}
	return ""
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
