package dataset

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeNumeric    ColumnType = "numeric"
	TypeText       ColumnType = "text"
	TypeCurrency   ColumnType = "currency"
	TypePercentage ColumnType = "percentage"
	TypeDate       ColumnType = "date"
	TypeBoolean    ColumnType = "boolean"
)

// ColumnProfile describes one column of a dataset snapshot. Derived on
// demand and never persisted independently of its dataset.
type ColumnProfile struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	IsIdentifier bool       `json:"is_identifier"`
	Confidence   float64    `json:"confidence"`
}

// DataInsights summarizes a dataset snapshot: column partitions, the
// narrative insight strings shown on the dashboard and a 0-100 quality
// score (mean classification confidence).
type DataInsights struct {
	TotalRecords    int      `json:"total_records"`
	NumericColumns  []string `json:"numeric_columns"`
	TextColumns     []string `json:"text_columns"`
	CurrencyColumns []string `json:"currency_columns"`
	Insights        []string `json:"insights"`
	Quality         int      `json:"quality"`
}

// NumericSummary holds descriptive statistics for one numeric sequence.
// Derived and discarded after use.
type NumericSummary struct {
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Range    float64 `json:"range"`
}

// DistributionMoments carries higher moments for a numeric column,
// used by the insight alerts.
type DistributionMoments struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// KPIReport is the headline number set rendered as KPI cards.
type KPIReport struct {
	TotalRecords int     `json:"total_records"`
	TotalStock   float64 `json:"total_stock"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
	BestProduct  string  `json:"best_product"`
	AverageValue float64 `json:"average_value"`
	GrowthRate   float64 `json:"growth_rate"`
}

// ChartPoint is one labeled entry of a derived chart series.
type ChartPoint struct {
	Name    string  `json:"name"`
	Sales   float64 `json:"sales,omitempty"`
	Cost    float64 `json:"cost,omitempty"`
	Stock   float64 `json:"stock,omitempty"`
	HasData bool    `json:"-"`
}

// PieSlice is one entry of the distribution pie chart.
type PieSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ColumnQuickStats is the per-column row of the live stats table.
type ColumnQuickStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// InsightAlerts is the inventory/profit alert panel derived from the
// filtered rows.
type InsightAlerts struct {
	LowStockItems  int      `json:"low_stock_items"`
	HighMarginRows int      `json:"high_margin_rows"`
	TotalItems     int      `json:"total_items"`
	AvgMargin      float64  `json:"avg_margin"`
	BestPerformer  string   `json:"best_performer"`
	Alerts         []string `json:"alerts"`
	StockHealth    float64  `json:"stock_health"`
	ProfitHealth   float64  `json:"profit_health"`
}
