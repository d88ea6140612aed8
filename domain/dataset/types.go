package dataset

import (
	"time"

	"github.com/EducAI25/intellidash-insights-ai/domain/core"
)

// DashboardStatus represents the processing state of a dashboard
type DashboardStatus string

const (
	StatusProcessing DashboardStatus = "processing"
	StatusReady      DashboardStatus = "ready"
	StatusFailed     DashboardStatus = "failed"
)

// Row maps a column name to its cell value. Callers must tolerate
// missing keys; a missing key reads as the empty cell.
type Row map[string]Value

// Get returns the cell for a column, or the empty cell if absent.
func (r Row) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return EmptyValue()
}

// Dataset is an ordered sequence of rows sharing one column set.
// Columns preserves the source file order for display.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewDataset creates a dataset from a header and rows.
func NewDataset(columns []string, rows []Row) Dataset {
	return Dataset{Columns: columns, Rows: rows}
}

// IsEmpty reports whether the dataset has no rows.
func (d Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}

// ColumnValues collects one column across all rows, in row order.
func (d Dataset) ColumnValues(column string) []Value {
	values := make([]Value, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row.Get(column))
	}
	return values
}

// Rename produces a new dataset with column names rewritten per the
// mapping. Values are untouched; unmapped columns keep their name and
// column order is preserved.
func (d Dataset) Rename(names map[string]string) Dataset {
	renamed := Dataset{
		Columns: make([]string, len(d.Columns)),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, col := range d.Columns {
		if display, ok := names[col]; ok && display != "" {
			renamed.Columns[i] = display
		} else {
			renamed.Columns[i] = col
		}
	}
	for i, row := range d.Rows {
		out := make(Row, len(row))
		for j, col := range d.Columns {
			out[renamed.Columns[j]] = row.Get(col)
		}
		renamed.Rows[i] = out
	}
	return renamed
}

// ColumnMapping is the user-owned rename + filter configuration for a
// dashboard. It is re-saved wholesale on each edit.
type ColumnMapping struct {
	ColumnMappings map[string]string `json:"columnMappings"`
	FilterColumns  []string          `json:"filterColumns"`
}

// NewColumnMapping returns an identity mapping with every column filterable,
// the default produced by the upload flow.
func NewColumnMapping(columns []string) ColumnMapping {
	return ColumnMapping{
		ColumnMappings: make(map[string]string),
		FilterColumns:  append([]string(nil), columns...),
	}
}

// IsFilterable reports whether a column is exposed as a live filter.
func (m ColumnMapping) IsFilterable(column string) bool {
	for _, col := range m.FilterColumns {
		if col == column {
			return true
		}
	}
	return false
}

// DisplayName returns the user-chosen name for a column, or the original.
func (m ColumnMapping) DisplayName(column string) string {
	if display, ok := m.ColumnMappings[column]; ok && display != "" {
		return display
	}
	return column
}

// FilterState maps a filterable column to its substring pattern.
// Transient and UI-local; never persisted.
type FilterState map[string]string

// Dashboard is the stored record owning one uploaded dataset.
type Dashboard struct {
	ID             core.DashboardID `json:"id"`
	UserID         core.UserID      `json:"user_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	SourceFilename string           `json:"source_filename"`
	RecordCount    int              `json:"record_count"`
	ColumnCount    int              `json:"column_count"`
	Quality        int              `json:"quality"`
	Status         DashboardStatus  `json:"status"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewDashboard creates a dashboard record in the processing state.
func NewDashboard(userID core.UserID, title, filename string) *Dashboard {
	now := time.Now()
	return &Dashboard{
		ID:             core.DashboardID(core.NewID()),
		UserID:         userID,
		Title:          title,
		SourceFilename: filename,
		Status:         StatusProcessing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsReady returns true if the dashboard can be viewed.
func (d *Dashboard) IsReady() bool {
	return d.Status == StatusReady
}
