package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"github.com/EducAI25/intellidash-insights-ai/domain/core"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/EducAI25/intellidash-insights-ai/internal/filter"
	"github.com/EducAI25/intellidash-insights-ai/internal/insight"
	"github.com/EducAI25/intellidash-insights-ai/internal/kpi"
	"github.com/EducAI25/intellidash-insights-ai/internal/profile"
	"github.com/EducAI25/intellidash-insights-ai/internal/stats"
	"github.com/EducAI25/intellidash-insights-ai/ports"
)

// DashboardService orchestrates upload, profiling and presentation of
// spreadsheet dashboards.
type DashboardService struct {
	dashboards ports.DashboardRepository
	data       ports.DashboardDataRepository
	reader     ports.SpreadsheetReader
	profiler   *profile.Profiler
	chat       ports.ChatClient
}

// NewDashboardService wires the service. chat may be nil; questions are
// then answered locally.
func NewDashboardService(
	dashboards ports.DashboardRepository,
	data ports.DashboardDataRepository,
	reader ports.SpreadsheetReader,
	chat ports.ChatClient,
) *DashboardService {
	return &DashboardService{
		dashboards: dashboards,
		data:       data,
		reader:     reader,
		profiler:   profile.New(),
		chat:       chat,
	}
}

// DashboardView is the full render payload for one dashboard: the
// filtered rows plus every derived panel.
type DashboardView struct {
	Dashboard      *dataset.Dashboard                     `json:"dashboard"`
	Columns        []string                               `json:"columns"`
	DisplayColumns []string                               `json:"display_columns"`
	Rows           []dataset.Row                          `json:"rows"`
	Insights       dataset.DataInsights                   `json:"insights"`
	Profiles       []dataset.ColumnProfile                `json:"profiles"`
	KPIs           dataset.KPIReport                      `json:"kpis"`
	Chart          []dataset.ChartPoint                   `json:"chart"`
	Pie            []dataset.PieSlice                     `json:"pie"`
	ColumnStats    map[string]dataset.ColumnQuickStats    `json:"column_stats"`
	Alerts         dataset.InsightAlerts                  `json:"alerts"`
	Summaries      map[string]*dataset.NumericSummary     `json:"summaries"`
	Moments        map[string]dataset.DistributionMoments `json:"moments"`
	Mapping        *dataset.ColumnMapping                 `json:"mapping"`
}

// CreateFromUpload parses the uploaded spreadsheet, profiles it and
// persists both the dashboard record and its dataset.
func (s *DashboardService) CreateFromUpload(ctx context.Context, userID core.UserID, title string, src io.Reader, filename string) (*dataset.Dashboard, error) {
	ds, err := s.reader.Read(src, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	if title == "" {
		title = filename
	}
	dashboard := dataset.NewDashboard(userID, title, filename)
	dashboard.RecordCount = len(ds.Rows)
	dashboard.ColumnCount = len(ds.Columns)

	insights := s.profiler.Profile(*ds)
	dashboard.Quality = insights.Quality

	if err := s.dashboards.Create(ctx, dashboard); err != nil {
		return nil, err
	}

	mapping := dataset.NewColumnMapping(ds.Columns)
	if err := s.data.SaveDataset(ctx, dashboard.ID, ds, &mapping); err != nil {
		if updateErr := s.dashboards.UpdateStatus(ctx, dashboard.ID, dataset.StatusFailed, err.Error()); updateErr != nil {
			log.Printf("[DashboardService] Failed to mark dashboard %s as failed: %v", dashboard.ID, updateErr)
		}
		return nil, err
	}

	if err := s.dashboards.UpdateStatus(ctx, dashboard.ID, dataset.StatusReady, ""); err != nil {
		return nil, err
	}
	dashboard.Status = dataset.StatusReady

	log.Printf("[DashboardService] Dashboard %s created (%d rows, %d columns, quality %d)",
		dashboard.ID, dashboard.RecordCount, dashboard.ColumnCount, dashboard.Quality)
	return dashboard, nil
}

// GetDashboard returns the dashboard record
func (s *DashboardService) GetDashboard(ctx context.Context, id core.DashboardID) (*dataset.Dashboard, error) {
	return s.dashboards.GetByID(ctx, id)
}

// GetColumnMapping returns the saved display/filter configuration
func (s *DashboardService) GetColumnMapping(ctx context.Context, id core.DashboardID) (*dataset.ColumnMapping, error) {
	return s.data.GetColumnMapping(ctx, id)
}

// ListDashboards returns the user's dashboards, newest first
func (s *DashboardService) ListDashboards(ctx context.Context, userID core.UserID, limit, offset int) ([]*dataset.Dashboard, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.dashboards.ListByUser(ctx, userID, limit, offset)
}

// DeleteDashboard removes a dashboard and its stored dataset
func (s *DashboardService) DeleteDashboard(ctx context.Context, id core.DashboardID) error {
	return s.dashboards.Delete(ctx, id)
}

// View loads the dashboard, applies filters and derives every panel
// from the surviving rows.
func (s *DashboardService) View(ctx context.Context, id core.DashboardID, filters dataset.FilterState) (*DashboardView, error) {
	dashboard, err := s.dashboards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ds, err := s.data.GetDataset(ctx, id)
	if err != nil {
		return nil, err
	}
	mapping, err := s.data.GetColumnMapping(ctx, id)
	if err != nil {
		return nil, err
	}

	for column := range filters {
		if !mapping.IsFilterable(column) {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownFilter, column)
		}
	}

	rows := filter.Apply(ds.Rows, filters)
	filtered := dataset.Dataset{Columns: ds.Columns, Rows: rows}

	summaries := make(map[string]*dataset.NumericSummary)
	moments := make(map[string]dataset.DistributionMoments)
	insights := s.profiler.Profile(filtered)
	measurable := append(append([]string{}, insights.NumericColumns...), insights.CurrencyColumns...)
	for _, column := range measurable {
		values := stats.NumericValues(filtered.ColumnValues(column))
		if summary := stats.Summarize(values); summary != nil {
			summaries[column] = summary
			moments[column] = stats.Moments(values)
		}
	}

	displayColumns := make([]string, len(ds.Columns))
	for i, column := range ds.Columns {
		displayColumns[i] = mapping.DisplayName(column)
	}

	chart := kpi.ChartData(rows)
	return &DashboardView{
		Dashboard:      dashboard,
		Columns:        ds.Columns,
		DisplayColumns: displayColumns,
		Rows:           rows,
		Insights:       insights,
		Profiles:       s.profiler.ProfileColumns(filtered),
		KPIs:           kpi.DeriveKPIs(rows),
		Chart:          chart,
		Pie:            kpi.PieData(chart),
		ColumnStats:    kpi.ColumnStats(ds.Columns, rows),
		Alerts:         insight.DeriveAlerts(ds.Columns, rows),
		Summaries:      summaries,
		Moments:        moments,
		Mapping:        mapping,
	}, nil
}

// SaveColumnMapping validates the mapping against the stored dataset
// and replaces it wholesale.
func (s *DashboardService) SaveColumnMapping(ctx context.Context, id core.DashboardID, mapping *dataset.ColumnMapping) error {
	ds, err := s.data.GetDataset(ctx, id)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(ds.Columns))
	for _, column := range ds.Columns {
		known[column] = true
	}
	for column := range mapping.ColumnMappings {
		if !known[column] {
			return fmt.Errorf("%w: %s", core.ErrColumnMismatch, column)
		}
	}
	for _, column := range mapping.FilterColumns {
		if !known[column] {
			return fmt.Errorf("%w: %s", core.ErrColumnMismatch, column)
		}
	}

	return s.data.SaveColumnMapping(ctx, id, mapping)
}

// Ask answers a question about the dashboard's data. With a chat client
// configured the prompt goes to the LLM; otherwise a deterministic
// local summary is produced.
func (s *DashboardService) Ask(ctx context.Context, id core.DashboardID, question string) (string, error) {
	dashboard, err := s.dashboards.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	ds, err := s.data.GetDataset(ctx, id)
	if err != nil {
		return "", err
	}

	insights := s.profiler.Profile(*ds)
	dataContext := insight.BuildChatContext(dashboard.Title, ds.Columns, insights)

	if s.chat == nil {
		return insight.LocalAnswer(question, ds.Columns, ds.Rows, insights), nil
	}

	answer, err := s.chat.Answer(ctx, insight.BuildPrompt(dataContext, question))
	if err != nil {
		log.Printf("[DashboardService] Chat request failed, answering locally: %v", err)
		return insight.LocalAnswer(question, ds.Columns, ds.Rows, insights), nil
	}
	return answer, nil
}

// ExportCSV streams the filtered rows as CSV using display names for
// the header.
func (s *DashboardService) ExportCSV(ctx context.Context, id core.DashboardID, filters dataset.FilterState, w io.Writer) error {
	view, err := s.View(ctx, id, filters)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(view.DisplayColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(view.Columns))
	for _, row := range view.Rows {
		for i, column := range view.Columns {
			record[i] = row.Get(column).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
