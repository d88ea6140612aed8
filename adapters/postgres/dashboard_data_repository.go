package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/EducAI25/intellidash-insights-ai/domain/core"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/EducAI25/intellidash-insights-ai/ports"
)

// dashboardDataRepository stores the parsed dataset payload as JSONB
type dashboardDataRepository struct {
	db *sqlx.DB
}

// NewDashboardDataRepository creates a new dashboard data repository
func NewDashboardDataRepository(db *sqlx.DB) ports.DashboardDataRepository {
	return &dashboardDataRepository{db: db}
}

// SaveDataset upserts the dataset and its initial column mapping
func (r *dashboardDataRepository) SaveDataset(ctx context.Context, id core.DashboardID, ds *dataset.Dataset, mapping *dataset.ColumnMapping) error {
	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}
	rowsJSON, err := json.Marshal(ds.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal column mapping: %w", err)
	}

	query := `INSERT INTO dashboard_data (dashboard_id, columns, rows, column_mapping, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (dashboard_id) DO UPDATE SET
		columns = EXCLUDED.columns,
		rows = EXCLUDED.rows,
		column_mapping = EXCLUDED.column_mapping,
		updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query, id, columnsJSON, rowsJSON, mappingJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save dashboard data: %w", err)
	}
	return nil
}

// GetDataset loads the stored dataset for a dashboard
func (r *dashboardDataRepository) GetDataset(ctx context.Context, id core.DashboardID) (*dataset.Dataset, error) {
	query := `SELECT columns, rows FROM dashboard_data WHERE dashboard_id = $1`

	var columnsJSON, rowsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&columnsJSON, &rowsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
		}
		return nil, fmt.Errorf("failed to get dashboard data: %w", err)
	}

	var ds dataset.Dataset
	if err := json.Unmarshal(columnsJSON, &ds.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}
	if err := json.Unmarshal(rowsJSON, &ds.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows: %w", err)
	}
	return &ds, nil
}

// GetColumnMapping loads the display-name mapping for a dashboard
func (r *dashboardDataRepository) GetColumnMapping(ctx context.Context, id core.DashboardID) (*dataset.ColumnMapping, error) {
	query := `SELECT column_mapping FROM dashboard_data WHERE dashboard_id = $1`

	var mappingJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&mappingJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrMappingNotFound, id)
		}
		return nil, fmt.Errorf("failed to get column mapping: %w", err)
	}

	var mapping dataset.ColumnMapping
	if err := json.Unmarshal(mappingJSON, &mapping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal column mapping: %w", err)
	}
	return &mapping, nil
}

// SaveColumnMapping replaces the whole mapping for a dashboard
func (r *dashboardDataRepository) SaveColumnMapping(ctx context.Context, id core.DashboardID, mapping *dataset.ColumnMapping) error {
	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal column mapping: %w", err)
	}

	query := `UPDATE dashboard_data SET column_mapping = $2, updated_at = $3 WHERE dashboard_id = $1`
	result, err := r.db.ExecContext(ctx, query, id, mappingJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save column mapping: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrMappingNotFound, id)
	}
	return nil
}
