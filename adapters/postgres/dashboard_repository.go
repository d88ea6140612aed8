package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/EducAI25/intellidash-insights-ai/domain/core"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/EducAI25/intellidash-insights-ai/ports"
)

// dashboardRepository implements the DashboardRepository interface
type dashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *sqlx.DB) ports.DashboardRepository {
	return &dashboardRepository{db: db}
}

// Create inserts a new dashboard into the database
func (r *dashboardRepository) Create(ctx context.Context, d *dataset.Dashboard) error {
	query := `INSERT INTO dashboards (
		id, user_id, title, description, source_filename,
		record_count, column_count, quality, status, error_message,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.UserID, d.Title, d.Description, d.SourceFilename,
		d.RecordCount, d.ColumnCount, d.Quality, d.Status, d.ErrorMessage,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	return nil
}

// GetByID retrieves a dashboard by its ID
func (r *dashboardRepository) GetByID(ctx context.Context, id core.DashboardID) (*dataset.Dashboard, error) {
	query := `SELECT
		id, user_id, title, COALESCE(description, '') AS description, source_filename,
		record_count, column_count, quality, status, COALESCE(error_message, '') AS error_message,
		created_at, updated_at
	FROM dashboards WHERE id = $1`

	var d dataset.Dashboard
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &d.SourceFilename,
		&d.RecordCount, &d.ColumnCount, &d.Quality, &d.Status, &d.ErrorMessage,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrDashboardNotFound, id)
		}
		return nil, fmt.Errorf("failed to get dashboard: %w", err)
	}
	return &d, nil
}

// ListByUser retrieves dashboards for a user, newest first
func (r *dashboardRepository) ListByUser(ctx context.Context, userID core.UserID, limit, offset int) ([]*dataset.Dashboard, error) {
	query := `SELECT
		id, user_id, title, COALESCE(description, '') AS description, source_filename,
		record_count, column_count, quality, status, COALESCE(error_message, '') AS error_message,
		created_at, updated_at
	FROM dashboards
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list dashboards: %w", err)
	}
	defer rows.Close()

	var dashboards []*dataset.Dashboard
	for rows.Next() {
		var d dataset.Dashboard
		err := rows.Scan(
			&d.ID, &d.UserID, &d.Title, &d.Description, &d.SourceFilename,
			&d.RecordCount, &d.ColumnCount, &d.Quality, &d.Status, &d.ErrorMessage,
			&d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dashboard: %w", err)
		}
		dashboards = append(dashboards, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dashboards: %w", err)
	}
	return dashboards, nil
}

// UpdateStatus transitions a dashboard between processing states
func (r *dashboardRepository) UpdateStatus(ctx context.Context, id core.DashboardID, status dataset.DashboardStatus, errorMessage string) error {
	query := `UPDATE dashboards SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, errorMessage, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update dashboard status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrDashboardNotFound, id)
	}
	return nil
}

// Delete removes a dashboard and, via cascade, its stored dataset
func (r *dashboardRepository) Delete(ctx context.Context, id core.DashboardID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM dashboards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dashboard: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrDashboardNotFound, id)
	}
	return nil
}
