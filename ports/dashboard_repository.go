package ports

import (
	"context"

	"github.com/EducAI25/intellidash-insights-ai/domain/core"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

// DashboardRepository persists dashboard records
type DashboardRepository interface {
	Create(ctx context.Context, d *dataset.Dashboard) error
	GetByID(ctx context.Context, id core.DashboardID) (*dataset.Dashboard, error)
	ListByUser(ctx context.Context, userID core.UserID, limit, offset int) ([]*dataset.Dashboard, error)
	UpdateStatus(ctx context.Context, id core.DashboardID, status dataset.DashboardStatus, errorMessage string) error
	Delete(ctx context.Context, id core.DashboardID) error
}

// DashboardDataRepository persists the parsed dataset and its column
// mappings alongside a dashboard
type DashboardDataRepository interface {
	SaveDataset(ctx context.Context, id core.DashboardID, ds *dataset.Dataset, mapping *dataset.ColumnMapping) error
	GetDataset(ctx context.Context, id core.DashboardID) (*dataset.Dataset, error)
	GetColumnMapping(ctx context.Context, id core.DashboardID) (*dataset.ColumnMapping, error)
	SaveColumnMapping(ctx context.Context, id core.DashboardID, mapping *dataset.ColumnMapping) error
}
