package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EducAI25/intellidash-insights-ai/adapters/ingest"
	"github.com/EducAI25/intellidash-insights-ai/adapters/llm"
	"github.com/EducAI25/intellidash-insights-ai/domain/core"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/EducAI25/intellidash-insights-ai/ports"
)

// In-memory repositories for exercising the service without a database.

type memDashboardRepo struct {
	dashboards map[core.DashboardID]*dataset.Dashboard
}

func newMemDashboardRepo() *memDashboardRepo {
	return &memDashboardRepo{dashboards: make(map[core.DashboardID]*dataset.Dashboard)}
}

func (r *memDashboardRepo) Create(_ context.Context, d *dataset.Dashboard) error {
	copied := *d
	r.dashboards[d.ID] = &copied
	return nil
}

func (r *memDashboardRepo) GetByID(_ context.Context, id core.DashboardID) (*dataset.Dashboard, error) {
	d, ok := r.dashboards[id]
	if !ok {
		return nil, core.ErrDashboardNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *memDashboardRepo) ListByUser(_ context.Context, userID core.UserID, _, _ int) ([]*dataset.Dashboard, error) {
	var out []*dataset.Dashboard
	for _, d := range r.dashboards {
		if d.UserID == userID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memDashboardRepo) UpdateStatus(_ context.Context, id core.DashboardID, status dataset.DashboardStatus, errorMessage string) error {
	d, ok := r.dashboards[id]
	if !ok {
		return core.ErrDashboardNotFound
	}
	d.Status = status
	d.ErrorMessage = errorMessage
	return nil
}

func (r *memDashboardRepo) Delete(_ context.Context, id core.DashboardID) error {
	if _, ok := r.dashboards[id]; !ok {
		return core.ErrDashboardNotFound
	}
	delete(r.dashboards, id)
	return nil
}

type memDataRepo struct {
	datasets map[core.DashboardID]*dataset.Dataset
	mappings map[core.DashboardID]*dataset.ColumnMapping
}

func newMemDataRepo() *memDataRepo {
	return &memDataRepo{
		datasets: make(map[core.DashboardID]*dataset.Dataset),
		mappings: make(map[core.DashboardID]*dataset.ColumnMapping),
	}
}

func (r *memDataRepo) SaveDataset(_ context.Context, id core.DashboardID, ds *dataset.Dataset, mapping *dataset.ColumnMapping) error {
	r.datasets[id] = ds
	r.mappings[id] = mapping
	return nil
}

func (r *memDataRepo) GetDataset(_ context.Context, id core.DashboardID) (*dataset.Dataset, error) {
	ds, ok := r.datasets[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	return ds, nil
}

func (r *memDataRepo) GetColumnMapping(_ context.Context, id core.DashboardID) (*dataset.ColumnMapping, error) {
	m, ok := r.mappings[id]
	if !ok {
		return nil, core.ErrMappingNotFound
	}
	return m, nil
}

func (r *memDataRepo) SaveColumnMapping(_ context.Context, id core.DashboardID, mapping *dataset.ColumnMapping) error {
	if _, ok := r.mappings[id]; !ok {
		return core.ErrMappingNotFound
	}
	r.mappings[id] = mapping
	return nil
}

const sampleCSV = `produto,vendas,custo,estoque
Caneta Azul,100,40,50
Caderno,200,90,8
Café Especial,500,100,30
`

func newTestService(chat ports.ChatClient) (*DashboardService, *memDashboardRepo) {
	repo := newMemDashboardRepo()
	return NewDashboardService(repo, newMemDataRepo(), ingest.NewDataReader(0), chat), repo
}

func uploadSample(t *testing.T, svc *DashboardService) *dataset.Dashboard {
	t.Helper()
	dashboard, err := svc.CreateFromUpload(context.Background(), core.DefaultUserID, "Vendas", strings.NewReader(sampleCSV), "vendas.csv")
	require.NoError(t, err)
	return dashboard
}

func TestCreateFromUpload(t *testing.T) {
	svc, repo := newTestService(nil)

	dashboard := uploadSample(t, svc)
	assert.Equal(t, 3, dashboard.RecordCount)
	assert.Equal(t, 4, dashboard.ColumnCount)
	assert.Equal(t, dataset.StatusReady, dashboard.Status)
	assert.Greater(t, dashboard.Quality, 0)

	stored, err := repo.GetByID(context.Background(), dashboard.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.StatusReady, stored.Status)
}

func TestCreateFromUploadDefaultsTitle(t *testing.T) {
	svc, _ := newTestService(nil)

	dashboard, err := svc.CreateFromUpload(context.Background(), core.DefaultUserID, "", strings.NewReader(sampleCSV), "vendas.csv")
	require.NoError(t, err)
	assert.Equal(t, "vendas.csv", dashboard.Title)
}

func TestCreateFromUploadRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.CreateFromUpload(context.Background(), core.DefaultUserID, "Vazio", strings.NewReader("a,b\n"), "vazio.csv")
	assert.ErrorIs(t, err, core.ErrEmptyUpload)
}

func TestViewDerivesPanels(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	view, err := svc.View(context.Background(), dashboard.ID, nil)
	require.NoError(t, err)

	assert.Len(t, view.Rows, 3)
	assert.Equal(t, 800.0, view.KPIs.TotalRevenue)
	assert.Equal(t, 230.0, view.KPIs.TotalCost)
	assert.Equal(t, "Café Especial", view.KPIs.BestProduct)
	assert.Len(t, view.Chart, 3)
	assert.NotEmpty(t, view.Pie)
	assert.Equal(t, 1, view.Alerts.LowStockItems)
	assert.Contains(t, view.Summaries, "vendas")
	assert.Equal(t, 800.0, view.Summaries["vendas"].Sum)
}

func TestViewAppliesFilters(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	view, err := svc.View(context.Background(), dashboard.ID, dataset.FilterState{"produto": "ca"})
	require.NoError(t, err)
	require.Len(t, view.Rows, 3)

	view, err = svc.View(context.Background(), dashboard.ID, dataset.FilterState{"produto": "caneta"})
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, 100.0, view.KPIs.TotalRevenue)
}

func TestViewRejectsUnknownFilter(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	_, err := svc.View(context.Background(), dashboard.ID, dataset.FilterState{"inexistente": "x"})
	assert.ErrorIs(t, err, core.ErrUnknownFilter)
}

func TestSaveColumnMapping(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	mapping := dataset.NewColumnMapping([]string{"produto", "vendas", "custo", "estoque"})
	mapping.ColumnMappings["produto"] = "Produto"
	require.NoError(t, svc.SaveColumnMapping(context.Background(), dashboard.ID, &mapping))

	view, err := svc.View(context.Background(), dashboard.ID, nil)
	require.NoError(t, err)
	assert.Contains(t, view.DisplayColumns, "Produto")
}

func TestSaveColumnMappingRejectsUnknownColumn(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	mapping := dataset.NewColumnMapping([]string{"produto"})
	mapping.ColumnMappings["fantasma"] = "Fantasma"
	err := svc.SaveColumnMapping(context.Background(), dashboard.ID, &mapping)
	assert.ErrorIs(t, err, core.ErrColumnMismatch)
}

func TestAskLocalFallback(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	answer, err := svc.Ask(context.Background(), dashboard.ID, "quantos registros?")
	require.NoError(t, err)
	assert.Contains(t, answer, "3 registros")
}

func TestAskUsesChatClient(t *testing.T) {
	mock := &llm.MockChatClient{Response: "O melhor produto é o Café Especial."}
	svc, _ := newTestService(mock)
	dashboard := uploadSample(t, svc)

	answer, err := svc.Ask(context.Background(), dashboard.ID, "qual o melhor produto?")
	require.NoError(t, err)
	assert.Equal(t, "O melhor produto é o Café Especial.", answer)
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Dados do dashboard")
	assert.Contains(t, mock.Prompts[0], "qual o melhor produto?")
}

func TestAskFallsBackOnChatError(t *testing.T) {
	mock := &llm.MockChatClient{Error: assert.AnError}
	svc, _ := newTestService(mock)
	dashboard := uploadSample(t, svc)

	answer, err := svc.Ask(context.Background(), dashboard.ID, "quantos registros?")
	require.NoError(t, err)
	assert.Contains(t, answer, "3 registros")
}

func TestExportCSV(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), dashboard.ID, dataset.FilterState{"produto": "caneta"}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "produto,vendas,custo,estoque", lines[0])
	assert.Equal(t, "Caneta Azul,100,40,50", lines[1])
}

func TestDeleteDashboard(t *testing.T) {
	svc, _ := newTestService(nil)
	dashboard := uploadSample(t, svc)

	require.NoError(t, svc.DeleteDashboard(context.Background(), dashboard.ID))
	_, err := svc.GetDashboard(context.Background(), dashboard.ID)
	assert.ErrorIs(t, err, core.ErrDashboardNotFound)
}
