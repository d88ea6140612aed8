package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

func row(pairs map[string]string) dataset.Row {
	r := dataset.Row{}
	for k, v := range pairs {
		r[k] = dataset.ParseValue(v)
	}
	return r
}

func TestDeriveAlertsEmpty(t *testing.T) {
	out := DeriveAlerts(nil, nil)
	assert.Equal(t, 0, out.TotalItems)
	assert.Empty(t, out.Alerts)
}

func TestDeriveAlertsLowStock(t *testing.T) {
	columns := []string{"produto", "estoque"}
	rows := []dataset.Row{
		row(map[string]string{"produto": "Caneta", "estoque": "4"}),
		row(map[string]string{"produto": "Caderno", "estoque": "50"}),
		row(map[string]string{"produto": "Lápis", "estoque": "9"}),
	}

	out := DeriveAlerts(columns, rows)
	assert.Equal(t, 2, out.LowStockItems)
	require.Len(t, out.Alerts, 2)
	assert.Equal(t, "2 produtos com estoque baixo", out.Alerts[0])
	assert.InDelta(t, 100.0/3.0, out.StockHealth, 0.001)
}

func TestDeriveAlertsMargins(t *testing.T) {
	columns := []string{"produto", "vendas", "custo"}
	rows := []dataset.Row{
		row(map[string]string{"produto": "Café Especial", "vendas": "100", "custo": "40"}), // 60%
		row(map[string]string{"produto": "Chá Verde", "vendas": "100", "custo": "50"}),     // 50%
		row(map[string]string{"produto": "Açúcar", "vendas": "100", "custo": "55"}),        // 45%
	}

	out := DeriveAlerts(columns, rows)
	assert.Equal(t, 3, out.HighMarginRows)
	assert.InDelta(t, (60.0+50.0+45.0)/3.0, out.AvgMargin, 0.001)
	assert.Equal(t, "Café Especial", out.BestPerformer)
	assert.Contains(t, out.Alerts, "Ótima performance geral dos produtos")
	assert.NotContains(t, out.Alerts, "Margem de lucro média abaixo do ideal")
	assert.Equal(t, 100.0, out.ProfitHealth)
}

func TestDeriveAlertsWeakMargin(t *testing.T) {
	columns := []string{"produto", "vendas", "custo"}
	rows := []dataset.Row{
		row(map[string]string{"produto": "A", "vendas": "100", "custo": "90"}),
		row(map[string]string{"produto": "B", "vendas": "100", "custo": "85"}),
	}

	out := DeriveAlerts(columns, rows)
	assert.Equal(t, 0, out.HighMarginRows)
	assert.Contains(t, out.Alerts, "Margem de lucro média abaixo do ideal")
}

func TestDeriveAlertsSkipsZeroSales(t *testing.T) {
	columns := []string{"produto", "vendas", "custo"}
	rows := []dataset.Row{
		row(map[string]string{"produto": "A", "vendas": "0", "custo": "10"}),
	}

	out := DeriveAlerts(columns, rows)
	assert.Equal(t, 0, out.HighMarginRows)
	assert.Zero(t, out.AvgMargin)
}

func TestDeriveAlertsTruncatesPerformer(t *testing.T) {
	long := strings.Repeat("x", 40)
	columns := []string{"nome", "receita", "custo"}
	rows := []dataset.Row{
		row(map[string]string{"nome": long, "receita": "100", "custo": "20"}),
	}

	out := DeriveAlerts(columns, rows)
	assert.Len(t, out.BestPerformer, performerLabelMax)
}

func TestBuildChatContextDeterministic(t *testing.T) {
	insights := dataset.DataInsights{
		TotalRecords:   3,
		NumericColumns: []string{"vendas", "custo"},
		Quality:        87,
	}
	columns := []string{"produto", "vendas", "custo"}

	a := BuildChatContext("Vendas Q1", columns, insights)
	b := BuildChatContext("Vendas Q1", columns, insights)
	assert.Equal(t, a, b)
	assert.Contains(t, a, `Dados do dashboard "Vendas Q1":`)
	assert.Contains(t, a, "Total de registros: 3")
	assert.Contains(t, a, "Colunas: produto, vendas, custo")
	assert.Contains(t, a, "Colunas numéricas: vendas, custo")
	assert.Contains(t, a, "Qualidade dos dados: 87/100")
}

func TestBuildChatContextNoData(t *testing.T) {
	out := BuildChatContext("Vazio", nil, dataset.DataInsights{})
	assert.Equal(t, "Nenhum dado disponível.", out)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("contexto", "qual o total?")
	assert.True(t, strings.HasPrefix(p, "contexto\nPergunta do usuário: qual o total?"))
}

func TestLocalAnswerTotals(t *testing.T) {
	columns := []string{"produto", "vendas"}
	rows := []dataset.Row{
		row(map[string]string{"produto": "A", "vendas": "100"}),
		row(map[string]string{"produto": "B", "vendas": "200"}),
	}
	insights := dataset.DataInsights{TotalRecords: 2, NumericColumns: []string{"vendas"}}

	out := LocalAnswer("Qual o total de vendas?", columns, rows, insights)
	assert.Contains(t, out, "vendas: 300.00")
}

func TestLocalAnswerColumns(t *testing.T) {
	insights := dataset.DataInsights{TotalRecords: 2}
	out := LocalAnswer("quais colunas existem?", []string{"a", "b"}, nil, insights)
	assert.Equal(t, "O dataset possui 2 colunas: a, b.", out)
}

func TestLocalAnswerNoData(t *testing.T) {
	out := LocalAnswer("total?", nil, nil, dataset.DataInsights{})
	assert.Equal(t, "Nenhum dado disponível para análise.", out)
}
