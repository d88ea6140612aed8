package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendas.csv")
	csv := "produto,vendas,custo\nCaneta,100,40\nCaderno,200,90\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	return path
}

func TestRunAnalyzeJSON(t *testing.T) {
	path := writeSample(t)

	var buf bytes.Buffer
	require.NoError(t, runAnalyze(&buf, path, "json", 0))

	var report analysisReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, path, report.File)
	assert.Equal(t, []string{"produto", "vendas", "custo"}, report.Columns)
	assert.Equal(t, 2, report.Insights.TotalRecords)
	assert.Equal(t, 300.0, report.KPIs.TotalRevenue)
	assert.Contains(t, report.Summaries, "vendas")
}

func TestRunAnalyzeYAML(t *testing.T) {
	path := writeSample(t)

	var buf bytes.Buffer
	require.NoError(t, runAnalyze(&buf, path, "yaml", 0))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "kpis")
	assert.Contains(t, decoded, "insights")
}

func TestRunAnalyzeMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := runAnalyze(&buf, filepath.Join(t.TempDir(), "nope.csv"), "json", 0)
	assert.Error(t, err)
}
