package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/EducAI25/intellidash-insights-ai/adapters/ingest"
	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
	"github.com/EducAI25/intellidash-insights-ai/internal/insight"
	"github.com/EducAI25/intellidash-insights-ai/internal/kpi"
	"github.com/EducAI25/intellidash-insights-ai/internal/profile"
	"github.com/EducAI25/intellidash-insights-ai/internal/stats"
)

// analysisReport is the machine-readable output of `insightctl analyze`
type analysisReport struct {
	File      string                             `json:"file" yaml:"file"`
	Columns   []string                           `json:"columns" yaml:"columns"`
	Profiles  []dataset.ColumnProfile            `json:"profiles" yaml:"profiles"`
	Insights  dataset.DataInsights               `json:"insights" yaml:"insights"`
	KPIs      dataset.KPIReport                  `json:"kpis" yaml:"kpis"`
	Alerts    dataset.InsightAlerts              `json:"alerts" yaml:"alerts"`
	Summaries map[string]*dataset.NumericSummary `json:"summaries" yaml:"summaries"`
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Profile a spreadsheet and print the derived dashboard data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := viper.GetString("format")
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q, want json or yaml", format)
			}
			return runAnalyze(cmd.OutOrStdout(), args[0], format, viper.GetInt("max-rows"))
		},
	}

	cmd.Flags().StringP("format", "f", "json", "output format (json or yaml)")
	cmd.Flags().Int("max-rows", 0, "reject files with more data rows (0 = unlimited)")
	for _, name := range []string{"format", "max-rows"} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return cmd
}

func runAnalyze(out io.Writer, path, format string, maxRows int) error {
	ds, err := ingest.NewDataReader(maxRows).ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	profiler := profile.New()
	insights := profiler.Profile(*ds)

	summaries := make(map[string]*dataset.NumericSummary)
	measurable := append(append([]string{}, insights.NumericColumns...), insights.CurrencyColumns...)
	for _, column := range measurable {
		values := stats.NumericValues(ds.ColumnValues(column))
		if summary := stats.Summarize(values); summary != nil {
			summaries[column] = summary
		}
	}

	report := analysisReport{
		File:      path,
		Columns:   ds.Columns,
		Profiles:  profiler.ProfileColumns(*ds),
		Insights:  insights,
		KPIs:      kpi.DeriveKPIs(ds.Rows),
		Alerts:    insight.DeriveAlerts(ds.Columns, ds.Rows),
		Summaries: summaries,
	}

	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(report)
	default:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
}
