package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "insightctl",
		Short: "Analyze spreadsheets from the command line",
		Long: `insightctl profiles a CSV or XLSX file the same way the dashboard
does: column classification, descriptive statistics, KPIs and alerts.`,
		SilenceUsage: true,
	}

	viper.SetEnvPrefix("INSIGHTCTL")
	viper.AutomaticEnv()

	root.AddCommand(newAnalyzeCmd())
	return root
}
