package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankflowai/bankflow/internal/report"
	"github.com/bankflowai/bankflow/internal/types"
)

var (
	reportStart  string
	reportEnd    string
	reportType   string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the workflow efficiency report",
	Long: `Render the workflow efficiency report as text: summary metrics, the
tasks-by-type breakdown, and the duplicates table, optionally filtered
by date range and task type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter()
		if err != nil {
			return err
		}

		out := os.Stdout
		if reportOutput != "" {
			f, err := os.Create(reportOutput)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer f.Close()
			out = f
		}

		report.Write(out, store.Tasks(), store.Findings(), store.Metrics(), filter, time.Now())
		if reportOutput != "" {
			fmt.Printf("Report written to %s\n", reportOutput)
		}
		return nil
	},
}

func buildFilter() (types.ReportFilter, error) {
	var filter types.ReportFilter

	if reportStart != "" {
		start, err := time.Parse("2006-01-02", reportStart)
		if err != nil {
			return filter, fmt.Errorf("invalid --start date %q (want YYYY-MM-DD)", reportStart)
		}
		filter.StartDate = start
	}
	if reportEnd != "" {
		end, err := time.Parse("2006-01-02", reportEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid --end date %q (want YYYY-MM-DD)", reportEnd)
		}
		filter.EndDate = end
	}
	if reportType != "" {
		taskType := types.TaskType(reportType)
		if !taskType.IsValid() {
			return filter, fmt.Errorf("invalid --type %q", reportType)
		}
		filter.TaskType = taskType
	}
	return filter, nil
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "include duplicates created on or after this date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "include duplicates created on or before this date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportType, "type", "", "restrict to one task type")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
