package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bankflowai/bankflow/internal/metrics"
	"github.com/bankflowai/bankflow/internal/report"
	"github.com/bankflowai/bankflow/internal/types"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the dashboard metrics snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		m := store.Metrics()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== BankFlow Dashboard ==="))
		fmt.Printf("Total tasks:         %d\n", m.TotalTasks)
		fmt.Printf("Duplicates detected: %d\n", m.DuplicatesDetected)
		fmt.Printf("Time saved:          %s\n", report.FormatTimeSaved(m.TimeSaved))
		fmt.Printf("Efficiency gain:     %d%%\n", m.EfficiencyGain)

		fmt.Printf("\n%s\n", yellow("Tasks by type:"))
		insights := metrics.InsightsByType(store.Tasks(), store.Findings())
		for _, taskType := range types.AllTaskTypes() {
			insight := insights[taskType]
			fmt.Printf("  %-20s %4d tasks, %d duplicates, %s saved\n",
				taskType, insight.Count, insight.Duplicates, report.FormatTimeSaved(insight.TimeSaved))
		}

		fmt.Printf("\n%s\n", yellow("Tasks by status:"))
		for _, status := range types.AllTaskStatuses() {
			fmt.Printf("  %-12s %4d\n", status, m.TasksByStatus[status])
		}

		if len(m.DuplicatesByDay) > 0 {
			fmt.Printf("\n%s\n", yellow("Duplicates by day:"))
			for _, day := range m.DuplicatesByDay {
				fmt.Printf("  %s  %d\n", day.Date, day.Count)
			}
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
