package main

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bankflowai/bankflow/internal/report"
	"github.com/bankflowai/bankflow/internal/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show detected duplicate tasks",
	Long: `Run duplicate detection over the current task collection and print
one finding per flagged pair, with the suggested disposition for each.`,
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("\n%s\n\n", cyan("=== Detected Duplicates ==="))

		findings := store.Findings()
		if len(findings) == 0 {
			fmt.Println("No duplicates detected.")
			return
		}

		tasks := store.Tasks()
		byID := make(map[string]types.Task, len(tasks))
		for _, task := range tasks {
			byID[task.ID] = task
		}

		for _, finding := range findings {
			duplicate, ok := byID[finding.DuplicateTaskID]
			if !ok {
				continue
			}
			fmt.Printf("%s %s -> %s\n",
				actionColor(finding.SuggestedAction),
				shortID(finding.OriginalTaskID),
				shortID(finding.DuplicateTaskID))
			fmt.Printf("    Customer:   %s\n", duplicate.CustomerID)
			fmt.Printf("    Type:       %s\n", duplicate.TaskType)
			fmt.Printf("    Reason:     %s\n", finding.Reason)
			fmt.Printf("    Similarity: %d%%\n", int(math.Round(finding.SimilarityScore*100)))
			fmt.Printf("    Time saved: %s\n", report.FormatTimeSaved(finding.TimeSaved))
			fmt.Println()
		}

		fmt.Printf("Total: %d duplicate pairs\n", len(findings))
	},
}

func actionColor(action types.SuggestedAction) string {
	switch action {
	case types.ActionDelete:
		return color.RedString("[delete]")
	case types.ActionMerge:
		return color.YellowString("[merge]")
	default:
		return color.CyanString("[review]")
	}
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
