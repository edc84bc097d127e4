// Package report renders the workflow efficiency report as plain text.
// It consumes the metrics snapshot and the finding list; it never runs
// detection itself.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/bankflowai/bankflow/internal/types"
)

// Section headers for text output.
const (
	headerTitle      = "BankFlow Workflow Efficiency Report"
	headerSummary    = "Summary"
	headerByType     = "Tasks by Type"
	headerDuplicates = "Detected Duplicates"
	footerNote       = "BankFlow - Confidential and Internal Use Only"
)

// Write renders the full report to the writer. The filter narrows which
// duplicates appear in the duplicates table; summary numbers always cover
// the whole collection.
func Write(out io.Writer, tasks []types.Task, findings []types.DuplicatePair, m types.DashboardMetrics, filter types.ReportFilter, generatedAt time.Time) {
	fmt.Fprintf(out, "%s\n%s\n\n", headerTitle, strings.Repeat("=", len(headerTitle)))
	fmt.Fprintf(out, "Generated on: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	if line := describeFilter(filter); line != "" {
		fmt.Fprintf(out, "Filters: %s\n", line)
	}
	fmt.Fprintln(out)

	writeSummary(out, m)
	writeByType(out, m)
	writeDuplicates(out, tasks, FilterDuplicates(tasks, findings, filter))

	fmt.Fprintf(out, "%s\n", footerNote)
}

func writeSummary(out io.Writer, m types.DashboardMetrics) {
	fmt.Fprintf(out, "%s\n", headerSummary)
	fmt.Fprintf(out, "  Total Tasks:         %d\n", m.TotalTasks)
	fmt.Fprintf(out, "  Duplicates Detected: %d\n", m.DuplicatesDetected)
	fmt.Fprintf(out, "  Time Saved:          %d minutes (%s)\n", m.TimeSaved, FormatTimeSaved(m.TimeSaved))
	fmt.Fprintf(out, "  Efficiency Gain:     %d%%\n", m.EfficiencyGain)
	fmt.Fprintln(out)
}

func writeByType(out io.Writer, m types.DashboardMetrics) {
	fmt.Fprintf(out, "%s\n", headerByType)
	for _, taskType := range types.AllTaskTypes() {
		count := m.TasksByType[taskType]
		percentage := 0
		if m.TotalTasks > 0 {
			percentage = int(math.Round(float64(count) / float64(m.TotalTasks) * 100))
		}
		fmt.Fprintf(out, "  %-20s %4d  (%d%%)\n", displayType(taskType), count, percentage)
	}
	fmt.Fprintln(out)
}

func writeDuplicates(out io.Writer, tasks []types.Task, findings []types.DuplicatePair) {
	fmt.Fprintf(out, "%s\n", headerDuplicates)
	if len(findings) == 0 {
		fmt.Fprintf(out, "  No duplicates found matching the current filters.\n\n")
		return
	}

	byID := make(map[string]*types.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	fmt.Fprintf(out, "  %-10s %-20s %-14s %-10s %-8s %s\n",
		"ID", "Type", "Customer", "Similarity", "Action", "Time Saved")
	for _, finding := range findings {
		task, ok := byID[finding.DuplicateTaskID]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-10s %-20s %-14s %9d%% %-8s %s\n",
			shortID(task.ID),
			displayType(task.TaskType),
			task.CustomerID,
			int(math.Round(finding.SimilarityScore*100)),
			finding.SuggestedAction,
			FormatTimeSaved(finding.TimeSaved))
	}
	fmt.Fprintln(out)
}

// FilterDuplicates keeps the findings whose duplicate task matches the
// filter. A finding whose duplicate task no longer exists is dropped.
func FilterDuplicates(tasks []types.Task, findings []types.DuplicatePair, filter types.ReportFilter) []types.DuplicatePair {
	byID := make(map[string]*types.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	var filtered []types.DuplicatePair
	for _, finding := range findings {
		task, ok := byID[finding.DuplicateTaskID]
		if !ok {
			continue
		}
		if filter.TaskType != "" && task.TaskType != filter.TaskType {
			continue
		}
		if !filter.StartDate.IsZero() || !filter.EndDate.IsZero() {
			createdAt, ok := task.CreatedAt()
			if !ok {
				continue
			}
			if !filter.StartDate.IsZero() && createdAt.Before(filter.StartDate) {
				continue
			}
			if !filter.EndDate.IsZero() {
				// Include the entire end date
				if createdAt.After(filter.EndDate.Add(24*time.Hour - time.Nanosecond)) {
					continue
				}
			}
		}
		filtered = append(filtered, finding)
	}
	return filtered
}

// FormatTimeSaved formats a minute count for display, e.g. "90" becomes
// "1h 30m" and "1500" becomes "1d 1h".
func FormatTimeSaved(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	remainingMinutes := minutes % 60
	if hours < 24 {
		if remainingMinutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, remainingMinutes)
		}
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	remainingHours := hours % 24
	if remainingHours > 0 {
		return fmt.Sprintf("%dd %dh", days, remainingHours)
	}
	return fmt.Sprintf("%dd", days)
}

func describeFilter(filter types.ReportFilter) string {
	var parts []string
	switch {
	case !filter.StartDate.IsZero() && !filter.EndDate.IsZero():
		parts = append(parts, fmt.Sprintf("Date range: %s to %s",
			filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02")))
	case !filter.StartDate.IsZero():
		parts = append(parts, "From: "+filter.StartDate.Format("2006-01-02"))
	case !filter.EndDate.IsZero():
		parts = append(parts, "Until: "+filter.EndDate.Format("2006-01-02"))
	}
	if filter.TaskType != "" {
		parts = append(parts, "Task type: "+displayType(filter.TaskType))
	}
	return strings.Join(parts, ", ")
}

// displayType turns "loan-approval" into "loan approval"
func displayType(taskType types.TaskType) string {
	return strings.ReplaceAll(string(taskType), "-", " ")
}

// shortID truncates a task ID for table display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
