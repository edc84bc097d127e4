// Package metrics folds a task collection and a finding set into the
// dashboard snapshot. Everything here is a pure function: calling it twice
// with the same inputs yields identical output, and nothing is persisted.
package metrics

import (
	"math"
	"sort"

	"github.com/bankflowai/bankflow/internal/sla"
	"github.com/bankflowai/bankflow/internal/types"
)

// Compute rebuilds the dashboard metrics from the current task collection
// and finding set.
//
// Efficiency gain is the time saved by deduplication as a percentage of the
// theoretical total task time, where each task's baseline is its SLA warning
// threshold. Empty inputs produce a zeroed snapshot, never an error.
//
// Duplicates are bucketed by the original task's calendar date in UTC.
// Findings whose original task is missing or has an unparseable timestamp
// are left out of the histogram.
func Compute(tasks []types.Task, findings []types.DuplicatePair) types.DashboardMetrics {
	tasksByType := make(map[types.TaskType]int, len(types.AllTaskTypes()))
	for _, tt := range types.AllTaskTypes() {
		tasksByType[tt] = 0
	}
	tasksByStatus := make(map[types.TaskStatus]int, len(types.AllTaskStatuses()))
	for _, st := range types.AllTaskStatuses() {
		tasksByStatus[st] = 0
	}

	totalTaskTime := 0.0
	for i := range tasks {
		task := &tasks[i]
		if task.TaskType.IsValid() {
			tasksByType[task.TaskType]++
		}
		if task.Status.IsValid() {
			tasksByStatus[task.Status]++
		}
		totalTaskTime += sla.ForTask(task).WarningMinutes()
	}

	timeSaved := 0
	for _, finding := range findings {
		timeSaved += finding.TimeSaved
	}

	efficiencyGain := 0
	if totalTaskTime > 0 {
		efficiencyGain = int(math.Round(float64(timeSaved) / totalTaskTime * 100))
	}

	return types.DashboardMetrics{
		TotalTasks:         len(tasks),
		DuplicatesDetected: len(findings),
		TimeSaved:          timeSaved,
		EfficiencyGain:     efficiencyGain,
		TasksByType:        tasksByType,
		TasksByStatus:      tasksByStatus,
		DuplicatesByDay:    duplicatesByDay(tasks, findings),
	}
}

// duplicatesByDay counts findings per UTC calendar date of the original
// task, sorted ascending by date.
func duplicatesByDay(tasks []types.Task, findings []types.DuplicatePair) []types.DayCount {
	byID := indexByID(tasks)

	counts := make(map[string]int)
	for _, finding := range findings {
		original, ok := byID[finding.OriginalTaskID]
		if !ok {
			continue
		}
		createdAt, ok := original.CreatedAt()
		if !ok {
			continue
		}
		counts[createdAt.UTC().Format("2006-01-02")]++
	}

	result := make([]types.DayCount, 0, len(counts))
	for date, count := range counts {
		result = append(result, types.DayCount{Date: date, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// InsightsByType breaks detector output down per task type. Counts cover
// every task; duplicate counts and time saved are attributed to the type of
// the duplicate task in each finding.
func InsightsByType(tasks []types.Task, findings []types.DuplicatePair) map[types.TaskType]types.TypeInsight {
	insights := make(map[types.TaskType]types.TypeInsight, len(types.AllTaskTypes()))
	for _, tt := range types.AllTaskTypes() {
		insights[tt] = types.TypeInsight{}
	}

	for i := range tasks {
		if !tasks[i].TaskType.IsValid() {
			continue
		}
		insight := insights[tasks[i].TaskType]
		insight.Count++
		insights[tasks[i].TaskType] = insight
	}

	byID := indexByID(tasks)
	for _, finding := range findings {
		duplicate, ok := byID[finding.DuplicateTaskID]
		if !ok || !duplicate.TaskType.IsValid() {
			continue
		}
		insight := insights[duplicate.TaskType]
		insight.Duplicates++
		insight.TimeSaved += finding.TimeSaved
		insights[duplicate.TaskType] = insight
	}

	return insights
}

// OriginalTaskDetails returns the original task behind a flagged duplicate,
// or nil if the duplicate has no finding or the original no longer exists.
func OriginalTaskDetails(tasks []types.Task, findings []types.DuplicatePair, duplicateID string) *types.Task {
	for _, finding := range findings {
		if finding.DuplicateTaskID != duplicateID {
			continue
		}
		if original, ok := indexByID(tasks)[finding.OriginalTaskID]; ok {
			return original
		}
		return nil
	}
	return nil
}

func indexByID(tasks []types.Task) map[string]*types.Task {
	byID := make(map[string]*types.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}
	return byID
}
