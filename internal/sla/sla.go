// Package sla holds the per-type, per-priority time budgets for banking
// tasks. The detector uses the warning threshold to estimate time saved by
// removing a duplicate; the aggregator uses it as the baseline task time.
package sla

import "github.com/bankflowai/bankflow/internal/types"

// Threshold is the time budget for one (task type, priority) combination.
// Values are in hours.
type Threshold struct {
	WarningHours float64
	OverdueHours float64
}

// WarningMinutes returns the warning threshold converted to minutes.
func (t Threshold) WarningMinutes() float64 {
	return t.WarningHours * 60
}

// thresholds maps every task type and priority to its time budget.
// These values are fixed business configuration, not tunables.
var thresholds = map[types.TaskType]map[types.TaskPriority]Threshold{
	types.TypeLoanApproval: {
		types.PriorityHigh:   {WarningHours: 2, OverdueHours: 4},
		types.PriorityMedium: {WarningHours: 4, OverdueHours: 8},
		types.PriorityLow:    {WarningHours: 12, OverdueHours: 24},
	},
	types.TypeKYCCheck: {
		types.PriorityHigh:   {WarningHours: 1, OverdueHours: 2},
		types.PriorityMedium: {WarningHours: 2, OverdueHours: 4},
		types.PriorityLow:    {WarningHours: 4, OverdueHours: 8},
	},
	types.TypeTransactionReview: {
		types.PriorityHigh:   {WarningHours: 0.5, OverdueHours: 1},
		types.PriorityMedium: {WarningHours: 1, OverdueHours: 2},
		types.PriorityLow:    {WarningHours: 2, OverdueHours: 4},
	},
	types.TypeAccountOpening: {
		types.PriorityHigh:   {WarningHours: 1, OverdueHours: 2},
		types.PriorityMedium: {WarningHours: 2, OverdueHours: 4},
		types.PriorityLow:    {WarningHours: 4, OverdueHours: 8},
	},
	types.TypeCreditCheck: {
		types.PriorityHigh:   {WarningHours: 2, OverdueHours: 4},
		types.PriorityMedium: {WarningHours: 4, OverdueHours: 8},
		types.PriorityLow:    {WarningHours: 12, OverdueHours: 24},
	},
}

// Lookup returns the threshold for the given task type and priority.
// An unset or unrecognized priority falls back to medium. Unknown task
// types return a zero threshold rather than failing.
func Lookup(taskType types.TaskType, priority types.TaskPriority) Threshold {
	byPriority, ok := thresholds[taskType]
	if !ok {
		return Threshold{}
	}
	if !priority.IsValid() {
		priority = types.PriorityMedium
	}
	return byPriority[priority]
}

// ForTask returns the threshold for a task, applying the medium-priority
// default when the task has no priority set.
func ForTask(task *types.Task) Threshold {
	return Lookup(task.TaskType, task.EffectivePriority())
}
