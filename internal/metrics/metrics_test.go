package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankflowai/bankflow/internal/types"
)

func task(id, customer string, taskType types.TaskType, status types.TaskStatus, createdAt time.Time) types.Task {
	return types.Task{
		ID:          id,
		CustomerID:  customer,
		TaskType:    taskType,
		Description: "task " + id,
		Status:      status,
		Timestamp:   createdAt.UTC().Format(time.RFC3339),
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	m := Compute(nil, nil)

	assert.Equal(t, 0, m.TotalTasks)
	assert.Equal(t, 0, m.DuplicatesDetected)
	assert.Equal(t, 0, m.TimeSaved)
	assert.Equal(t, 0, m.EfficiencyGain)
	assert.Empty(t, m.DuplicatesByDay)

	// Every category is present even with no tasks
	for _, tt := range types.AllTaskTypes() {
		count, ok := m.TasksByType[tt]
		assert.True(t, ok, "missing type bucket %s", tt)
		assert.Equal(t, 0, count)
	}
	for _, st := range types.AllTaskStatuses() {
		count, ok := m.TasksByStatus[st]
		assert.True(t, ok, "missing status bucket %s", st)
		assert.Equal(t, 0, count)
	}
}

func TestComputeTallies(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []types.Task{
		task("t1", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t2", "C1", types.TypeKYCCheck, types.StatusCompleted, base),
		task("t3", "C2", types.TypeLoanApproval, types.StatusInProgress, base),
	}

	m := Compute(tasks, nil)
	assert.Equal(t, 3, m.TotalTasks)
	assert.Equal(t, 2, m.TasksByType[types.TypeKYCCheck])
	assert.Equal(t, 1, m.TasksByType[types.TypeLoanApproval])
	assert.Equal(t, 0, m.TasksByType[types.TypeCreditCheck])
	assert.Equal(t, 1, m.TasksByStatus[types.StatusPending])
	assert.Equal(t, 1, m.TasksByStatus[types.StatusCompleted])
	assert.Equal(t, 0, m.TasksByStatus[types.StatusCancelled])
}

func TestComputeTimeSavedIsExactSum(t *testing.T) {
	findings := []types.DuplicatePair{
		{OriginalTaskID: "a", DuplicateTaskID: "b", SuggestedAction: types.ActionReview, TimeSaved: 111},
		{OriginalTaskID: "c", DuplicateTaskID: "d", SuggestedAction: types.ActionMerge, TimeSaved: 45},
		{OriginalTaskID: "e", DuplicateTaskID: "f", SuggestedAction: types.ActionDelete, TimeSaved: 0},
	}

	m := Compute(nil, findings)
	assert.Equal(t, 156, m.TimeSaved)
	assert.Equal(t, 3, m.DuplicatesDetected)
	// No tasks means no baseline time, so the gain must stay zero rather
	// than dividing by zero.
	assert.Equal(t, 0, m.EfficiencyGain)
}

func TestComputeEfficiencyGain(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Two kyc-check tasks at medium priority: baseline 2h each, 240
	// minutes total.
	tasks := []types.Task{
		task("t1", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t2", "C1", types.TypeKYCCheck, types.StatusPending, base),
	}
	findings := []types.DuplicatePair{
		{OriginalTaskID: "t1", DuplicateTaskID: "t2", SuggestedAction: types.ActionReview, TimeSaved: 120},
	}

	m := Compute(tasks, findings)
	assert.Equal(t, 50, m.EfficiencyGain)
}

func TestComputeEfficiencyGainRounds(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Baseline 3 * 120 = 360 minutes; 120/360 = 33.33% rounds to 33.
	tasks := []types.Task{
		task("t1", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t2", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t3", "C1", types.TypeKYCCheck, types.StatusPending, base),
	}
	findings := []types.DuplicatePair{
		{OriginalTaskID: "t1", DuplicateTaskID: "t2", SuggestedAction: types.ActionReview, TimeSaved: 120},
	}

	m := Compute(tasks, findings)
	assert.Equal(t, 33, m.EfficiencyGain)
}

func TestComputeDuplicatesByDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC)
	tasks := []types.Task{
		task("o1", "C1", types.TypeKYCCheck, types.StatusPending, day1),
		task("o2", "C1", types.TypeKYCCheck, types.StatusPending, day1.Add(10*time.Minute)),
		task("o3", "C2", types.TypeKYCCheck, types.StatusPending, day2),
		task("d1", "C1", types.TypeKYCCheck, types.StatusPending, day2),
		task("d2", "C1", types.TypeKYCCheck, types.StatusPending, day2),
		task("d3", "C2", types.TypeKYCCheck, types.StatusPending, day2),
	}
	findings := []types.DuplicatePair{
		{OriginalTaskID: "o3", DuplicateTaskID: "d3", SuggestedAction: types.ActionReview, TimeSaved: 1},
		{OriginalTaskID: "o1", DuplicateTaskID: "d1", SuggestedAction: types.ActionReview, TimeSaved: 1},
		{OriginalTaskID: "o2", DuplicateTaskID: "d2", SuggestedAction: types.ActionReview, TimeSaved: 1},
	}

	m := Compute(tasks, findings)
	require.Len(t, m.DuplicatesByDay, 2)
	// Sorted ascending by date, bucketed by the original task's UTC day
	assert.Equal(t, types.DayCount{Date: "2025-03-10", Count: 2}, m.DuplicatesByDay[0])
	assert.Equal(t, types.DayCount{Date: "2025-03-12", Count: 1}, m.DuplicatesByDay[1])
}

func TestComputeDuplicatesByDaySkipsUnresolvable(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	badTimestamp := task("bad", "C1", types.TypeKYCCheck, types.StatusPending, base)
	badTimestamp.Timestamp = "garbage"

	tasks := []types.Task{
		badTimestamp,
		task("d1", "C1", types.TypeKYCCheck, types.StatusPending, base),
	}
	findings := []types.DuplicatePair{
		// Original's timestamp does not parse
		{OriginalTaskID: "bad", DuplicateTaskID: "d1", SuggestedAction: types.ActionReview, TimeSaved: 10},
		// Original task does not exist at all
		{OriginalTaskID: "ghost", DuplicateTaskID: "d1", SuggestedAction: types.ActionReview, TimeSaved: 10},
	}

	m := Compute(tasks, findings)
	assert.Empty(t, m.DuplicatesByDay)
	// The findings still count toward totals
	assert.Equal(t, 2, m.DuplicatesDetected)
	assert.Equal(t, 20, m.TimeSaved)
}

func TestComputeIdempotent(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []types.Task{
		task("t1", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t2", "C1", types.TypeLoanApproval, types.StatusCompleted, base),
	}
	findings := []types.DuplicatePair{
		{OriginalTaskID: "t1", DuplicateTaskID: "t2", SuggestedAction: types.ActionMerge, TimeSaved: 77},
	}

	first := Compute(tasks, findings)
	second := Compute(tasks, findings)
	assert.Equal(t, first, second)
}

func TestInsightsByType(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []types.Task{
		task("t1", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t2", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("t3", "C2", types.TypeLoanApproval, types.StatusPending, base),
	}
	findings := []types.DuplicatePair{
		{OriginalTaskID: "t1", DuplicateTaskID: "t2", SuggestedAction: types.ActionDelete, TimeSaved: 115},
	}

	insights := InsightsByType(tasks, findings)
	assert.Equal(t, types.TypeInsight{Count: 2, Duplicates: 1, TimeSaved: 115}, insights[types.TypeKYCCheck])
	assert.Equal(t, types.TypeInsight{Count: 1}, insights[types.TypeLoanApproval])
	assert.Equal(t, types.TypeInsight{}, insights[types.TypeCreditCheck])
}

func TestOriginalTaskDetails(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []types.Task{
		task("orig", "C1", types.TypeKYCCheck, types.StatusPending, base),
		task("dup", "C1", types.TypeKYCCheck, types.StatusPending, base),
	}
	findings := []types.DuplicatePair{
		{OriginalTaskID: "orig", DuplicateTaskID: "dup", SuggestedAction: types.ActionReview, TimeSaved: 5},
	}

	original := OriginalTaskDetails(tasks, findings, "dup")
	require.NotNil(t, original)
	assert.Equal(t, "orig", original.ID)

	assert.Nil(t, OriginalTaskDetails(tasks, findings, "unknown"))
	assert.Nil(t, OriginalTaskDetails(nil, findings, "dup"))
}
