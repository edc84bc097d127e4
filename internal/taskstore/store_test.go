package taskstore

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankflowai/bankflow/internal/deduplication"
	"github.com/bankflowai/bankflow/internal/types"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, initial []types.Task) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage(initial)
	store := New(storage, deduplication.New(deduplication.DefaultConfig(), rand.New(rand.NewSource(1))))
	store.now = func() time.Time { return fixedNow }
	require.NoError(t, store.Load())
	return store, storage
}

func testTask(id, customer string, taskType types.TaskType, description string, createdAt time.Time) types.Task {
	return types.Task{
		ID:          id,
		CustomerID:  customer,
		TaskType:    taskType,
		Description: description,
		Status:      types.StatusPending,
		Timestamp:   createdAt.UTC().Format(time.RFC3339),
	}
}

func TestLoadEmptyStorage(t *testing.T) {
	store, _ := newTestStore(t, nil)

	assert.Empty(t, store.Tasks())
	assert.Empty(t, store.Findings())
	assert.Equal(t, 0, store.Metrics().TotalTasks)
}

func TestLoadDiscardsMalformedRecords(t *testing.T) {
	good := testTask("good", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow.Add(-time.Hour))
	missingCustomer := testTask("bad1", "", types.TypeKYCCheck, "x", fixedNow)
	badType := testTask("bad2", "C2", "wire-fraud", "x", fixedNow)

	store, storage := newTestStore(t, []types.Task{good, missingCustomer, badType})

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "good", tasks[0].ID)

	// The cleaned collection is persisted back
	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestLoadBackfillsCompletionTime(t *testing.T) {
	completed := testTask("done", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow.Add(-90*time.Minute))
	completed.Status = types.StatusCompleted

	store, storage := newTestStore(t, []types.Task{completed})

	task, err := store.GetTask("done")
	require.NoError(t, err)
	require.NotNil(t, task.CompletionTime)
	assert.Equal(t, 90, *task.CompletionTime)

	// Idempotent: loading again must not recompute
	store2 := New(storage, deduplication.New(deduplication.DefaultConfig(), rand.New(rand.NewSource(1))))
	store2.now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	require.NoError(t, store2.Load())
	task2, err := store2.GetTask("done")
	require.NoError(t, err)
	require.NotNil(t, task2.CompletionTime)
	assert.Equal(t, 90, *task2.CompletionTime)
}

func TestLoadSkipsBackfillForBadTimestamp(t *testing.T) {
	completed := testTask("done", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow)
	completed.Status = types.StatusCompleted
	completed.Timestamp = "yesterday-ish"

	store, _ := newTestStore(t, []types.Task{completed})

	task, err := store.GetTask("done")
	require.NoError(t, err)
	assert.Nil(t, task.CompletionTime)
}

func TestAddTaskAssignsIDAndTimestamp(t *testing.T) {
	store, _ := newTestStore(t, nil)

	task, err := store.AddTask(types.Task{
		CustomerID:  "HSBC00000001",
		TaskType:    types.TypeLoanApproval,
		Description: "Review loan application",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, fixedNow.Format(time.RFC3339), task.Timestamp)
	assert.Equal(t, types.StatusPending, task.Status)

	assert.Equal(t, 1, store.Metrics().TotalTasks)
}

func TestAddTaskRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t, nil)

	_, err := store.AddTask(types.Task{TaskType: types.TypeLoanApproval})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customerId is required")
	assert.Empty(t, store.Tasks())
}

func TestMutationsRefreshFindings(t *testing.T) {
	first := testTask("t1", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow.Add(-time.Hour))
	store, _ := newTestStore(t, []types.Task{first})
	assert.Empty(t, store.Findings())

	// Adding a same-type task for the same customer within the window
	// triggers a finding.
	added, err := store.AddTask(types.Task{
		CustomerID:  "C1",
		TaskType:    types.TypeKYCCheck,
		Description: "Review customer identification documents",
	})
	require.NoError(t, err)

	findings := store.Findings()
	require.Len(t, findings, 1)
	assert.Equal(t, "t1", findings[0].OriginalTaskID)
	assert.Equal(t, added.ID, findings[0].DuplicateTaskID)
	assert.Equal(t, 1, store.Metrics().DuplicatesDetected)

	// Deleting the duplicate clears the finding
	require.NoError(t, store.DeleteTask(added.ID))
	assert.Empty(t, store.Findings())
	assert.Equal(t, 0, store.Metrics().DuplicatesDetected)
}

func TestUpdateTaskSetsCompletionTimeOnce(t *testing.T) {
	created := testTask("t1", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow.Add(-2*time.Hour))
	store, _ := newTestStore(t, []types.Task{created})

	completed := types.StatusCompleted
	task, err := store.UpdateTask("t1", TaskUpdate{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, task.CompletionTime)
	assert.Equal(t, 120, *task.CompletionTime)

	// Re-completing later must not recompute
	pending := types.StatusPending
	_, err = store.UpdateTask("t1", TaskUpdate{Status: &pending})
	require.NoError(t, err)
	store.now = func() time.Time { return fixedNow.Add(10 * time.Hour) }
	task, err = store.UpdateTask("t1", TaskUpdate{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, 120, *task.CompletionTime)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	created := testTask("t1", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow.Add(-time.Hour))
	created.AssignedTo = "John Smith"
	store, _ := newTestStore(t, []types.Task{created})

	newDescription := "Finalize KYC compliance check"
	task, err := store.UpdateTask("t1", TaskUpdate{Description: &newDescription})
	require.NoError(t, err)
	assert.Equal(t, newDescription, task.Description)
	// Untouched fields survive
	assert.Equal(t, "John Smith", task.AssignedTo)
	assert.Equal(t, types.StatusPending, task.Status)
}

func TestUpdateTaskRejectsInvalid(t *testing.T) {
	created := testTask("t1", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow)
	store, _ := newTestStore(t, []types.Task{created})

	bogus := types.TaskStatus("paused")
	_, err := store.UpdateTask("t1", TaskUpdate{Status: &bogus})
	require.Error(t, err)

	// The stored task is unchanged
	task, err := store.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, task.Status)
}

func TestUpdateAndDeleteMissingTask(t *testing.T) {
	store, _ := newTestStore(t, nil)

	_, err := store.UpdateTask("nope", TaskUpdate{})
	assert.ErrorContains(t, err, "task not found")
	assert.ErrorContains(t, store.DeleteTask("nope"), "task not found")
}

func TestSeedReplacesCollection(t *testing.T) {
	old := testTask("old", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow)
	store, storage := newTestStore(t, []types.Task{old})

	replacement := []types.Task{
		testTask("n1", "C2", types.TypeLoanApproval, "Review loan application", fixedNow.Add(-time.Hour)),
		testTask("n2", "C2", types.TypeLoanApproval, "Review loan application", fixedNow),
	}
	require.NoError(t, store.Seed(replacement))

	assert.Len(t, store.Tasks(), 2)
	assert.Len(t, store.Findings(), 1)

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestTasksReturnsCopy(t *testing.T) {
	created := testTask("t1", "C1", types.TypeKYCCheck, "Complete KYC verification", fixedNow)
	store, _ := newTestStore(t, []types.Task{created})

	tasks := store.Tasks()
	tasks[0].Description = "mutated"

	task, err := store.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, "Complete KYC verification", task.Description)
}
