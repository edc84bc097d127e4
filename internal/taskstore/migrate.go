package taskstore

import (
	"log/slog"
	"math"
	"time"

	"github.com/bankflowai/bankflow/internal/types"
)

// backfillCompletionTime is a one-shot upgrade over persisted state: legacy
// completed tasks were stored without a completionTime, so we derive one
// from the task's age at migration time. Tasks whose timestamps do not
// parse are left untouched.
//
// The migration is idempotent: a task with a completionTime already set is
// never recomputed.
func backfillCompletionTime(tasks []types.Task, now time.Time) bool {
	updated := false
	for i := range tasks {
		task := &tasks[i]
		if task.Status != types.StatusCompleted || task.CompletionTime != nil {
			continue
		}
		createdAt, ok := task.CreatedAt()
		if !ok {
			slog.Warn("skipping completionTime backfill for task with unparseable timestamp",
				"taskId", task.ID, "timestamp", task.Timestamp)
			continue
		}
		minutes := int(math.Round(now.Sub(createdAt).Minutes()))
		if minutes < 0 {
			minutes = 0
		}
		task.CompletionTime = &minutes
		updated = true
	}
	return updated
}
