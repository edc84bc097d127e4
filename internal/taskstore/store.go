// Package taskstore owns the mutable task collection for the dashboard.
//
// The store is the only component that mutates tasks. The detection engine
// and metrics aggregator are pure functions; the store re-runs both on load
// and after every mutation, holding the latest findings and metrics as
// ephemeral state. All operations are serialized by a single mutex, so a
// detector run never races a concurrent edit.
package taskstore

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankflowai/bankflow/internal/deduplication"
	"github.com/bankflowai/bankflow/internal/metrics"
	"github.com/bankflowai/bankflow/internal/types"
)

// Store holds the task collection plus the derived findings and metrics
type Store struct {
	mu       sync.Mutex
	storage  Storage
	detector *deduplication.Detector
	now      func() time.Time

	tasks    []types.Task
	findings []types.DuplicatePair
	metrics  types.DashboardMetrics
}

// New creates a store over the given storage backend and detector.
func New(storage Storage, detector *deduplication.Detector) *Store {
	return &Store{
		storage:  storage,
		detector: detector,
		now:      time.Now,
	}
}

// Load rehydrates the task collection from storage, discarding malformed
// records, runs the one-time completionTime backfill, and recomputes
// findings and metrics. Call it once before using the store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	// Typed validation of rehydrated records: anything malformed is
	// discarded rather than trusted.
	tasks := make([]types.Task, 0, len(raw))
	for i := range raw {
		if err := raw[i].Validate(); err != nil {
			slog.Warn("discarding malformed task record", "taskId", raw[i].ID, "error", err)
			continue
		}
		tasks = append(tasks, raw[i])
	}

	migrated := backfillCompletionTime(tasks, s.now())
	dropped := len(raw) != len(tasks)

	s.tasks = tasks
	if migrated || dropped {
		if err := s.storage.Save(s.tasks); err != nil {
			return fmt.Errorf("failed to persist migrated tasks: %w", err)
		}
	}

	s.refreshLocked()
	return nil
}

// Seed replaces the entire collection with the given tasks, persists it,
// and recomputes findings and metrics. Tasks must already be valid.
func (s *Store) Seed(tasks []types.Task) error {
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return fmt.Errorf("invalid seed task %s: %w", tasks[i].ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append([]types.Task(nil), tasks...)
	if err := s.storage.Save(s.tasks); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.refreshLocked()
	return nil
}

// AddTask creates a new task from the given template. The ID and timestamp
// are assigned here and any values present on the template are ignored.
func (s *Store) AddTask(template types.Task) (types.Task, error) {
	task := template
	task.ID = uuid.NewString()
	task.Timestamp = s.now().UTC().Format(time.RFC3339)
	if task.Status == "" {
		task.Status = types.StatusPending
	}

	if err := task.Validate(); err != nil {
		return types.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task)
	if err := s.storage.Save(s.tasks); err != nil {
		return types.Task{}, fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.refreshLocked()
	return task, nil
}

// TaskUpdate describes a partial update to a task. Nil fields are left
// unchanged. The ID, customer and creation timestamp are immutable.
type TaskUpdate struct {
	Description *string
	Status      *types.TaskStatus
	Priority    *types.TaskPriority
	AssignedTo  *string
}

// UpdateTask applies a partial update to the task with the given ID.
// A task transitioning to completed gets its completionTime set once, from
// its age at completion; it is never recomputed afterwards.
func (s *Store) UpdateTask(id string, update TaskUpdate) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return types.Task{}, fmt.Errorf("task not found: %s", id)
	}

	task := s.tasks[idx]
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.AssignedTo != nil {
		task.AssignedTo = *update.AssignedTo
	}

	if task.Status == types.StatusCompleted && task.CompletionTime == nil {
		if createdAt, ok := task.CreatedAt(); ok {
			elapsed := int(math.Round(s.now().Sub(createdAt).Minutes()))
			if elapsed < 0 {
				elapsed = 0
			}
			task.CompletionTime = &elapsed
		}
	}

	if err := task.Validate(); err != nil {
		return types.Task{}, fmt.Errorf("invalid update for task %s: %w", id, err)
	}

	s.tasks[idx] = task
	if err := s.storage.Save(s.tasks); err != nil {
		return types.Task{}, fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.refreshLocked()
	return task, nil
}

// DeleteTask removes the task with the given ID
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return fmt.Errorf("task not found: %s", id)
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if err := s.storage.Save(s.tasks); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.refreshLocked()
	return nil
}

// GetTask returns the task with the given ID
func (s *Store) GetTask(id string) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return types.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return s.tasks[idx], nil
}

// Tasks returns a copy of the current task collection
func (s *Store) Tasks() []types.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Task(nil), s.tasks...)
}

// Findings returns a copy of the latest detector output
func (s *Store) Findings() []types.DuplicatePair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.DuplicatePair(nil), s.findings...)
}

// Metrics returns the latest dashboard snapshot
func (s *Store) Metrics() types.DashboardMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Refresh re-runs duplicate detection and metrics over the current
// collection. Mutating operations do this automatically; Refresh exists for
// callers that want fresh jitter without changing any task.
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
}

func (s *Store) refreshLocked() {
	// The detector receives an immutable snapshot: the slice is copied so
	// a later mutation cannot race the pure core.
	snapshot := append([]types.Task(nil), s.tasks...)
	s.findings = s.detector.DetectDuplicates(snapshot)
	s.metrics = metrics.Compute(snapshot, s.findings)
}

func (s *Store) indexOfLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
