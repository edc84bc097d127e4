package types

import (
	"fmt"
	"time"
)

// Task represents a unit of banking workflow tracked for completion.
//
// Timestamp is stored as the raw string the task was created with. Tasks
// whose timestamp does not parse are still counted in tallies but are
// excluded from any duration-based calculation.
type Task struct {
	ID             string       `json:"id"`
	CustomerID     string       `json:"customerId"`
	TaskType       TaskType     `json:"taskType"`
	Description    string       `json:"description"`
	Status         TaskStatus   `json:"status"`
	Timestamp      string       `json:"timestamp"`
	Priority       TaskPriority `json:"priority,omitempty"`
	AssignedTo     string       `json:"assignedTo,omitempty"`
	CompletionTime *int         `json:"completionTime,omitempty"` // minutes
}

// Validate checks if the task has valid field values
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.CustomerID == "" {
		return fmt.Errorf("customerId is required")
	}
	if !t.TaskType.IsValid() {
		return fmt.Errorf("invalid task type: %s", t.TaskType)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	if t.Timestamp == "" {
		return fmt.Errorf("timestamp is required")
	}
	if t.CompletionTime != nil && *t.CompletionTime < 0 {
		return fmt.Errorf("completionTime cannot be negative (got %d)", *t.CompletionTime)
	}
	return nil
}

// CreatedAt parses the task's timestamp. The boolean is false when the
// timestamp is missing or unparseable.
func (t *Task) CreatedAt() (time.Time, bool) {
	if t.Timestamp == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, t.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// EffectivePriority returns the task's priority, defaulting to medium when
// the priority is unset or unrecognized.
func (t *Task) EffectivePriority() TaskPriority {
	if t.Priority.IsValid() {
		return t.Priority
	}
	return PriorityMedium
}

// TaskType categorizes the kind of banking work
type TaskType string

const (
	TypeLoanApproval      TaskType = "loan-approval"
	TypeKYCCheck          TaskType = "kyc-check"
	TypeTransactionReview TaskType = "transaction-review"
	TypeAccountOpening    TaskType = "account-opening"
	TypeCreditCheck       TaskType = "credit-check"
)

// AllTaskTypes lists every task type in display order.
func AllTaskTypes() []TaskType {
	return []TaskType{
		TypeLoanApproval,
		TypeKYCCheck,
		TypeTransactionReview,
		TypeAccountOpening,
		TypeCreditCheck,
	}
}

// IsValid checks if the task type value is valid
func (t TaskType) IsValid() bool {
	switch t {
	case TypeLoanApproval, TypeKYCCheck, TypeTransactionReview, TypeAccountOpening, TypeCreditCheck:
		return true
	}
	return false
}

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// AllTaskStatuses lists every status in display order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

// IsValid checks if the status value is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority value is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// SuggestedAction is the recommended disposition for a duplicate task
type SuggestedAction string

const (
	ActionDelete SuggestedAction = "delete"
	ActionMerge  SuggestedAction = "merge"
	ActionReview SuggestedAction = "review"
)

// IsValid checks if the suggested action value is valid
func (a SuggestedAction) IsValid() bool {
	switch a {
	case ActionDelete, ActionMerge, ActionReview:
		return true
	}
	return false
}

// DuplicatePair is the detector's judgment that two tasks belonging to the
// same customer are likely redundant. The earlier-timestamped task is the
// original; the later one is the duplicate.
type DuplicatePair struct {
	// OriginalTaskID is the earlier of the two tasks
	OriginalTaskID string `json:"originalTaskId"`

	// DuplicateTaskID is the later task, the one suggested for disposition
	DuplicateTaskID string `json:"duplicateTaskId"`

	// Reason is a human-readable classification of why the pair was flagged
	Reason string `json:"reason"`

	// SimilarityScore is the normalized description similarity in [0, 1]
	SimilarityScore float64 `json:"similarityScore"`

	// SuggestedAction is derived purely from SimilarityScore thresholds
	SuggestedAction SuggestedAction `json:"suggestedAction"`

	// TimeSaved is the estimated minutes saved by eliminating the duplicate
	TimeSaved int `json:"timeSaved"`
}

// Validate checks if the duplicate pair has valid values
func (d *DuplicatePair) Validate() error {
	if d.OriginalTaskID == "" {
		return fmt.Errorf("originalTaskId is required")
	}
	if d.DuplicateTaskID == "" {
		return fmt.Errorf("duplicateTaskId is required")
	}
	if d.OriginalTaskID == d.DuplicateTaskID {
		return fmt.Errorf("originalTaskId and duplicateTaskId must differ (got %s)", d.OriginalTaskID)
	}
	if d.SimilarityScore < 0.0 || d.SimilarityScore > 1.0 {
		return fmt.Errorf("similarityScore must be between 0.0 and 1.0 (got %.2f)", d.SimilarityScore)
	}
	if !d.SuggestedAction.IsValid() {
		return fmt.Errorf("invalid suggested action: %s", d.SuggestedAction)
	}
	if d.TimeSaved < 0 {
		return fmt.Errorf("timeSaved cannot be negative (got %d)", d.TimeSaved)
	}
	return nil
}

// DayCount is one bucket of the duplicates-per-day histogram
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

// DashboardMetrics is a derived snapshot rebuilt from the current task
// collection and finding set. It has no independent lifecycle: it is a pure
// function of (tasks, findings) and is never persisted.
type DashboardMetrics struct {
	TotalTasks         int                `json:"totalTasks"`
	DuplicatesDetected int                `json:"duplicatesDetected"`
	TimeSaved          int                `json:"timeSaved"`      // minutes
	EfficiencyGain     int                `json:"efficiencyGain"` // percentage
	TasksByType        map[TaskType]int   `json:"tasksByType"`
	TasksByStatus      map[TaskStatus]int `json:"tasksByStatus"`
	DuplicatesByDay    []DayCount         `json:"duplicatesByDay"`
}

// TypeInsight summarizes detector output for one task type
type TypeInsight struct {
	Count      int `json:"count"`
	Duplicates int `json:"duplicates"`
	TimeSaved  int `json:"timeSaved"` // minutes
}

// ReportFilter narrows which duplicates a report includes
type ReportFilter struct {
	// StartDate and EndDate bound the duplicate task's creation time
	// (inclusive; EndDate covers the whole day). Zero values mean unbounded.
	StartDate time.Time
	EndDate   time.Time

	// TaskType restricts to one task type; empty means all types
	TaskType TaskType
}
