package deduplication

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/bankflowai/bankflow/internal/sla"
	"github.com/bankflowai/bankflow/internal/types"
)

// Detector flags likely duplicate tasks. It holds no state across runs
// beyond its configuration and random source, so a single Detector can be
// reused for every detection pass.
type Detector struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Detector with the given configuration. If rng is nil, a
// time-seeded source is used; pass a seeded source for reproducible output.
func New(cfg Config, rng *rand.Rand) *Detector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Detector{cfg: cfg, rng: rng}
}

// Decision is the classification of one task pair as a duplicate
type Decision struct {
	// Reason is a human-readable explanation of why the pair was flagged
	Reason string

	// Similarity is the raw description similarity, recorded regardless of
	// which rule triggered the classification
	Similarity float64

	// Action is the suggested disposition for the later task
	Action types.SuggestedAction
}

// ClassifyPair decides whether two same-customer tasks are duplicates.
// The boolean is false when the pair is not a duplicate.
//
// Precondition: both tasks belong to the same customer. This is the
// caller's responsibility and is not re-validated here.
func (d *Detector) ClassifyPair(task1, task2 *types.Task) (Decision, bool) {
	sameType := task1.TaskType == task2.TaskType
	withinWindow := d.withinWindow(task1, task2)
	similarity := Similarity(task1.Description, task2.Description)

	isDuplicate := (sameType && withinWindow) || similarity > d.cfg.SimilarityThreshold
	if !isDuplicate {
		return Decision{}, false
	}

	// The type/time rule takes priority for the reason string, but the
	// stored similarity is always the raw computed value.
	var reason string
	if sameType && withinWindow {
		reason = fmt.Sprintf("Same task type for customer within %d hours",
			int(d.cfg.DuplicateWindow.Hours()))
	} else {
		reason = fmt.Sprintf("Very similar task description (%d%% match)",
			int(math.Round(similarity*100)))
	}

	// The action depends only on textual similarity, independent of which
	// rule fired: a pair flagged on timing alone can still earn delete or
	// merge if its descriptions happen to match closely.
	action := types.ActionReview
	switch {
	case similarity > d.cfg.DeleteThreshold:
		action = types.ActionDelete
	case similarity > d.cfg.MergeThreshold:
		action = types.ActionMerge
	}

	return Decision{Reason: reason, Similarity: similarity, Action: action}, true
}

// DetectDuplicates runs the detector over a snapshot of the task collection
// and returns one finding per flagged unordered pair. Tasks are only ever
// compared against other tasks for the same customer, and each pair is
// evaluated exactly once.
//
// The input is treated as immutable; the caller must not mutate it during
// the run.
func (d *Detector) DetectDuplicates(tasks []types.Task) []types.DuplicatePair {
	var findings []types.DuplicatePair

	// Partition by customer, preserving first-appearance order so output
	// is stable for a given input ordering.
	var customers []string
	byCustomer := make(map[string][]*types.Task)
	for i := range tasks {
		task := &tasks[i]
		if _, seen := byCustomer[task.CustomerID]; !seen {
			customers = append(customers, task.CustomerID)
		}
		byCustomer[task.CustomerID] = append(byCustomer[task.CustomerID], task)
	}

	for _, customer := range customers {
		customerTasks := byCustomer[customer]
		if len(customerTasks) <= 1 {
			continue
		}

		for i := 0; i < len(customerTasks); i++ {
			for j := i + 1; j < len(customerTasks); j++ {
				task1, task2 := customerTasks[i], customerTasks[j]

				decision, ok := d.ClassifyPair(task1, task2)
				if !ok {
					continue
				}

				original, duplicate := resolveOrder(task1, task2)
				findings = append(findings, types.DuplicatePair{
					OriginalTaskID:  original.ID,
					DuplicateTaskID: duplicate.ID,
					Reason:          decision.Reason,
					SimilarityScore: decision.Similarity,
					SuggestedAction: decision.Action,
					TimeSaved:       d.estimateTimeSaved(duplicate),
				})
			}
		}
	}

	return findings
}

// withinWindow reports whether the two tasks were created within the
// duplicate window of each other. Tasks with unparseable timestamps are
// excluded from time-window comparison, so the answer is false.
func (d *Detector) withinWindow(task1, task2 *types.Task) bool {
	t1, ok1 := task1.CreatedAt()
	t2, ok2 := task2.CreatedAt()
	if !ok1 || !ok2 {
		return false
	}
	diff := t1.Sub(t2)
	if diff < 0 {
		diff = -diff
	}
	return diff <= d.cfg.DuplicateWindow
}

// resolveOrder picks which task of a flagged pair is the original: the
// earlier-timestamped one. Unparseable timestamps sort as the zero time,
// and an exact tie keeps input order (task1 is the original).
func resolveOrder(task1, task2 *types.Task) (original, duplicate *types.Task) {
	t1, _ := task1.CreatedAt()
	t2, _ := task2.CreatedAt()
	if t2.Before(t1) {
		return task2, task1
	}
	return task1, task2
}

// estimateTimeSaved estimates the minutes saved by eliminating the
// duplicate task. The base is the SLA warning threshold for the task's
// type and priority; bounded jitter centered on zero keeps demo numbers
// from looking machine-generated.
func (d *Detector) estimateTimeSaved(task *types.Task) int {
	base := sla.ForTask(task).WarningMinutes()
	jitter := base * d.cfg.JitterFraction
	return int(math.Round(base + d.rng.Float64()*jitter - jitter/2))
}
