// Package mockdata generates demo task collections for seeding the
// dashboard. Roughly a fifth of the generated tasks are near-duplicates of
// earlier ones, so the detector always has something to find.
package mockdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bankflowai/bankflow/internal/types"
)

var descriptionTemplates = map[types.TaskType][]string{
	types.TypeLoanApproval: {
		"Review loan application for customer",
		"Process mortgage approval for",
		"Verify loan documents for",
		"Analyze credit history for loan application",
		"Finalize loan terms for customer",
	},
	types.TypeKYCCheck: {
		"Complete KYC verification for new customer",
		"Review customer identification documents",
		"Perform background check for client",
		"Update KYC records for customer",
		"Finalize KYC compliance check for",
	},
	types.TypeTransactionReview: {
		"Review high-value transaction for customer",
		"Verify international transfer details for",
		"Analyze suspicious transaction pattern for account",
		"Complete transaction approval for customer",
		"Finalize transaction security check for",
	},
	types.TypeAccountOpening: {
		"Process new account application for",
		"Setup online banking for new account",
		"Complete account verification for client",
		"Initialize premium account for customer",
		"Finalize account opening procedure for",
	},
	types.TypeCreditCheck: {
		"Perform credit score analysis for",
		"Review credit history for customer",
		"Complete credit risk assessment for",
		"Verify credit references for customer",
		"Finalize credit limit approval for",
	},
}

var assignees = []string{"John Smith", "Emma Wilson", "Michael Chen", "Priya Patel"}

var priorities = []types.TaskPriority{types.PriorityLow, types.PriorityMedium, types.PriorityHigh}

// Generate produces count demo tasks created within the last week of now.
// About 80% are independent tasks; the remainder duplicate a random earlier
// task with a slightly varied description and a fresh timestamp.
//
// Pass a seeded rng for reproducible output. Task IDs are random UUIDs and
// are not covered by the seed.
func Generate(count int, rng *rand.Rand, now time.Time) []types.Task {
	taskTypes := types.AllTaskTypes()
	statuses := types.AllTaskStatuses()

	tasks := make([]types.Task, 0, count)
	originals := count * 8 / 10
	for i := 0; i < originals; i++ {
		taskType := taskTypes[rng.Intn(len(taskTypes))]
		template := descriptionTemplates[taskType][rng.Intn(len(descriptionTemplates[taskType]))]
		customerID := customerID(rng)

		tasks = append(tasks, types.Task{
			ID:          uuid.NewString(),
			CustomerID:  customerID,
			TaskType:    taskType,
			Description: describe(template, customerID),
			Status:      statuses[rng.Intn(len(statuses))],
			Timestamp:   recentTimestamp(rng, now),
			Priority:    priorities[rng.Intn(len(priorities))],
			AssignedTo:  assignees[rng.Intn(len(assignees))],
		})
	}

	if len(tasks) == 0 {
		return tasks
	}

	for i := len(tasks); i < count; i++ {
		original := tasks[rng.Intn(len(tasks))]
		duplicate := original
		duplicate.ID = uuid.NewString()
		duplicate.Description = vary(original.Description, rng)
		duplicate.Timestamp = recentTimestamp(rng, now)
		duplicate.Status = statuses[rng.Intn(len(statuses))]
		tasks = append(tasks, duplicate)
	}

	return tasks
}

// customerID builds an HSBC-prefixed eight-digit customer identifier
func customerID(rng *rand.Rand) string {
	return fmt.Sprintf("HSBC%08d", 10000000+rng.Intn(90000000))
}

// describe fills the customer placeholder in a template, or appends the
// customer ID when the template has none
func describe(template, customerID string) string {
	switch {
	case strings.Contains(template, "for customer"):
		return strings.Replace(template, "for customer", "for "+customerID, 1)
	case strings.Contains(template, "for client"):
		return strings.Replace(template, "for client", "for "+customerID, 1)
	default:
		return template + " " + customerID
	}
}

// vary rewrites a description slightly, the way a second banker would type
// the same request
func vary(original string, rng *rand.Rand) string {
	variations := []string{
		original,
		strings.Replace(original, "for customer", "for client", 1),
		strings.Replace(original, "Review", "Check", 1),
		strings.Replace(original, "Complete", "Finish", 1),
		strings.Replace(original, "Verify", "Validate", 1),
	}
	return variations[rng.Intn(len(variations))]
}

// recentTimestamp picks a moment within the last 7 days of now
func recentTimestamp(rng *rand.Rand, now time.Time) string {
	offset := time.Duration(rng.Intn(7))*24*time.Hour +
		time.Duration(rng.Intn(24))*time.Hour +
		time.Duration(rng.Intn(60))*time.Minute
	return now.Add(-offset).UTC().Format(time.RFC3339)
}
