package mockdata

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCountAndValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tasks := Generate(100, rng, now)
	require.Len(t, tasks, 100)

	seen := make(map[string]bool)
	for i := range tasks {
		task := &tasks[i]
		assert.NoError(t, task.Validate(), "task %d", i)
		assert.True(t, strings.HasPrefix(task.CustomerID, "HSBC"), "customer %s", task.CustomerID)
		assert.False(t, seen[task.ID], "duplicate ID %s", task.ID)
		seen[task.ID] = true

		createdAt, ok := task.CreatedAt()
		require.True(t, ok, "timestamp must parse: %s", task.Timestamp)
		assert.False(t, createdAt.After(now))
		assert.False(t, createdAt.Before(now.Add(-8*24*time.Hour)))
	}
}

func TestGenerateInjectsDuplicateCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tasks := Generate(50, rng, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))

	// The last fifth of the collection copies earlier tasks, so at least
	// one customer must appear more than once.
	byCustomer := make(map[string]int)
	for _, task := range tasks {
		byCustomer[task.CustomerID]++
	}
	repeat := false
	for _, count := range byCustomer {
		if count > 1 {
			repeat = true
			break
		}
	}
	assert.True(t, repeat, "expected at least one repeated customer")
}

func TestGenerateZeroAndTiny(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Now()

	assert.Empty(t, Generate(0, rng, now))

	// A count too small to produce any originals yields no tasks rather
	// than panicking on the duplicate pass.
	assert.Empty(t, Generate(1, rng, now))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"Review loan application for customer", "Review loan application for HSBC00000001"},
		{"Perform background check for client", "Perform background check for HSBC00000001"},
		{"Setup online banking for new account", "Setup online banking for new account HSBC00000001"},
	}

	for _, tt := range tests {
		if got := describe(tt.template, "HSBC00000001"); got != tt.want {
			t.Errorf("describe(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}
