package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankflowai/bankflow/internal/mockdata"
)

var (
	seedCount int
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the task collection with generated demo tasks",
	Long: `Generate a fresh demo task collection, including a fraction of
near-duplicate tasks, and replace the current snapshot with it.`,
	Run: func(cmd *cobra.Command, args []string) {
		seed := seedValue
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		tasks := mockdata.Generate(seedCount, rng, time.Now())
		if err := store.Seed(tasks); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to seed tasks: %v\n", err)
			os.Exit(1)
		}

		m := store.Metrics()
		fmt.Printf("Seeded %d tasks (%d duplicates detected)\n", m.TotalTasks, m.DuplicatesDetected)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 100, "number of tasks to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(seedCmd)
}
