package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankflowai/bankflow/internal/deduplication"
	"github.com/bankflowai/bankflow/internal/taskstore"
)

var (
	dataPath   string
	configPath string

	// store is shared by every subcommand; opened in PersistentPreRunE
	store *taskstore.Store
)

var rootCmd = &cobra.Command{
	Use:   "bankflow",
	Short: "BankFlow duplicate-detection dashboard",
	Long: `BankFlow manages a collection of banking workflow tasks, flags likely
duplicates with a similarity heuristic, and derives efficiency metrics
from the findings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDetectorConfig()
		if err != nil {
			return err
		}

		store = taskstore.New(taskstore.NewFileStorage(dataPath), deduplication.New(cfg, nil))
		if err := store.Load(); err != nil {
			return fmt.Errorf("failed to open task store: %w", err)
		}
		return nil
	},
}

// loadDetectorConfig resolves the detector configuration: an explicit YAML
// file wins, otherwise environment overrides on top of defaults.
func loadDetectorConfig() (deduplication.Config, error) {
	if configPath != "" {
		return deduplication.ConfigFromFile(configPath)
	}
	return deduplication.ConfigFromEnv()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", ".bankflow/tasks.json",
		"path to the task snapshot file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML detector config (overrides environment)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
