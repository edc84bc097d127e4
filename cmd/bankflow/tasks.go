package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bankflowai/bankflow/internal/taskstore"
	"github.com/bankflowai/bankflow/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Run: func(cmd *cobra.Command, args []string) {
		tasks := store.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks. Run 'bankflow seed' to generate a demo collection.")
			return
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, task := range tasks {
			fmt.Printf("%s  %-20s %-14s %-12s %s\n",
				gray(shortID(task.ID)), task.TaskType, task.CustomerID, statusColor(task.Status), task.Description)
		}
		fmt.Printf("\nTotal: %d tasks\n", len(tasks))
	},
}

var (
	addCustomer    string
	addType        string
	addDescription string
	addPriority    string
	addAssignee    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	Run: func(cmd *cobra.Command, args []string) {
		task, err := store.AddTask(types.Task{
			CustomerID:  addCustomer,
			TaskType:    types.TaskType(addType),
			Description: addDescription,
			Priority:    types.TaskPriority(addPriority),
			AssignedTo:  addAssignee,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created task %s\n", task.ID)
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <task-id> <status>",
	Short: "Update a task's status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		status := types.TaskStatus(args[1])
		task, err := store.UpdateTask(args[0], taskstore.TaskUpdate{Status: &status})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Task %s is now %s\n", task.ID, task.Status)
		if task.CompletionTime != nil {
			fmt.Printf("Completed after %d minutes\n", *task.CompletionTime)
		}
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := store.DeleteTask(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted task %s\n", args[0])
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusColor(status types.TaskStatus) string {
	switch status {
	case types.StatusCompleted:
		return color.GreenString(string(status))
	case types.StatusInProgress:
		return color.YellowString(string(status))
	case types.StatusCancelled:
		return color.New(color.FgHiBlack).Sprint(string(status))
	default:
		return string(status)
	}
}

func init() {
	addCmd.Flags().StringVar(&addCustomer, "customer", "", "customer ID (required)")
	addCmd.Flags().StringVar(&addType, "type", "", "task type (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority: low, medium, high")
	addCmd.Flags().StringVar(&addAssignee, "assignee", "", "assigned banker")
	addCmd.MarkFlagRequired("customer")
	addCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(removeCmd)
}
