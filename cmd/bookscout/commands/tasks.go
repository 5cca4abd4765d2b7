// ABOUTME: CLI commands to inspect and manage research tasks
// ABOUTME: Supports list with status filter, get, delete, and clear
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/bookscout/internal/models"
)

var (
	tasksStatus string
)

// NewTasksCmd creates the tasks command group
func NewTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage research tasks",
		Long: `Inspect and manage background research tasks.

Examples:
  bookscout tasks list
  bookscout tasks list --status working
  bookscout tasks get 4f7c...
  bookscout tasks delete 4f7c...
  bookscout tasks clear`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List research tasks",
		RunE:  runTasksList,
	}
	listCmd.Flags().StringVar(&tasksStatus, "status", "", "Filter by status: working, success, failure")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one research task",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksGet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete one research task",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksDelete,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all research tasks",
		RunE:  runTasksClear,
	})

	return cmd
}

func runTasksList(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	var tasks []models.TaskRecord
	if tasksStatus == "" {
		tasks, err = svc.tasks.ListAll()
	} else {
		tasks, err = svc.tasks.ListByStatus(models.TaskStatus(tasksStatus))
	}
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}

	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No tasks found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), tasks)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STATUS\tTITLE\tSTARTED\tTASK ID\n")
	fmt.Fprintf(w, "------\t-----\t-------\t-------\n")
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			strings.ToUpper(string(task.Status)),
			truncate(task.Title, 40),
			formatTime(task.StartedAt),
			task.ID)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d task(s)\n", len(tasks))
	}
	return nil
}

func runTasksGet(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	task, err := svc.tasks.Get(args[0])
	if err != nil {
		return fmt.Errorf("getting task: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), task)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ID:      %s\n", task.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Title:   %s\n", task.Title)
	if task.OtherInfo != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Info:    %s\n", task.OtherInfo)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Status:  %s\n", strings.ToUpper(string(task.Status)))
	fmt.Fprintf(cmd.OutOrStdout(), "Started: %s\n", formatTime(task.StartedAt))
	return nil
}

func runTasksDelete(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.tasks.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
	}
	return nil
}

func runTasksClear(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.tasks.DeleteAll(); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared all tasks\n")
	}
	return nil
}
