package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antigravity-dev/pivotal"
)

var (
	taskPositionFlag int
	taskCompleteFlag bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work with the task checklist of a story",
}

var tasksListCmd = &cobra.Command{
	Use:   "list <story-id>",
	Short: "List the tasks on a story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, err := parseID(args[0], "story id")
		if err != nil {
			return err
		}
		client, err := newTracker()
		if err != nil {
			return err
		}
		tasks, err := client.GetStoryTasks(cmd.Context(), projectArg(), storyID)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		for _, task := range tasks {
			mark := "[ ]"
			if task.Complete {
				mark = "[x]"
			}
			fmt.Printf("%2d. %s %s %s\n", task.Position, mark, task.Description, faintStyle.Render(fmt.Sprintf("(id %d)", task.ID)))
		}
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <story-id> <description>",
	Short: "Add a task to a story",
	Long: `add appends a task to the story's checklist. Without --position the
tracker places it at the end of the list.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, err := parseID(args[0], "story id")
		if err != nil {
			return err
		}
		var position *int
		if cmd.Flags().Changed("position") {
			position = pivotal.Int(taskPositionFlag)
		}
		client, err := newTracker()
		if err != nil {
			return err
		}
		task, err := client.AddStoryTask(cmd.Context(), projectArg(), storyID, args[1], taskCompleteFlag, position)
		if err != nil {
			return err
		}

		fmt.Printf("Added task %d at position %d\n", task.ID, task.Position)
		return nil
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <story-id> <task-id>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, err := parseID(args[0], "story id")
		if err != nil {
			return err
		}
		taskID, err := parseID(args[1], "task id")
		if err != nil {
			return err
		}
		client, err := newTracker()
		if err != nil {
			return err
		}

		tasks, err := client.GetStoryTasks(cmd.Context(), projectArg(), storyID)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if task.ID != taskID {
				continue
			}
			task.Complete = true
			if _, err := client.UpdateStoryTask(cmd.Context(), projectArg(), storyID, task); err != nil {
				return err
			}
			fmt.Printf("Completed task %d\n", taskID)
			return nil
		}
		return fmt.Errorf("task %d not found on story %d", taskID, storyID)
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <story-id> <task-id>",
	Short: "Delete a task from a story",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, err := parseID(args[0], "story id")
		if err != nil {
			return err
		}
		taskID, err := parseID(args[1], "task id")
		if err != nil {
			return err
		}
		client, err := newTracker()
		if err != nil {
			return err
		}
		if _, err := client.DeleteStoryTask(cmd.Context(), projectArg(), storyID, taskID); err != nil {
			return err
		}

		fmt.Printf("Deleted task %d\n", taskID)
		return nil
	},
}

func init() {
	tasksAddCmd.Flags().IntVar(&taskPositionFlag, "position", 0, "1-based position in the checklist (default: append)")
	tasksAddCmd.Flags().BoolVar(&taskCompleteFlag, "complete", false, "create the task already marked complete")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
}
