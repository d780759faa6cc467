package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antigravity-dev/pivotal"
)

var (
	storyTypeFlag   string
	storyLabelsFlag []string
	storyDescFlag   string
)

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List, inspect, create and delete stories",
}

var storiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stories in the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		stories, err := client.GetProjectStories(cmd.Context(), projectArg())
		if err != nil {
			return err
		}
		printStories(stories)
		return nil
	},
}

var storiesShowCmd = &cobra.Command{
	Use:   "show <story-id>",
	Short: "Show one story",
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
		story, err := client.GetStory(cmd.Context(), projectArg(), storyID)
		if err != nil {
			return err
		}

		fmt.Printf("%s #%d\n", headerStyle.Render(story.Name), story.ID)
		fmt.Printf("type=%s state=%s estimate=%g\n", story.StoryType, renderState(story.StoryState.String()), story.Estimate)
		if len(story.Labels) > 0 {
			names := make([]string, 0, len(story.Labels))
			for _, label := range story.Labels {
				names = append(names, label.Name)
			}
			fmt.Printf("labels: %s\n", strings.Join(names, ", "))
		}
		if story.Description != "" {
			fmt.Printf("\n%s\n", story.Description)
		}
		return nil
	},
}

var storiesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyType, err := pivotal.ParseStoryType(storyTypeFlag)
		if err != nil {
			return err
		}
		client, err := newTracker()
		if err != nil {
			return err
		}
		story, err := client.CreateStory(cmd.Context(), projectArg(), args[0], storyType, storyLabelsFlag, storyDescFlag)
		if err != nil {
			return err
		}

		fmt.Printf("Created %s #%d\n", story.StoryType, story.ID)
		return nil
	},
}

var storiesDeleteCmd = &cobra.Command{
	Use:   "delete <story-id>",
	Short: "Delete a story (irreversible)",
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
		if _, err := client.DeleteStory(cmd.Context(), projectArg(), storyID); err != nil {
			return err
		}

		fmt.Printf("Deleted story %d\n", storyID)
		return nil
	},
}

func printStories(stories []pivotal.Story) {
	if len(stories) == 0 {
		fmt.Println("No stories.")
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-8s %-12s %s", "ID", "TYPE", "STATE", "NAME")))
	for _, story := range stories {
		fmt.Printf("%-10d %-8s %-12s %s\n", story.ID, story.StoryType, renderState(story.StoryState.String()), story.Name)
	}
}

func init() {
	storiesCreateCmd.Flags().StringVarP(&storyTypeFlag, "type", "t", "feature", "story type: feature, bug, chore, release")
	storiesCreateCmd.Flags().StringSliceVarP(&storyLabelsFlag, "label", "l", nil, "label to attach (repeatable)")
	storiesCreateCmd.Flags().StringVarP(&storyDescFlag, "description", "d", "", "story description")

	storiesCmd.AddCommand(storiesListCmd)
	storiesCmd.AddCommand(storiesShowCmd)
	storiesCmd.AddCommand(storiesCreateCmd)
	storiesCmd.AddCommand(storiesDeleteCmd)
}
