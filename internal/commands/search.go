package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antigravity-dev/pivotal"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stories with the tracker's query language",
	Long: `search runs a raw query against the project, e.g.
  pivotal search "state:started label:importer"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		result, err := client.SearchStories(cmd.Context(), projectArg(), args[0])
		if err != nil {
			return err
		}
		printSearchResult(result)
		return nil
	},
}

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "List the project's backlog (unstarted stories)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		result, err := client.BacklogStories(cmd.Context(), projectArg())
		if err != nil {
			return err
		}
		printSearchResult(result)
		return nil
	},
}

var iceboxCmd = &cobra.Command{
	Use:   "icebox",
	Short: "List the project's icebox (unscheduled stories)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		result, err := client.IceboxStories(cmd.Context(), projectArg())
		if err != nil {
			return err
		}
		printSearchResult(result)
		return nil
	},
}

var myWorkCmd = &cobra.Command{
	Use:   "mywork <initials>",
	Short: "List the stories in My Work for a user's initials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		result, err := client.MyWorkStories(cmd.Context(), projectArg(), args[0])
		if err != nil {
			return err
		}
		printSearchResult(result)
		return nil
	},
}

func printSearchResult(result *pivotal.StorySearchResult) {
	printStories(result.Stories)
	if result.TotalHits > len(result.Stories) {
		fmt.Println(faintStyle.Render(fmt.Sprintf("%d total hits", result.TotalHits)))
	}
}
