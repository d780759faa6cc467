package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var commentFileFlag string

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List and add story comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <story-id>",
	Short: "List the comments on a story",
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
		comments, err := client.GetComments(cmd.Context(), projectArg(), storyID)
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println("No comments.")
			return nil
		}

		for _, comment := range comments {
			fmt.Printf("%s %s\n", headerStyle.Render(fmt.Sprintf("#%d", comment.ID)), comment.Text)
			for _, attachment := range comment.FileAttachments {
				fmt.Printf("    %s\n", faintStyle.Render("attachment: "+attachment.FileName))
			}
		}
		return nil
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <story-id> <text>",
	Short: "Add a comment, optionally with a file attachment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, err := parseID(args[0], "story id")
		if err != nil {
			return err
		}
		client, err := newTracker()
		if err != nil {
			return err
		}

		if commentFileFlag == "" {
			comment, err := client.CreateComment(cmd.Context(), projectArg(), storyID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added comment %d\n", comment.ID)
			return nil
		}

		file, err := os.Open(commentFileFlag)
		if err != nil {
			return fmt.Errorf("open attachment: %w", err)
		}
		defer file.Close()

		comment, err := client.CreateCommentWithFile(cmd.Context(), projectArg(), storyID, args[1], filepath.Base(commentFileFlag), file)
		if err != nil {
			return err
		}
		fmt.Printf("Added comment %d with %d attachment(s)\n", comment.ID, len(comment.FileAttachments))
		return nil
	},
}

func init() {
	commentsAddCmd.Flags().StringVarP(&commentFileFlag, "file", "f", "", "path of a file to attach")

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
}
