package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the account behind the configured API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		user, err := client.GetUser(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s) username=%s email=%s\n", user.Name, user.Initials, user.Username, user.Email)
		for _, membership := range user.Projects {
			fmt.Printf("  %-8d %-30s %s\n", membership.ProjectID, membership.ProjectName, faintStyle.Render(membership.Role))
		}
		return nil
	},
}
