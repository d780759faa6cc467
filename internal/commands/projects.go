package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects the current user is a member of",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newTracker()
		if err != nil {
			return err
		}
		projects, err := client.GetProjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No projects.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-40s %s", "ID", "NAME", "VISIBILITY")))
		for _, project := range projects {
			visibility := "private"
			if project.Public {
				visibility = "public"
			}
			fmt.Printf("%-10d %-40s %s\n", project.ID, project.Name, faintStyle.Render(visibility))
		}
		return nil
	},
}
