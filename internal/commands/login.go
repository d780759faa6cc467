package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antigravity-dev/pivotal"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange credentials for an API token",
	Long: `login authenticates with username and password and prints the account's
API token. Put the token in your config file; no state is stored by this
command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := pivotal.NewUnauthenticatedClient(
			pivotal.WithLogger(configureLogger(logLevelFlag)),
		)
		user, err := client.Authenticate(cmd.Context(), loginUsername, loginPassword)
		if err != nil {
			return err
		}

		fmt.Printf("Authenticated as %s (%s)\n", user.Name, user.Username)
		if user.APIToken != "" {
			fmt.Printf("API token: %s\n", user.APIToken)
			fmt.Println(faintStyle.Render("Add it to ~/.config/pivotal/pivotal.toml under [tracker] token = \"...\""))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "tracker username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "w", "", "tracker password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
