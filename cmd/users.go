package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// usersCmd lists the users with synced collections.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users with a synced collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		defer app.logger.Sync()

		users, err := app.store.Users()
		if err != nil {
			return err
		}
		for _, user := range users {
			fmt.Println(user)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(usersCmd)
}
