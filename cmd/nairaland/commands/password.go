package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(changePasswordCmd)
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Changes the password of the account, the current password is the one logged in with.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)
		creds, oldSecret, err := promptLogin(cmd, p)
		if err != nil {
			return err
		}
		newSecret, err := p.newSecret()
		if err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		return client.WithSession(cmd.Context(), creds, func(ctx context.Context) error {
			_, err := client.ChangePassword(ctx, oldSecret, newSecret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Changed the password of %s\n", creds.Identifier())
			return nil
		})
	},
}
