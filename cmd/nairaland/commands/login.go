package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login [--username <name>]",
	Short: "Logs in and out again to check that the credentials work.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, _, err := promptLogin(cmd, newPrompter(cmd))
		if err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		return client.WithSession(cmd.Context(), creds, func(ctx context.Context) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", creds.Identifier())
			return nil
		})
	},
}
