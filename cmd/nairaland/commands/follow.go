package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(followCmd)
}

var followCmd = &cobra.Command{
	Use:   "follow <member>",
	Short: "Follows another member.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		creds, _, err := promptLogin(cmd, newPrompter(cmd))
		if err != nil {
			return err
		}

		return client.WithSession(cmd.Context(), creds, func(ctx context.Context) error {
			_, err := client.FollowMember(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now following %s\n", args[0])
			return nil
		})
	},
}
