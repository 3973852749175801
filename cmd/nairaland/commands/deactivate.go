package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deactivateConfirmed *bool

func init() {
	deactivateConfirmed = deactivateCmd.Flags().Bool("yes", false, "Confirm that the account should be deactivated.")
	rootCmd.AddCommand(deactivateCmd)
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate --yes",
	Short: "Asks the forum to email a link that deactivates the account.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !*deactivateConfirmed {
			return errors.New("refusing to request deactivation without --yes")
		}

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		creds, _, err := promptLogin(cmd, newPrompter(cmd))
		if err != nil {
			return err
		}

		return client.WithSession(cmd.Context(), creds, func(ctx context.Context) error {
			_, err := client.RequestDeactivation(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "A deactivation email has been sent to the address of %s\n", creds.Identifier())
			return nil
		})
	},
}
