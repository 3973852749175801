package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(boardsCmd)
}

var boardsCmd = &cobra.Command{
	Use:   "boards [filter]",
	Short: "Lists the boards that can be posted to by name.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		boards := getGlobals(cmd.Context()).config.directory()

		filter := ""
		if len(args) > 0 {
			filter = strings.ToLower(args[0])
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Board", "ID"})
		for _, name := range boards.Names() {
			if !strings.Contains(strings.ToLower(name), filter) {
				continue
			}
			id, err := boards.Lookup(name)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{name, id})
		}
		t.Render()

		return nil
	},
}
