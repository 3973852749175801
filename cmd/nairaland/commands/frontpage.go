package commands

import (
	"nairaland-client/internal/frontpage"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(frontpageCmd)
}

var frontpageCmd = &cobra.Command{
	Use:   "frontpage",
	Short: "Lists the topics featured on the front page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := getGlobals(cmd.Context())
		scraper, err := frontpage.NewScraper(g.config.browserOptions(), g.tel, g.output)
		if err != nil {
			return err
		}
		topics, err := scraper.Featured(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Topic", "Link"})
		for _, topic := range topics {
			t.AppendRow(table.Row{topic.Title, topic.Url.String()})
		}
		t.Render()

		return nil
	},
}
