package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	postTitle    *string
	postBody     *string
	postBodyFile *string
	postBoard    *string
	postBoardId  *int
)

func init() {
	flags := postCmd.Flags()
	postTitle = flags.String("title", "", "The title of the topic.")
	postBody = flags.String("body", "", "The body of the topic.")
	postBodyFile = flags.String("body-file", "", "Read the body of the topic from this file, - reads stdin.")
	postBoard = flags.String("board", "", "The name of the board to post in, see `nairaland boards`.")
	postBoardId = flags.Int("board-id", 0, "The id of the board to post in, for boards without a known name.")
	postCmd.MarkFlagRequired("title")
	postCmd.MarkFlagsMutuallyExclusive("body", "body-file")
	postCmd.MarkFlagsMutuallyExclusive("board", "board-id")
	rootCmd.AddCommand(postCmd)
}

func readBody(cmd *cobra.Command) (string, error) {
	switch *postBodyFile {
	case "":
		return *postBody, nil
	case "-":
		contents, err := io.ReadAll(cmd.InOrStdin())
		return string(contents), err
	default:
		contents, err := os.ReadFile(*postBodyFile)
		return string(contents), err
	}
}

var postCmd = &cobra.Command{
	Use:   "post --title <title> (--body <text> | --body-file <path>) (--board <name> | --board-id <id>)",
	Short: "Creates a new topic on a board.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if *postBoard == "" && *postBoardId <= 0 {
			return errors.New("one of --board or --board-id is required")
		}

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		boardId := *postBoardId
		if *postBoard != "" {
			boardId, err = client.LookupBoardID(*postBoard)
			if err != nil {
				return err
			}
		}

		creds, _, err := promptLogin(cmd, newPrompter(cmd))
		if err != nil {
			return err
		}
		return client.WithSession(cmd.Context(), creds, func(ctx context.Context) error {
			res, err := client.CreateTopic(ctx, *postTitle, body, boardId)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created topic %q on board %d (%s)\n", *postTitle, boardId, res.Url)
			return nil
		})
	},
}
