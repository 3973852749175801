package commands

import (
	"nairaland-client/internal/nairaland"

	"github.com/spf13/cobra"
)

func newClient(cmd *cobra.Command) (*nairaland.Client, error) {
	g := getGlobals(cmd.Context())
	opts := g.config.clientOptions()
	opts.Output = g.output
	return nairaland.NewClient(opts, g.tel)
}

// promptLogin asks for the credentials configured through flags and the
// config file.
func promptLogin(cmd *cobra.Command, p prompter) (nairaland.Credentials, string, error) {
	g := getGlobals(cmd.Context())
	return p.login(g.config.Username, *passwordFile)
}
