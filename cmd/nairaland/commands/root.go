package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"nairaland-client/internal/components/telemetry"
	"nairaland-client/lib/restyutil"
	"nairaland-client/lib/serviceutil"
	libtelemetry "nairaland-client/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath   *string
	debug        *bool
	logFile      *string
	dumpHttp     *string
	baseUrl      *string
	username     *string
	passwordFile *string
)

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "nairaland.json5", "The config file to read, a <name>.local.json5 next to it overrides it.")
	debug = flags.Bool("debug", false, "Log debug messages.")
	logFile = flags.String("log-file", "", "Also write json logs to this file.")
	dumpHttp = flags.String("dump-http", "", "Write every http exchange to a file in this directory.")
	baseUrl = flags.String("base-url", "", "The forum to talk to, overrides the config.")
	username = flags.StringP("username", "u", "", "The account to log in as, overrides the config.")
	passwordFile = flags.String("password-file", "", "Read the password from this file instead of prompting for it.")
}

// globals is what every command gets once the root command has set up
// logging, telemetry and the config.
type globals struct {
	config Config
	tel    telemetry.API
	output telemetry.InstrumentOutput

	closeLog  func() error
	telemetry *libtelemetry.Telemetry
	closed    bool
}

// active is the globals of the running command, cobra skips
// PersistentPostRun when a command fails so they are released by run.
var active *globals

type globalsKey struct{}

func getGlobals(ctx context.Context) *globals {
	return ctx.Value(globalsKey{}).(*globals)
}

var rootCmd = &cobra.Command{
	Use:           "nairaland",
	Short:         "nairaland is a CLI for performing account actions on the nairaland forum.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		g := &globals{tel: telemetry.SlogAPI{}}
		active = g
		g.closeLog = libtelemetry.InitSlog(libtelemetry.SlogOptions{
			Debug: *debug,
			File:  *logFile,
		})

		tel, err := libtelemetry.SetupFromEnv(cmd.Context(), "nairaland")
		if err == nil {
			g.telemetry = &tel
		} else if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to setup telemetry", "err", err)
		}

		g.config, err = loadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if *baseUrl != "" {
			g.config.BaseUrl = *baseUrl
		}
		if *username != "" {
			g.config.Username = *username
		}

		if *dumpHttp != "" {
			output, err := restyutil.NewFilesystemOutput(*dumpHttp)
			if err != nil {
				return fmt.Errorf("http dump directory: %w", err)
			}
			g.output = output
		}

		cmd.SetContext(context.WithValue(cmd.Context(), globalsKey{}, g))
		return nil
	},
}

func (g *globals) close(ctx context.Context) {
	if g.closed {
		return
	}
	g.closed = true

	if g.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*5)
		defer cancel()
		err := g.telemetry.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}
	if g.closeLog != nil {
		g.closeLog()
	}
}

// run executes the root command and releases the globals it set up, whether
// the command succeeded or not.
func run(ctx context.Context) error {
	active = nil
	err := rootCmd.ExecuteContext(ctx)
	if active != nil {
		active.close(ctx)
	}
	return err
}

func ExecuteContext(ctx context.Context) {
	if err := run(ctx); err != nil {
		serviceutil.Fatal("command failed", err)
	}
}
