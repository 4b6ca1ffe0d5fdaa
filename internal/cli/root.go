// Package cli defines the patternlab command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/patternlab/internal/app"
)

// BuildInfo is stamped into the binary via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type globalFlags struct {
	configPath string
	logLevel   string
	debug      bool
	noPause    bool
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, info BuildInfo, args []string) int {
	cmd := NewRootCmd(info)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the root command. Without a subcommand it opens the
// interactive menu.
func NewRootCmd(info BuildInfo) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "patternlab",
		Short:         "Six runnable design-pattern demos",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			return a.Menu(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a TOML configuration file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&flags.noPause, "no-pause", false, "do not wait for ENTER between menu demos")

	cmd.AddCommand(
		listCmd(&flags),
		runCmd(&flags),
		scenarioCmd(&flags),
		scriptCmd(&flags),
		versionCmd(info),
	)
	return cmd
}

func newApp(cmd *cobra.Command, flags globalFlags) (*app.App, error) {
	return app.New(app.Options{
		ConfigPath: flags.configPath,
		LogLevel:   flags.logLevel,
		Debug:      flags.debug,
		NoPause:    flags.noPause,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	})
}
