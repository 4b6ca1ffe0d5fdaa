package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, *flags)
			if err != nil {
				return err
			}
			a.ListDemos()
			return nil
		},
	}
}

func runCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "run <demo|number>...",
		Short:   "Run one or more demos without the menu",
		Example: "  patternlab run command\n  patternlab run 1 3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, *flags)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := a.RunDemo(cmd.Context(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func scenarioCmd(flags *globalFlags) *cobra.Command {
	var strict bool

	c := &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "Replay a YAML command scenario against a fresh filesystem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, *flags)
			if err != nil {
				return err
			}
			sum, err := a.RunScenario(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strict && sum.Failed > 0 {
				return fmt.Errorf("%d of %d steps failed", sum.Failed, sum.Steps)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any step fails")
	return c
}

func scriptCmd(flags *globalFlags) *cobra.Command {
	var watch bool

	c := &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua script against a fresh filesystem",
		Long: "Run a Lua script against a fresh filesystem.\n\n" +
			"Scripts drive the command log through the fs table: fs.create, fs.delete,\n" +
			"fs.move, fs.write, fs.read, fs.exists, fs.undo, fs.redo, fs.list, fs.show,\n" +
			"fs.begin_group, fs.end_group, fs.history and fs.clear_history.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, *flags)
			if err != nil {
				return err
			}
			return a.RunScript(cmd.Context(), args[0], watch)
		},
	}

	c.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the script whenever it is saved")
	return c
}

func versionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "patternlab %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
		},
	}
}
