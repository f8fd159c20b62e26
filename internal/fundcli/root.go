// Package fundcli defines the command-line interface for the fund-data demo.
package fundcli

import (
	"github.com/spf13/cobra"
)

// Options stores global CLI options shared between commands.
type Options struct {
	Quarter string
	Seed    int64
}

// Execute builds the root command and runs it with the provided args.
func Execute(args []string) error {
	opts := &Options{}
	root := newRootCommand(opts)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fundflow",
		Short:         "fundflow generates and pivots mock fund facts",
		Long:          "fundflow is a demo ETL pipeline: it generates synthetic fund facts (fund x metric x column), pivots them into a quarterly summary table, and renders pipeline diagrams.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.Quarter, "quarter", "q", "2026-Q1", "Reporting quarter stamped onto generated facts")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "Random seed; 0 uses the current time")

	cmd.AddCommand(
		newGenerateCommand(opts),
		newPivotCommand(opts),
		newDiagramCommand(),
	)

	return cmd
}
