package fundcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ManivannanSenthilrajan/issueboard/internal/diagram"
)

func newDiagramCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "diagram {flow|schema}",
		Short:     "Render a pipeline diagram as Graphviz DOT",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"flow", "schema"},
		RunE: func(_ *cobra.Command, args []string) error {
			var dot string
			switch args[0] {
			case "flow":
				dot = diagram.Flow()
			case "schema":
				dot = diagram.StarSchema()
			default:
				return fmt.Errorf("unknown diagram %q (flow, schema)", args[0])
			}
			return writeOut(out, []byte(dot))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
