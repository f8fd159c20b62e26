package fundcli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ManivannanSenthilrajan/issueboard/internal/export"
	"github.com/ManivannanSenthilrajan/issueboard/internal/funddata"
	"github.com/ManivannanSenthilrajan/issueboard/internal/pivot"
)

func newPivotCommand(opts *Options) *cobra.Command {
	var (
		format string
		fund   string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "pivot",
		Short: "Pivot generated facts into a quarterly summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			facts := funddata.Generate(opts.Quarter, rng(opts.Seed))
			if fund != "" {
				facts = lo.Filter(facts, func(f funddata.Fact, _ int) bool { return f.Fund == fund })
				if len(facts) == 0 { return fmt.Errorf("unknown fund %q", fund) }
			}
			table := pivot.Build(funddata.ToPivot(facts))

			switch format {
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "ROW\t%s\tTOTAL\n", strings.Join(table.Columns, "\t"))
				for _, r := range table.Rows {
					cells := make([]string, 0, len(table.Columns))
					for _, c := range table.Columns {
						cells = append(cells, fmt.Sprintf("%g", r.Cells[c]))
					}
					fmt.Fprintf(w, "%s\t%s\t%g\n", r.Key, strings.Join(cells, "\t"), r.Total)
				}
				return w.Flush()
			case "csv":
				data, err := export.PivotCSV(table)
				if err != nil { return err }
				return writeOut(out, data)
			case "xlsx":
				if out == "" { return fmt.Errorf("--out is required with --format xlsx") }
				data, err := export.PivotXLSX(table)
				if err != nil { return err }
				return writeOut(out, data)
			default:
				return fmt.Errorf("unknown format %q (table, csv, xlsx)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, xlsx)")
	cmd.Flags().StringVar(&fund, "fund", "", "Only include one fund")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
