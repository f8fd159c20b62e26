package fundcli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManivannanSenthilrajan/issueboard/internal/funddata"
)

func rng(seed int64) *rand.Rand {
	if seed == 0 { seed = time.Now().UnixNano() }
	return rand.New(rand.NewSource(seed))
}

func newGenerateCommand(opts *Options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate mock fund facts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			facts := funddata.Generate(opts.Quarter, rng(opts.Seed))
			out := cmd.OutOrStdout()
			switch format {
			case "table":
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "FUND\tMETRIC\tCOLUMN\tQUARTER\tVALUE")
				for _, f := range facts {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Fund, f.Metric, f.Column, f.Quarter, f.Value)
				}
				return w.Flush()
			case "csv":
				w := csv.NewWriter(out)
				if err := w.Write([]string{"fund", "metric", "column", "quarter", "value"}); err != nil { return err }
				for _, f := range facts {
					if err := w.Write([]string{f.Fund, f.Metric, f.Column, f.Quarter, f.Value}); err != nil { return err }
				}
				w.Flush()
				return w.Error()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(facts)
			default:
				return fmt.Errorf("unknown format %q (table, csv, json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func writeOut(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
