package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewMissingCommand creates the missing command.
func NewMissingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "missing <path>",
		Short: "Report missing values per column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.MissingValues(args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				t := newTable(w)
				t.AppendHeader(table.Row{"Column", "Missing", "Rate"})
				for _, col := range res.Columns {
					t.AppendRow(table.Row{col.Name, col.MissingCount, formatPct(col.MissingRate * 100)})
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "(%d rows)\n", res.TotalRows)
			})
		},
	}
}
