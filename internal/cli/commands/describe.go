package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <path>",
		Short: "Descriptive statistics for numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.Describe(args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				if len(res.Columns) == 0 {
					_, _ = fmt.Fprintln(w, "No numeric columns")
					return
				}
				t := newTable(w)
				t.AppendHeader(table.Row{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
				for _, col := range res.Columns {
					t.AppendRow(table.Row{
						col.Name, col.Count,
						formatFloat(col.Mean), formatFloat(col.Std),
						formatFloat(col.Min), formatFloat(col.P25),
						formatFloat(col.Median), formatFloat(col.P75),
						formatFloat(col.Max),
					})
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "(%d rows x %d columns)\n", res.Shape.Rows, res.Shape.Columns)
			})
		},
	}
}
