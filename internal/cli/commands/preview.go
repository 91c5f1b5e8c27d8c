package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	var nRows int

	cmd := &cobra.Command{
		Use:   "preview <path>",
		Short: "Show the first rows of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.Preview(args[0], nRows)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				if len(res.Rows) == 0 {
					_, _ = fmt.Fprintln(w, "(0 rows)")
					return
				}
				t := newTable(w)
				header := make(table.Row, len(res.Columns))
				for i, col := range res.Columns {
					header[i] = col
				}
				t.AppendHeader(header)
				for _, rowMap := range res.Rows {
					row := make(table.Row, len(res.Columns))
					for i, col := range res.Columns {
						row[i] = formatValue(rowMap[col])
					}
					t.AppendRow(row)
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "(%d rows)\n", res.NRows)
			})
		},
	}

	cmd.Flags().IntVarP(&nRows, "rows", "n", 5, "Number of rows to show")
	return cmd
}
