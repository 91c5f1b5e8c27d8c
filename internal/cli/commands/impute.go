package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvprobe/internal/analyze"
)

// NewImputeCommand creates the impute command.
func NewImputeCommand() *cobra.Command {
	var strategy string
	var columns []string

	cmd := &cobra.Command{
		Use:   "impute <path>",
		Short: "Preview missing-value handling",
		Long: `Preview the effect of a missing-value strategy on an in-memory copy
of the dataset. The source file is never modified.

Supported strategies: ` + strings.Join(analyze.ImputeStrategies, ", ") + `.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.ImputePreview(args[0], strategy, columns)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				_, _ = fmt.Fprintf(w, "Strategy %s: %dx%d -> %dx%d\n",
					res.Strategy,
					res.OriginalShape.Rows, res.OriginalShape.Columns,
					res.ProcessedShape.Rows, res.ProcessedShape.Columns)
				for _, change := range res.Changes {
					_, _ = fmt.Fprintf(w, "  - %s\n", change)
				}
				if len(res.Preview) == 0 {
					return
				}
				cols := make([]string, 0, len(res.Preview[0]))
				for name := range res.Preview[0] {
					cols = append(cols, name)
				}
				sort.Strings(cols)
				t := newTable(w)
				header := make(table.Row, len(cols))
				for i, col := range cols {
					header[i] = col
				}
				t.AppendHeader(header)
				for _, rowMap := range res.Preview {
					row := make(table.Row, len(cols))
					for i, col := range cols {
						row[i] = formatValue(rowMap[col])
					}
					t.AppendRow(row)
				}
				t.Render()
			})
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "mean", "Strategy (mean|median|mode|drop|fill_zero)")
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Columns to process (default: all)")

	_ = cmd.RegisterFlagCompletionFunc("strategy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return analyze.ImputeStrategies, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
