package commands

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvprobe/internal/analyze"
)

// NewCorrCommand creates the corr command.
func NewCorrCommand() *cobra.Command {
	var method string
	var columns []string

	cmd := &cobra.Command{
		Use:   "corr <path>",
		Short: "Correlation matrix of numeric columns",
		Long: `Compute the pairwise correlation matrix of numeric columns.

Supported methods: ` + strings.Join(analyze.CorrelationMethods, ", ") + `.
Coefficients use pairwise-complete observations: rows missing in either
column of a pair are dropped for that pair only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.Correlation(args[0], columns, method)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				t := newTable(w)
				header := make(table.Row, len(res.Columns)+1)
				header[0] = res.Method
				for i, col := range res.Columns {
					header[i+1] = col
				}
				t.AppendHeader(header)
				for i, col := range res.Columns {
					row := make(table.Row, len(res.Columns)+1)
					row[0] = col
					for j := range res.Columns {
						row[j+1] = formatFloat(res.Matrix[i][j])
					}
					t.AppendRow(row)
				}
				t.Render()
			})
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "pearson", "Correlation method (pearson|spearman|kendall)")
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Columns to include (default: all numeric)")

	_ = cmd.RegisterFlagCompletionFunc("method", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return analyze.CorrelationMethods, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
