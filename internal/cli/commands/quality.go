package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewQualityCommand creates the quality command.
func NewQualityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quality <path>",
		Short: "Comprehensive data quality report",
		Long: `Produce a data quality report for a dataset: per-column profiles,
duplicate-row counts, and a 0-100 severity score (higher is worse).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.QualityReport(args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				t := newTable(w)
				t.AppendHeader(table.Row{"Column", "Type", "Non-Null", "Null", "Unique", "Detail"})
				for _, col := range res.Columns {
					detail := ""
					switch {
					case col.Numeric != nil:
						detail = fmt.Sprintf("mean %s, %d zeros, %d negative",
							formatFloat(col.Numeric.Mean), col.Numeric.ZeroCount, col.Numeric.NegativeCount)
					case col.Text != nil:
						detail = fmt.Sprintf("most frequent %q (%d)",
							col.Text.MostFrequent, col.Text.MostFrequentCount)
					}
					t.AppendRow(table.Row{col.Name, col.Dtype, col.NonNullCount, col.NullCount, col.UniqueCount, detail})
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "%d rows x %d columns, %d duplicate rows (%s)\n",
					res.Metrics.TotalRows, res.Metrics.TotalColumns,
					res.Metrics.DuplicateRows, formatPct(res.Metrics.DuplicatePercentage))
				_, _ = fmt.Fprintf(w, "Severity score: %.1f/100\n", res.SeverityScore)
				for _, rec := range res.Recommendations {
					_, _ = fmt.Fprintf(w, "  - %s\n", rec)
				}
			})
		},
	}
}
