package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewCategoricalCommand creates the categorical command.
func NewCategoricalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categorical <path> <column>",
		Short: "Analyze the value distribution of a categorical column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.AnalyzeCategorical(args[0], args[1])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				t := newTable(w)
				t.AppendHeader(table.Row{"Value", "Count", "Percentage"})
				for _, vc := range res.ValueCounts {
					t.AppendRow(table.Row{vc.Value, vc.Count, formatPct(vc.Percentage)})
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "%d unique values, mode %q (%d), entropy %.3f bits\n",
					res.UniqueCount, res.Mode, res.ModeFrequency, res.Entropy)
				for _, rec := range res.Recommendations {
					_, _ = fmt.Fprintf(w, "  - %s\n", rec)
				}
			})
		},
	}
}
