package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvprobe/internal/analyze"
)

// NewOutliersCommand creates the outliers command.
func NewOutliersCommand() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "outliers <path> <column>",
		Short: "Detect outliers in a numeric column",
		Long: `Detect outliers in a numeric column.

Supported methods: ` + strings.Join(analyze.OutlierMethods, ", ") + `.
The iqr method flags values outside 1.5 interquartile ranges of the
quartiles; zscore flags values more than 3 standard deviations from
the mean.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.DetectOutliers(args[0], args[1], method)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				if res.TotalOutliers == 0 {
					_, _ = fmt.Fprintf(w, "No outliers in %s (%s)\n", res.Column, res.Method)
					return
				}
				t := newTable(w)
				t.AppendHeader(table.Row{"Index", "Value", "Score"})
				for _, o := range res.Outliers {
					t.AppendRow(table.Row{o.Index, fmt.Sprintf("%g", o.Value), fmt.Sprintf("%.3f", o.Score)})
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "%d outliers (%s of values) in %s (%s)\n",
					res.TotalOutliers, formatPct(res.OutlierPercentage), res.Column, res.Method)
			})
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "iqr", "Detection method (iqr|zscore)")

	_ = cmd.RegisterFlagCompletionFunc("method", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return analyze.OutlierMethods, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
