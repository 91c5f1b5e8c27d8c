package commands

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Profile the columns of a dataset",
		Long:  `Show each column's inferred type, non-null count, null count, and unique count.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.ColumnInfo(args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				t := newTable(w)
				t.AppendHeader(table.Row{"Column", "Type", "Non-Null", "Null", "Unique"})
				for _, col := range res.Columns {
					t.AppendRow(table.Row{col.Name, col.Dtype, col.NonNullCount, col.NullCount, col.UniqueCount})
				}
				t.Render()
			})
		},
	}
}
