package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List CSV datasets under the data root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			res, err := analyzer.ListDatasets()
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cfg.Output, res, func(w io.Writer) {
				if len(res.Datasets) == 0 {
					_, _ = fmt.Fprintf(w, "No CSV files under %s\n", res.DataRoot)
					return
				}
				t := newTable(w)
				t.AppendHeader(table.Row{"Dataset"})
				for _, name := range res.Datasets {
					t.AppendRow(table.Row{name})
				}
				t.Render()
				_, _ = fmt.Fprintf(w, "(%d datasets under %s)\n", len(res.Datasets), res.DataRoot)
			})
		},
	}
}
