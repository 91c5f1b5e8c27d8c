// Package commands implements the csvprobe subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvprobe/internal/analyze"
	"github.com/leapstack-labs/csvprobe/internal/config"
	"github.com/leapstack-labs/csvprobe/internal/sandbox"
)

// newAnalyzer builds an Analyzer over the configured data root.
func newAnalyzer(cmd *cobra.Command) (*analyze.Analyzer, *config.Config, error) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	root, err := sandbox.New(cfg.DataRoot)
	if err != nil {
		return nil, nil, err
	}
	return analyze.New(root, config.GetLogger(ctx)), cfg, nil
}
