package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvprobe/internal/config"
	"github.com/leapstack-labs/csvprobe/internal/mcp"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP analysis server",
		Long: `Run the MCP server exposing the analysis tools to clients.

With the stdio transport (the default) the server speaks newline-delimited
JSON-RPC on stdin/stdout, which is how MCP clients typically launch it.
The http transport serves the same protocol on POST /mcp.`,
		Example: `  # Serve over stdio for an MCP client
  csvprobe serve --data-root ./data

  # Serve over HTTP
  csvprobe serve --transport http --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, cfg, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}
			logger := config.GetLogger(cmd.Context())

			// Local flags override the loaded config.
			if cmd.Flags().Changed("transport") {
				cfg.Transport, _ = cmd.Flags().GetString("transport")
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
			}

			switch cfg.Transport {
			case "stdio":
				srv := mcp.NewServerWithLogger(analyzer, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
				return srv.Run()
			case "http":
				srv := mcp.NewServerWithLogger(analyzer, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				logger.Info("serving http", "addr", cfg.HTTPAddr, "data_root", analyzer.DataRoot())
				return srv.ServeHTTP(ctx, cfg.HTTPAddr)
			default:
				return fmt.Errorf("unknown transport %q", cfg.Transport)
			}
		},
	}

	cmd.Flags().String("transport", "", "Server transport (stdio|http)")
	cmd.Flags().String("addr", "", "HTTP listen address")

	_ = cmd.RegisterFlagCompletionFunc("transport", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"stdio", "http"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
