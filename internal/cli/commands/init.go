package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/csvprobe/internal/config"
)

// sampleCSV gives a fresh project something to probe.
const sampleCSV = `id,name,score
1,alpha,0.92
2,beta,0.77
3,gamma,
4,delta,0.85
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a csvprobe project",
		Long: `Initialize a csvprobe project with a configuration file and data directory.

This creates:
  - csvprobe.yaml configuration file
  - data/ directory with a sample dataset`,
		Example: `  # Initialize in the current directory
  csvprobe init

  # Initialize in a new directory
  csvprobe init my-project

  # Overwrite an existing configuration
  csvprobe init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	cfg := config.Config{}
	config.ApplyDefaults(&cfg)
	data, err := yaml.Marshal(&yamlConfig{
		DataRoot:  cfg.DataRoot,
		Output:    cfg.Output,
		Transport: cfg.Transport,
		HTTPAddr:  cfg.HTTPAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	samplePath := filepath.Join(dataDir, "sample.csv")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if err := os.WriteFile(samplePath, []byte(sampleCSV), 0o644); err != nil {
			return fmt.Errorf("failed to write sample dataset: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Created %s\n", configPath)
	_, _ = fmt.Fprintf(out, "Created %s\n", samplePath)
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "csvprobe project initialized!")
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "Next steps:")
	_, _ = fmt.Fprintln(out, "  1. Drop CSV files into data/")
	_, _ = fmt.Fprintln(out, "  2. Run 'csvprobe list' to see datasets")
	_, _ = fmt.Fprintln(out, "  3. Run 'csvprobe describe sample.csv' for statistics")
	_, _ = fmt.Fprintln(out, "  4. Run 'csvprobe serve' to expose the tools to an MCP client")
	return nil
}

// yamlConfig mirrors Config with yaml tags so the generated file uses the
// same keys the loader reads.
type yamlConfig struct {
	DataRoot  string `yaml:"data_root"`
	Output    string `yaml:"output"`
	Transport string `yaml:"transport"`
	HTTPAddr  string `yaml:"http_addr"`
}
