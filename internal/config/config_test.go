package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDataRoot, cfg.DataRoot)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoad_ConfigFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "csvprobe.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_root: datasets\noutput: json\nverbose: true\n"), 0o644))

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, cfgPath, GetConfigFileUsed())

	// Relative data_root from a config file resolves against the file's directory.
	assert.Equal(t, filepath.Join(dir, "datasets"), cfg.DataRoot)
}

func TestLoad_FindsFileInWorkingDir(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "csvprobe.yml"), []byte("output: json\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, ConfigFileNameAlt, GetConfigFileUsed())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "csvprobe.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: table\n"), 0o644))
	t.Setenv("CSVPROBE_OUTPUT", "json")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("CSVPROBE_DATA_ROOT", "/from/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-root", DefaultDataRoot, "")
	flags.String("addr", DefaultHTTPAddr, "")
	require.NoError(t, flags.Parse([]string{"--data-root", "/from/flag", "--addr", ":9090"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.DataRoot)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("CSVPROBE_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", DefaultOutput, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{"valid table stdio", Config{Output: "table", Transport: "stdio"}, ""},
		{"valid json http", Config{Output: "json", Transport: "http"}, ""},
		{"bad output", Config{Output: "xml", Transport: "stdio"}, "invalid output format"},
		{"bad transport", Config{Output: "table", Transport: "grpc"}, "invalid transport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestLoad_InvalidOutputRejected(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("CSVPROBE_OUTPUT", "csv")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
