package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvprobe/internal/analyze"
	"github.com/leapstack-labs/csvprobe/internal/config"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	rootCmd := NewRootCmd()

	expected := []string{
		"version", "serve", "list", "preview", "info", "missing",
		"describe", "corr", "outliers", "categorical", "quality",
		"impute", "init", "completion",
	}
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range expected {
		assert.Contains(t, names, name)
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	rootCmd := NewRootCmd()
	for _, flag := range []string{"config", "data-root", "verbose", "output"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestExecute_ListWithFlags(t *testing.T) {
	config.ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.csv"), []byte("a,b\n1,2\n"), 0o644))
	t.Chdir(dir)

	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"list", "--data-root", dir, "-o", "json"})
	require.NoError(t, rootCmd.Execute())

	var res analyze.ListDatasetsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, []string{"sample.csv"}, res.Datasets)
}

func TestExecute_MissingDataRootFails(t *testing.T) {
	config.ResetConfig()
	t.Chdir(t.TempDir())

	rootCmd := NewRootCmd()
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"list"})
	err := rootCmd.Execute()
	require.Error(t, err, "default ./data does not exist here")
}

func TestVersionFlag(t *testing.T) {
	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), Version)
}
