package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/cli/testutil"
	"github.com/maigus-labs/maigus/internal/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return testutil.Execute(context.Background(), NewRootCmd(), args...)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"parse", "batch", "audit", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := NewRootCmd().PersistentFlags()
	for _, name := range []string{"config", "state", "verbose", "output", "trace", "stacktrace", "allow-unsupported"} {
		assert.NotNil(t, flags.Lookup(name), "flag %q should exist", name)
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "maigus v"+Version)
}

func TestRootCmd_ParseJSON(t *testing.T) {
	out, _, err := run(t, "-o", "json", "parse", "Draw a card.")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "StatementLine", got["type"])
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	_, _, err := run(t, "-o", "yaml", "parse", "Draw a card.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootCmd_BatchAllowUnsupportedFlag(t *testing.T) {
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	_, _, err := run(t, "batch", path, "--workers", "2")
	require.Error(t, err)

	out, _, err := run(t, "--allow-unsupported", "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "unsupported: 1")
}

func TestRootCmd_BatchAllowUnsupportedEnv(t *testing.T) {
	t.Setenv("MAIGUS_PARSER_ALLOW_UNSUPPORTED", "1")
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	_, _, err := run(t, "batch", path)
	require.NoError(t, err)
}

func TestRootCmd_AuditWithStateFlag(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "audit", "state.db")
	path := testutil.WriteCorpus(t, testutil.CleanCorpus)

	out, _, err := run(t, "--state", statePath, "audit", path)
	require.NoError(t, err)
	assert.Contains(t, out, "coverage: 100.0%")
	assert.FileExists(t, statePath)

	out, _, err = run(t, "--state", statePath, "audit", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "(0 failing lines)")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\nparser:\n  allow_unsupported: true\n"), 0o600))
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	out, _, err := run(t, "--config", cfgPath, "batch", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, path, got["corpus"])
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	path := testutil.WriteCorpus(t, testutil.CleanCorpus)

	out, errOut, err := run(t, "-v", "batch", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "corpus parsed")
	assert.NotContains(t, out, "corpus parsed")
}
