package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/testutil"
	"github.com/maigus-labs/maigus/pkg/parser"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 0, "")
	fs.String("state", "", "")
	fs.StringP("output", "o", "", "")
	fs.Bool("verbose", false, "")
	fs.Bool("trace", false, "")
	fs.Bool("stacktrace", false, "")
	fs.Bool("allow-unsupported", false, "")
	return fs
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, parser.Config{}, cfg.ParserSettings())
	assert.Empty(t, cfg.FileUsed)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ConfigFileName, `
workers: 4
output: json
parser:
  trace: true
  allow_unsupported: true
`)
	cfg, err := load("", dir, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.FileUsed)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, parser.Config{Trace: true, AllowUnsupported: true}, cfg.ParserSettings())
}

func TestLoad_AltFileName(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ConfigFileNameAlt, "workers: 2\n")
	cfg, err := load("", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.FileUsed)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, "workers: 4\nstate_path: from-file.db\n")
	t.Setenv("MAIGUS_WORKERS", "8")
	t.Setenv("MAIGUS_STATE_PATH", "from-env.db")
	t.Setenv(parser.EnvTrace, "yes")
	t.Setenv(parser.EnvStackTrace, "True")
	t.Setenv("MAIGUS_UNRELATED", "ignored")

	cfg, err := load("", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "from-env.db", cfg.StatePath)
	assert.True(t, cfg.Parser.Trace)
	assert.False(t, cfg.Parser.StackTrace, "only the exact truthy spellings enable a flag")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("MAIGUS_WORKERS", "8")
	t.Setenv("MAIGUS_OUTPUT", "table")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--workers", "3", "--state", "flag.db", "--allow-unsupported"}))

	cfg, err := load("", t.TempDir(), fs)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "flag.db", cfg.StatePath)
	assert.Equal(t, "table", cfg.Output, "unset flags do not clobber the environment")
	assert.True(t, cfg.Parser.AllowUnsupported)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative workers", "workers: -1\n", "workers must not be negative"},
		{"unknown output", "output: xml\n", "unknown output format"},
		{"empty state path", "state_path: \"\"\n", "state_path is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ConfigFileName, tt.body)
			_, err := load("", dir, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Workers: 3, StatePath: "x.db", Output: "json"}
	logger := testutil.NewTestLogger(t)
	ctx = WithLogger(WithConfig(ctx, cfg), logger)
	assert.Same(t, cfg, FromContext(ctx))
	assert.Same(t, logger, GetLogger(ctx))
}

func TestEnvBindings(t *testing.T) {
	bindings := EnvBindings()
	require.Len(t, bindings, 6)
	assert.Equal(t, EnvBinding{Var: "MAIGUS_OUTPUT", Key: "output"}, bindings[0])
	assert.Equal(t, EnvBinding{Var: parser.EnvAllowUnsupported, Key: "parser.allow_unsupported"}, bindings[1])
	for i := 1; i < len(bindings); i++ {
		assert.Less(t, bindings[i-1].Var, bindings[i].Var)
	}
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "state_path", FlagKey("state"))
	assert.Equal(t, "parser.allow_unsupported", FlagKey("allow-unsupported"))
	assert.Equal(t, "output", FlagKey("output"))
	assert.Equal(t, "some_flag", FlagKey("some-flag"))
}
