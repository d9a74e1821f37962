package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/cli"
)

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| x\\|y | z |\n\n", string(w.Bytes()))

	empty := NewMarkdownWriter()
	empty.Table([]string{"A"}, nil)
	assert.Empty(t, empty.Bytes())
}

func TestMarkdownWriter_Frontmatter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Frontmatter("parse", "Parse: one line")
	assert.Equal(t, "---\ntitle: parse\ndescription: \"Parse: one line\"\n---\n\n", string(w.Bytes()))
}

func TestCleanExample(t *testing.T) {
	got := cleanExample("  # Parse\n  maigus parse \"Draw a card.\"\n")
	assert.Equal(t, "# Parse\nmaigus parse \"Draw a card.\"", got)
}

func TestWriteCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeCLIDocs(cli.NewRootCmd(), dir))

	for _, name := range []string{"index.md", "parse.md", "batch.md", "audit.md", "audit-show.md", "audit-list.md", "version.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "`MAIGUS_PARSER_ALLOW_UNSUPPORTED`")
	assert.Contains(t, string(index), "`--allow-unsupported`")
	assert.Contains(t, string(index), "| `parser.allow_unsupported` | `--allow-unsupported` | `MAIGUS_PARSER_ALLOW_UNSUPPORTED` | `false` |")
	assert.Contains(t, string(index), "[`audit show`](audit-show)")

	audit, err := os.ReadFile(filepath.Join(dir, "audit.md"))
	require.NoError(t, err)
	assert.Contains(t, string(audit), "maigus audit <subcommand> [options]")
	assert.Contains(t, string(audit), "`show`")
	assert.Contains(t, string(audit), "## Exit Status")

	batch, err := os.ReadFile(filepath.Join(dir, "batch.md"))
	require.NoError(t, err)
	assert.Contains(t, string(batch), "`--workers`")
	assert.Contains(t, string(batch), "Exits 1 when any card fails to parse")
}

func TestSettingsRows(t *testing.T) {
	rows := settingsRows(cli.NewRootCmd().PersistentFlags())
	byKey := map[string][]string{}
	for _, r := range rows {
		byKey[r[0]] = r
	}
	assert.Equal(t, []string{"`state_path`", "`--state`", "`MAIGUS_STATE_PATH`", "`.maigus/state.db`"}, byKey["`state_path`"])
	assert.Equal(t, []string{"`workers`", "-", "`MAIGUS_WORKERS`", "`0`"}, byKey["`workers`"])
	assert.Equal(t, []string{"`verbose`", "`--verbose`", "-", "`false`"}, byKey["`verbose`"])
}

func TestGenerateSchemaDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateSchemaDocs(dir))

	b, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "`parser.allow_unsupported`")
	assert.Contains(t, string(b), "`.maigus/state.db`")
}
