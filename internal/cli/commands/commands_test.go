package commands

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/cli/testutil"
	"github.com/maigus-labs/maigus/internal/config"
)

// testContext returns a context carrying a config with the given output
// and a state database in a temporary directory.
func testContext(t *testing.T, output string) context.Context {
	t.Helper()
	cfg := config.Default()
	cfg.Output = output
	cfg.Workers = 2
	cfg.StatePath = filepath.Join(t.TempDir(), "state", "state.db")
	return config.WithConfig(context.Background(), cfg)
}

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand()

	assert.Equal(t, "parse <text>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"name", "short-name", "tags"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewBatchCommand(t *testing.T) {
	cmd := NewBatchCommand()

	assert.Equal(t, "batch <corpus.yaml>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"workers", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewAuditCommand(t *testing.T) {
	cmd := NewAuditCommand()

	assert.Equal(t, "audit <corpus.yaml>", cmd.Use)
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "list"}, names)
}

func TestParseCommand_Text(t *testing.T) {
	out, _, err := testutil.Execute(testContext(t, "text"), NewParseCommand(),
		"--name", "Grizzly Bears", "When Grizzly Bears enters, draw a card.")
	require.NoError(t, err)

	assert.Contains(t, out, "TriggeredLine")
	assert.Contains(t, out, "Draw")
}

func TestParseCommand_JSON(t *testing.T) {
	out, _, err := testutil.Execute(testContext(t, "json"), NewParseCommand(), "Draw a card.")
	require.NoError(t, err)
	testutil.AssertNoANSI(t, out)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "StatementLine", got["type"])
}

func TestParseCommand_Tags(t *testing.T) {
	out, _, err := testutil.Execute(testContext(t, "text"), NewParseCommand(), "--tags", "Exile target creature.")
	require.NoError(t, err)
	assert.Contains(t, out, "StatementLine")
	assert.Contains(t, out, "target [6,12) \"target\"")
}

func TestParseCommand_CardText(t *testing.T) {
	out, _, err := testutil.Execute(testContext(t, "text"), NewParseCommand(),
		"Choose one —\n• Draw a card.\n• You gain 3 life.")
	require.NoError(t, err)

	assert.Contains(t, out, "line 0: Choose one —")
	assert.Contains(t, out, "  ModalLine")
	assert.Contains(t, out, "(attached to the line above)")
}

func TestParseCommand_CardTextJSON(t *testing.T) {
	out, _, err := testutil.Execute(testContext(t, "json"), NewParseCommand(), "Blorp the flumph.\nFlying")
	require.Error(t, err)

	var lines []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 2)
	assert.NotEmpty(t, lines[0]["error"])
	assert.Nil(t, lines[0]["ast"])
	assert.NotNil(t, lines[1]["ast"])
}

func TestParseCommand_Error(t *testing.T) {
	_, _, err := testutil.Execute(testContext(t, "text"), NewParseCommand(), "Blorp the flumph.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flumph")
}

func TestParseCommand_ReminderOnly(t *testing.T) {
	out, _, err := testutil.Execute(testContext(t, "text"), NewParseCommand(), "(This is reminder text.)")
	require.NoError(t, err)
	assert.Equal(t, "(no rules text)\n", out)
}

func TestBatchCommand_Clean(t *testing.T) {
	path := testutil.WriteCorpus(t, testutil.CleanCorpus)

	out, _, err := testutil.Execute(testContext(t, "table"), NewBatchCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "(0 failing lines)")
	assert.Contains(t, out, "coverage: 100.0%")
}

func TestBatchCommand_Failures(t *testing.T) {
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	out, _, err := testutil.Execute(testContext(t, "table"), NewBatchCommand(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 cards failed")
	assert.Contains(t, out, "Test Oddity")
	assert.Contains(t, out, "failed: 1")
}

func TestBatchCommand_FailureOutputIsOnlyTheReport(t *testing.T) {
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	out, stderr, err := testutil.Execute(testContext(t, "json"), NewBatchCommand(), path)
	require.Error(t, err)
	assert.NotContains(t, out, "Usage:")
	assert.NotContains(t, stderr, "Usage:")
	assert.True(t, json.Valid([]byte(out)), "stdout should be a single JSON document")
}

func TestBatchCommand_JSON(t *testing.T) {
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	out, _, err := testutil.Execute(testContext(t, "json"), NewBatchCommand(), path)
	require.Error(t, err)

	var got reportJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, path, got.Corpus)
	assert.Equal(t, 3, got.Stats.Cards)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "Test Oddity", got.Failures[0].Card)
	assert.Equal(t, "Blorp the flumph.", got.Failures[0].Text)
}

func TestBatchCommand_MissingFile(t *testing.T) {
	_, _, err := testutil.Execute(testContext(t, "table"), NewBatchCommand(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestAuditCommands(t *testing.T) {
	ctx := testContext(t, "text")
	path := testutil.WriteCorpus(t, testutil.SampleCorpus)

	out, _, err := testutil.Execute(ctx, NewAuditCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "run ")
	assert.Contains(t, out, "failed: 1")

	out, _, err = testutil.Execute(ctx, NewAuditCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "Blorp the flumph.")
	assert.NotContains(t, out, "Flying")

	out, _, err = testutil.Execute(ctx, NewAuditCommand(), "show", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Flying")

	out, _, err = testutil.Execute(ctx, NewAuditCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestAuditShow_NoRuns(t *testing.T) {
	_, _, err := testutil.Execute(testContext(t, "text"), NewAuditCommand(), "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audit runs")
}

func TestAuditShow_UnknownRun(t *testing.T) {
	_, _, err := testutil.Execute(testContext(t, "text"), NewAuditCommand(), "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
