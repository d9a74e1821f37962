package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/state"
	"github.com/maigus-labs/maigus/internal/testutil"
)

const testCorpus = `- name: Grizzly Bears
  text: When Grizzly Bears enters, draw a card.
- name: Test Oddity
  text: |-
    Blorp the flumph.
    Flying
`

func writeCorpus(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAudit(t *testing.T) {
	store, err := state.Open(":memory:", testutil.NewTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	defer func() { _ = store.Close() }()

	path := writeCorpus(t, t.TempDir(), testCorpus)
	run, report, err := newTestEngine(t, false).Audit(context.Background(), store, path)
	require.NoError(t, err)

	assert.Equal(t, state.RunStatusCompleted, run.Status)
	assert.Equal(t, path, run.Corpus)
	assert.Equal(t, report.Stats, run.Stats)
	assert.Equal(t, state.RunStats{Cards: 2, Lines: 3, Parsed: 2, Failed: 1}, run.Stats)

	failures, err := store.ListLines(run.ID, true)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "Test Oddity", failures[0].Card)
	assert.Equal(t, "Blorp the flumph.", failures[0].Text)
	assert.Contains(t, failures[0].Source, "cards.yaml:")
}

func TestAudit_MissingCorpusFailsRun(t *testing.T) {
	store, err := state.Open(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	defer func() { _ = store.Close() }()

	_, _, err = newTestEngine(t, false).Audit(context.Background(), store, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	latest, err := store.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, state.RunStatusFailed, latest.Status)
	assert.NotEmpty(t, latest.Error)
}
