package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/testutil"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", testutil.NewTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_OpenMigrateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	require.NoError(t, store.Migrate())
	// Migrating twice is a no-op.
	require.NoError(t, store.Migrate())

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, store.Close())

	// The schema survives reopening.
	store, err = Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate())
	_, err = store.CreateRun("cards.yaml")
	require.NoError(t, err)
}

func TestStore_RunLifecycle(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.CreateRun("cards.yaml")
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, RunStatusRunning, run.Status)

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "cards.yaml", got.Corpus)
	assert.Nil(t, got.CompletedAt)

	stats := RunStats{Cards: 2, Lines: 5, Parsed: 3, Failed: 1, Unsupported: 1}
	require.NoError(t, store.CompleteRun(run.ID, stats))

	got, err = store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusCompleted, got.Status)
	assert.Equal(t, stats, got.Stats)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.StartedAt))
	assert.Empty(t, got.Error)
}

func TestStore_FailRun(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.CreateRun("cards.yaml")
	require.NoError(t, err)
	require.NoError(t, store.FailRun(run.ID, RunStats{Cards: 1}, "context canceled"))

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, "context canceled", got.Error)
}

func TestStore_RunNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")

	err = store.CompleteRun("nope", RunStats{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestStore_LatestRun(t *testing.T) {
	store := setupTestStore(t)

	latest, err := store.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)

	first, err := store.CreateRun("a.yaml")
	require.NoError(t, err)
	second, err := store.CreateRun("b.yaml")
	require.NoError(t, err)

	latest, err = store.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestStore_Lines(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.CreateRun("cards.yaml")
	require.NoError(t, err)

	require.NoError(t, store.RecordLine(run.ID, LineRecord{
		Card: "Shock", Source: "cards.yaml:1", Index: 0,
		Text: "Shock deals 2 damage to any target.", Status: LineParsed, Kind: "StatementLine",
	}))
	require.NoError(t, store.RecordLines(run.ID, []LineRecord{
		{Card: "Oddity", Index: 0, Text: "Blorp the flumph.", Status: LineFailed, Error: "no recognized verb"},
		{Card: "Oddity", Index: 1, Text: "Flying", Status: LineParsed, Kind: "StaticLine"},
		{Card: "Oddity", Index: 2, Text: "Flumph.", Status: LineUnsupported, Kind: "StaticLine", Error: "unsupported"},
	}))

	all, err := store.ListLines(run.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Shock", all[0].Card)
	assert.Equal(t, "cards.yaml:1", all[0].Source)
	assert.Equal(t, LineParsed, all[0].Status)
	assert.Equal(t, "Blorp the flumph.", all[1].Text)

	failures, err := store.ListLines(run.ID, true)
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, LineFailed, failures[0].Status)
	assert.Equal(t, "no recognized verb", failures[0].Error)
	assert.Equal(t, LineUnsupported, failures[1].Status)
}

func TestStore_LineNeedsRun(t *testing.T) {
	store := setupTestStore(t)

	err := store.RecordLine("missing", LineRecord{Card: "X", Text: "Flying", Status: LineParsed})
	require.Error(t, err)

	err = store.RecordLines("missing", []LineRecord{{Card: "X", Text: "Flying", Status: LineParsed}})
	require.Error(t, err)

	lines, err := store.ListLines("missing", false)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRunStats_Coverage(t *testing.T) {
	assert.InDelta(t, 1.0, RunStats{}.Coverage(), 1e-9)
	assert.InDelta(t, 0.75, RunStats{Lines: 4, Parsed: 3}.Coverage(), 1e-9)
}
