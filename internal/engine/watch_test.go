package engine

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/testutil"
)

func TestWatch(t *testing.T) {
	path := writeCorpus(t, t.TempDir(), "- name: Test Drake\n  text: Flying\n")

	e := New(Config{Workers: 2, Debounce: 20 * time.Millisecond, Logger: testutil.NewTestLogger(t)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan *Report, 8)
	done := make(chan error, 1)
	go func() {
		done <- e.Watch(ctx, path, func(r *Report, err error) {
			if err == nil {
				reports <- r
			}
		})
	}()

	wait := func() *Report {
		t.Helper()
		select {
		case r := <-reports:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a report")
			return nil
		}
	}

	first := wait()
	assert.Equal(t, 1, first.Stats.Cards)

	require.NoError(t, os.WriteFile(path, []byte("- name: Test Drake\n  text: Flying\n- name: Test Kraken\n  text: Draw a card.\n"), 0o600))
	// A save can surface as several events; wait for the settled content.
	second := wait()
	for second.Stats.Cards != 2 {
		second = wait()
	}
	assert.Equal(t, path, second.Corpus)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	e := New(Config{})
	err := e.Watch(context.Background(), "/nonexistent/dir/cards.yaml", func(*Report, error) {})
	require.Error(t, err)
}
