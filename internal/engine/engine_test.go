package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/internal/loader"
	"github.com/maigus-labs/maigus/internal/state"
	"github.com/maigus-labs/maigus/internal/testutil"
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/parser"
)

func newTestEngine(t *testing.T, allowUnsupported bool) *Engine {
	t.Helper()
	return New(Config{
		Parser:  parser.Config{AllowUnsupported: allowUnsupported},
		Workers: 4,
		Logger:  testutil.NewTestLogger(t),
	})
}

func testCards() []loader.Card {
	return []loader.Card{
		{Name: "Grizzly Bears", ShortName: "Grizzly Bears", Text: "When Grizzly Bears enters, draw a card."},
		{Name: "Test Drake", ShortName: "Test Drake", Text: "Flying"},
		{Name: "Test Oddity", ShortName: "Test Oddity", Text: "Blorp the flumph.\nFlying"},
		{Name: "Test Charm", ShortName: "Test Charm", Text: "Choose one —\n• Draw a card.\n• You gain 3 life."},
	}
}

func TestNew_Defaults(t *testing.T) {
	e := New(Config{})
	assert.Positive(t, e.Workers())
	assert.Equal(t, DefaultDebounce, e.debounce)
	assert.NotNil(t, e.logger)
}

func TestParseCard(t *testing.T) {
	e := newTestEngine(t, false)

	res := e.ParseCard(testCards()[0])
	require.NoError(t, res.Err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "TriggeredLine", res.Lines[0].Kind())
	assert.Equal(t, state.LineParsed, res.Lines[0].Status())
}

func TestParseCard_Failure(t *testing.T) {
	e := newTestEngine(t, false)

	res := e.ParseCard(testCards()[2])
	require.Error(t, res.Err)
	assert.True(t, parser.IsParseError(res.Err))
	require.Len(t, res.Lines, 2)
	assert.Equal(t, state.LineFailed, res.Lines[0].Status())
	assert.Empty(t, res.Lines[0].Kind())
	assert.Equal(t, state.LineParsed, res.Lines[1].Status())
}

func TestParseCard_AllowUnsupported(t *testing.T) {
	e := newTestEngine(t, true)

	res := e.ParseCard(testCards()[2])
	require.NoError(t, res.Err)
	require.Len(t, res.Lines, 2)

	first := res.Lines[0]
	assert.True(t, first.Unsupported)
	assert.Equal(t, state.LineUnsupported, first.Status())
	st, ok := first.Ast.(*core.StaticLine)
	require.True(t, ok)
	require.Len(t, st.Abilities, 1)
	marker, ok := st.Abilities[0].(*core.UnsupportedLine)
	require.True(t, ok)
	assert.Equal(t, "Blorp the flumph.", marker.Text)
	assert.Contains(t, marker.Reason, "line 0")
}

func TestParseCorpus(t *testing.T) {
	e := newTestEngine(t, false)

	report, err := e.ParseCorpus(context.Background(), testCards())
	require.NoError(t, err)
	require.Len(t, report.Cards, 4)
	for i, c := range testCards() {
		assert.Equal(t, c.Name, report.Cards[i].Card.Name, "results keep input order")
	}

	assert.Equal(t, state.RunStats{Cards: 4, Lines: 5, Parsed: 4, Failed: 1}, report.Stats)
	failed := report.FailedCards()
	require.Len(t, failed, 1)
	assert.Equal(t, "Test Oddity", failed[0].Card.Name)
}

func TestParseCorpus_AllowUnsupportedStats(t *testing.T) {
	e := newTestEngine(t, true)

	report, err := e.ParseCorpus(context.Background(), testCards())
	require.NoError(t, err)
	assert.Equal(t, state.RunStats{Cards: 4, Lines: 5, Parsed: 4, Unsupported: 1}, report.Stats)
	assert.Empty(t, report.FailedCards())
}

func TestParseCorpus_ManyCards(t *testing.T) {
	e := newTestEngine(t, false)

	var cards []loader.Card
	for i := range 50 {
		name := fmt.Sprintf("Card %02d", i)
		cards = append(cards, loader.Card{Name: name, ShortName: name, Text: "Draw a card."})
	}
	report, err := e.ParseCorpus(context.Background(), cards)
	require.NoError(t, err)
	for i, c := range report.Cards {
		assert.Equal(t, cards[i].Name, c.Card.Name)
		assert.NoError(t, c.Err)
	}
	assert.Equal(t, 50, report.Stats.Parsed)
}

func TestParseCorpus_Canceled(t *testing.T) {
	e := newTestEngine(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.ParseCorpus(ctx, testCards())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseCorpus_Empty(t *testing.T) {
	report, err := newTestEngine(t, false).ParseCorpus(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Cards)
	assert.InDelta(t, 1.0, report.Stats.Coverage(), 1e-9)
}

func TestReport_Records(t *testing.T) {
	e := newTestEngine(t, false)

	report, err := e.ParseCorpus(context.Background(), testCards()[2:])
	require.NoError(t, err)

	recs := report.Records()
	require.Len(t, recs, 5)
	assert.Equal(t, state.LineFailed, recs[0].Status)
	assert.NotEmpty(t, recs[0].Error)
	assert.Equal(t, "StaticLine", recs[1].Kind)
	assert.Equal(t, "ModalLine", recs[2].Kind)
	assert.Equal(t, state.LineAttached, recs[3].Status)
	assert.Equal(t, state.LineAttached, recs[4].Status)
}
