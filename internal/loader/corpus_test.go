package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SequenceAndDocuments(t *testing.T) {
	input := `
- name: Grizzly Bears
  mana_cost: "{1}{G}"
  text: ""
- name: Llanowar Elves
  mana_cost: "{G}"
  text: "{T}: Add {G}."
---
name: Ragavan, Nimble Pilferer
mana_cost: "{R}"
text: |
  Whenever Ragavan deals combat damage to a player, create a Treasure token.
  Dash {1}{R}
`
	cards, err := Load(strings.NewReader(input), "cards.yaml")
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "Grizzly Bears", cards[0].Name)
	assert.Equal(t, "{1}{G}", cards[0].ManaCost.String())
	assert.Empty(t, cards[0].ShortName)
	assert.Equal(t, "cards.yaml:2", cards[0].Source)

	assert.Equal(t, "{T}: Add {G}.", cards[1].Text)

	assert.Equal(t, "Ragavan", cards[2].ShortName, "titled legends get a short name")
	assert.Equal(t, "Whenever Ragavan deals combat damage to a player, create a Treasure token.\nDash {1}{R}", cards[2].Text)
}

func TestLoad_ExplicitShortName(t *testing.T) {
	cards, err := Load(strings.NewReader("name: Jace, the Mind Sculptor\nshort_name: Jace Beleren\n"), "x")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Jace Beleren", cards[0].ShortName)
	assert.True(t, cards[0].ManaCost.IsEmpty())
}

func TestLoad_NFC(t *testing.T) {
	decomposed := "Se\u0301ance"
	cards, err := Load(strings.NewReader("name: \""+decomposed+"\"\ntext: \"When "+decomposed+" enters, draw a card.\"\n"), "x")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "S\u00e9ance", cards[0].Name)
	assert.Equal(t, "When S\u00e9ance enters, draw a card.", cards[0].Text)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad yaml", "name: [", "invalid YAML"},
		{"scalar document", "just a string\n", "expected a card or a list of cards"},
		{"scalar item", "- a\n", "expected a card mapping"},
		{"unknown field", "name: X\ncolor: red\n", `unknown field "color"`},
		{"missing name", "text: Flying\n", "card name is required"},
		{"bad mana cost", "name: X\nmana_cost: \"{Z}\"\n", "X:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "bad.yaml")
		})
	}
}

func TestLoad_UnknownFieldLine(t *testing.T) {
	_, err := Load(strings.NewReader("name: X\ncolor: red\n"), "bad.yaml")
	var ufe *UnknownFieldError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, 2, ufe.Line)
	assert.Equal(t, "color", ufe.Field)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Shock\n  text: Shock deals 2 damage to any target.\n"), 0o600))

	cards, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, path+":1", cards[0].Source)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open corpus")
}

func TestLoad_Empty(t *testing.T) {
	cards, err := Load(strings.NewReader(""), "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, cards)
}
