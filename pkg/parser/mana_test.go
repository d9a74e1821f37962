package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func TestParseManaCost(t *testing.T) {
	tests := []struct {
		cost      string
		want      []core.ManaSymbol
		manaValue int
	}{
		{"", nil, 0},
		{"{G}", []core.ManaSymbol{{Kind: core.ManaColored, Color: core.Green}}, 1},
		{"{2}{W}{W}", []core.ManaSymbol{
			{Kind: core.ManaGeneric, Generic: 2},
			{Kind: core.ManaColored, Color: core.White},
			{Kind: core.ManaColored, Color: core.White},
		}, 4},
		{"{X}{R}", []core.ManaSymbol{{Kind: core.ManaX}, {Kind: core.ManaColored, Color: core.Red}}, 1},
		{"{W/U}", []core.ManaSymbol{{Kind: core.ManaHybrid, Color: core.White, Color2: core.Blue}}, 1},
		{"{2/G}", []core.ManaSymbol{{Kind: core.ManaTwoHybrid, Color: core.Green}}, 2},
		{"{B/P}", []core.ManaSymbol{{Kind: core.ManaPhyrexian, Color: core.Black}}, 1},
		{"{C}", []core.ManaSymbol{{Kind: core.ManaColorless}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			got, err := ParseManaCost(tt.cost)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.True(t, got.IsEmpty())
			} else {
				assert.Equal(t, tt.want, got.Symbols)
				assert.Equal(t, tt.cost, got.String())
			}
			assert.Equal(t, tt.manaValue, got.ManaValue())
		})
	}
}

func TestParseManaCost_Errors(t *testing.T) {
	for _, cost := range []string{"{", "{W}}", "{Z}", "{W/W}", "2W"} {
		t.Run(cost, func(t *testing.T) {
			_, err := ParseManaCost(cost)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}
