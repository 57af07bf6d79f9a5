package main

import (
	"testing"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrick(t *testing.T) {
	trick, err := parseTrick([]string{"top:10h", "right:A♥"})
	require.NoError(t, err)
	require.Len(t, trick, 2)
	assert.Equal(t, game.Top, trick[0].Position)
	assert.Equal(t, deck.MustParseCards("Ah")[0], trick[1].Card)

	tests := []struct {
		name  string
		plays []string
	}{
		{"missing seat", []string{"10h"}},
		{"bad seat", []string{"north:10h"}},
		{"bad card", []string{"top:1x"}},
		{"duplicate", []string{"top:10h", "right:10h"}},
		{"overfull", []string{"bottom:7h", "left:8h", "top:9h", "right:10h", "bottom:Ah"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTrick(tt.plays)
			require.Error(t, err)
		})
	}
}

func TestParsePlayers(t *testing.T) {
	players, err := parsePlayers([]string{"top=bob", "left=alice"})
	require.NoError(t, err)
	assert.Equal(t, map[game.Position]string{game.Top: "bob", game.Left: "alice"}, players)

	players, err = parsePlayers(nil)
	require.NoError(t, err)
	assert.Nil(t, players)

	_, err = parsePlayers([]string{"top"})
	require.Error(t, err)
	_, err = parsePlayers([]string{"middle=x"})
	require.Error(t, err)
}

func TestPositionFlagsState(t *testing.T) {
	f := PositionFlags{
		Hand:   "7s Ah Qc",
		Trick:  []string{"left:9h"},
		Seat:   "bottom",
		Round:  3,
		Opened: true,
	}
	state, err := f.state()
	require.NoError(t, err)
	assert.Equal(t, game.Bottom, state.Seat)
	assert.Len(t, state.Hand, 3)
	assert.Len(t, state.Trick, 1)
	assert.Equal(t, 3, state.Round.Number)
	assert.True(t, state.Round.TeamOpenedPreviousRound)

	f.Hand = "7s 7s"
	_, err = f.state()
	assert.NoError(t, err, "duplicate hand cards are left to the rules")

	f.Hand = "zz"
	_, err = f.state()
	require.Error(t, err)
}
