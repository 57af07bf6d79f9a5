package game

import (
	"encoding/json"
	"testing"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionTeams(t *testing.T) {
	assert.Equal(t, Top, Bottom.Partner())
	assert.Equal(t, Right, Left.Partner())
	assert.Equal(t, BottomTop, Top.Team())
	assert.Equal(t, LeftRight, Right.Team())
	assert.Equal(t, LeftRight, BottomTop.Other())
	assert.Equal(t, Bottom, Right.Next())
}

func TestTrickWithDoesNotAlias(t *testing.T) {
	base := Trick{{Position: Top, Card: deck.NewCard(deck.Ten, deck.Hearts)}}
	a := base.With(Right, deck.NewCard(deck.Ace, deck.Hearts))
	b := base.With(Right, deck.NewCard(deck.Seven, deck.Hearts))
	assert.Len(t, base, 1)
	assert.NotEqual(t, a[1].Card, b[1].Card)

	lead, ok := a.Lead()
	require.True(t, ok)
	assert.Equal(t, deck.SuitLead(deck.Hearts), lead)
	leader, _ := a.Leader()
	assert.Equal(t, Top, leader)
	assert.Equal(t, "top:10♥ right:A♥", a.String())
}

func TestGameStateJSON(t *testing.T) {
	state := GameState{
		Hand:    deck.MustParseCards("7s Ah Qc"),
		Trick:   Trick{{Position: Top, Card: deck.NewCard(deck.Ten, deck.Hearts)}},
		Round:   RoundContext{Number: 2},
		Players: map[Position]string{Top: "anna", Left: "boris"},
	}
	data, err := json.Marshal(state)
	require.NoError(t, err)

	var back GameState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, state, back)
	assert.Equal(t, "anna", back.PartnerName())
	assert.Equal(t, map[Position]string{Left: "boris"}, back.OpponentNames())
}
