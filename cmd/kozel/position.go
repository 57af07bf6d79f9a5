package main

import (
	"fmt"
	"strings"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
)

// PositionFlags describe a decision point on the command line
type PositionFlags struct {
	Hand         string   `arg:"" help:"Cards in hand, e.g. '7s Ah Qc'"`
	Trick        []string `short:"t" help:"Card already on the table as seat:card, in play order (repeatable)"`
	Seat         string   `default:"bottom" help:"Seat deciding (bottom|left|top|right)"`
	Round        int      `short:"r" default:"2" help:"Round number within the game"`
	TricksPlayed int      `help:"Tricks completed this round"`
	Opened       bool     `help:"Our team led the first trick of the previous round"`
}

func (f PositionFlags) state() (game.GameState, error) {
	hand, err := deck.ParseCards(f.Hand)
	if err != nil {
		return game.GameState{}, fmt.Errorf("hand: %w", err)
	}
	seat, err := game.ParsePosition(f.Seat)
	if err != nil {
		return game.GameState{}, err
	}
	trick, err := parseTrick(f.Trick)
	if err != nil {
		return game.GameState{}, err
	}
	return game.GameState{
		Seat:  seat,
		Hand:  hand,
		Trick: trick,
		Round: game.RoundContext{
			Number:                  f.Round,
			TricksPlayed:            f.TricksPlayed,
			TeamOpenedPreviousRound: f.Opened,
		},
	}, nil
}

// parseTrick reads seat:card pairs such as "top:10h"
func parseTrick(plays []string) (game.Trick, error) {
	var trick game.Trick
	for _, s := range plays {
		seatText, cardText, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("trick entry %q: want seat:card", s)
		}
		seat, err := game.ParsePosition(seatText)
		if err != nil {
			return nil, fmt.Errorf("trick entry %q: %w", s, err)
		}
		card, err := deck.ParseCard(cardText)
		if err != nil {
			return nil, fmt.Errorf("trick entry %q: %w", s, err)
		}
		if _, dup := trick.Find(card); dup {
			return nil, fmt.Errorf("trick entry %q: card already played", s)
		}
		if len(trick) == game.TrickSize {
			return nil, fmt.Errorf("trick holds at most %d cards", game.TrickSize)
		}
		trick = trick.With(seat, card)
	}
	return trick, nil
}

// parsePlayers reads seat=name pairs
func parsePlayers(pairs []string) (map[game.Position]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	players := make(map[game.Position]string, len(pairs))
	for _, s := range pairs {
		seatText, name, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("player %q: want seat=name", s)
		}
		seat, err := game.ParsePosition(seatText)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", s, err)
		}
		players[seat] = name
	}
	return players, nil
}
