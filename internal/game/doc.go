// Package game holds the plain data a Kozel decision is made from: seats and
// teams, the trick on the table, the round context and the normalized
// GameState snapshot produced by a platform adapter.
//
// # Basic Usage
//
// Build a snapshot for the bottom seat and hand it to the advisor:
//
//	state := game.GameState{
//	    Hand:  deck.MustParseCards("7s Ah Qc"),
//	    Trick: game.Trick{{Position: game.Top, Card: deck.NewCard(deck.Ten, deck.Hearts)}},
//	    Round: game.RoundContext{Number: 2},
//	}
//
// All types are JSON-serializable so snapshots can cross process boundaries
// unchanged. Nothing here mutates its inputs; Trick.With returns a copy.
package game
