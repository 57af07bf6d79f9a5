package game

import "github.com/lox/kozelassist/internal/deck"

// RoundContext tracks where a Kozel round ("kon") stands
type RoundContext struct {
	// Number is the 1-based round index within the game.
	Number int `json:"number"`
	// TricksPlayed counts completed tricks in this round.
	TricksPlayed int `json:"tricksPlayed"`
	// TeamOpenedPreviousRound is set when the deciding player's team led the
	// first trick of the previous round.
	TeamOpenedPreviousRound bool `json:"teamOpenedPreviousRound"`
}

// FirstRound reports whether this is the opening round of the game.
// A zero Number is treated as the first round.
func (r RoundContext) FirstRound() bool {
	return r.Number <= 1
}

// GameState is the normalized snapshot a decision is made from. Seat is the
// deciding player and defaults to Bottom.
type GameState struct {
	Seat          Position            `json:"seat"`
	Hand          []deck.Card         `json:"hand"`
	Trick         Trick               `json:"trick"`
	MyScore       int                 `json:"myScore"`
	OpponentScore int                 `json:"opponentScore"`
	RoundPoints   int                 `json:"roundPoints"`
	Round         RoundContext        `json:"round"`
	Players       map[Position]string `json:"players,omitempty"`
}

// PlayerAt returns the identity seated at p, empty when unknown
func (s GameState) PlayerAt(p Position) string {
	if s.Players == nil {
		return ""
	}
	return s.Players[p]
}

// PartnerName returns the identity of the deciding player's partner
func (s GameState) PartnerName() string {
	return s.PlayerAt(s.Seat.Partner())
}

// OpponentNames returns the identities of both opponents keyed by seat
func (s GameState) OpponentNames() map[Position]string {
	out := make(map[Position]string, 2)
	for _, p := range Positions {
		if p.Team() != s.Seat.Team() {
			if name := s.PlayerAt(p); name != "" {
				out[p] = name
			}
		}
	}
	return out
}
