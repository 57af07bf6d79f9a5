package profiler

import (
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/scoring"
)

// riskyPoints is the card value at which losing the card counts as a gamble
const riskyPoints = 10

// Observe derives the observation for seat from a resolved trick. A move is
// aggressive when it took the trick or spent a trump off the lead, and risky
// when a card worth 10 or more went to the other team.
func Observe(trick game.Trick, seat, winner game.Position, scorer scoring.Scorer) (Observation, bool) {
	var (
		played game.Play
		found  bool
		index  int
	)
	for i, p := range trick {
		if p.Position == seat {
			played, found, index = p, true, i
			break
		}
	}
	if !found {
		return Observation{}, false
	}

	won := winner == seat
	teamLost := winner.Team() != seat.Team()
	points := scorer.TrickPoints(trick.Cards())
	value := scorer.CardPoints(played.Card)

	return Observation{
		Card:          played.Card,
		CardPoints:    value,
		TrickWon:      won,
		Aggressive:    won || (index > 0 && played.Card.IsTrump()),
		Risky:         teamLost && value >= riskyPoints,
		PointsInTrick: points,
	}, true
}
