package game

import (
	"strings"

	"github.com/lox/kozelassist/internal/deck"
)

// TrickSize is the number of plays that complete a trick
const TrickSize = 4

// Play is a single card laid on the table
type Play struct {
	Position Position  `json:"position"`
	Card     deck.Card `json:"card"`
}

// Trick is the ordered sequence of plays in the current trick, lead first
type Trick []Play

// Lead returns the obligation set by the first card; ok is false for an empty trick
func (t Trick) Lead() (deck.Lead, bool) {
	if len(t) == 0 {
		return deck.Lead{}, false
	}
	return deck.LeadOf(t[0].Card), true
}

// Leader returns the seat that opened the trick
func (t Trick) Leader() (Position, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[0].Position, true
}

// Cards returns the cards on the table in play order
func (t Trick) Cards() []deck.Card {
	cards := make([]deck.Card, len(t))
	for i, p := range t {
		cards[i] = p.Card
	}
	return cards
}

// Complete reports whether every seat has played
func (t Trick) Complete() bool {
	return len(t) >= TrickSize
}

// With returns a copy of the trick with one more play appended
func (t Trick) With(pos Position, c deck.Card) Trick {
	next := make(Trick, len(t), len(t)+1)
	copy(next, t)
	return append(next, Play{Position: pos, Card: c})
}

// Find returns the seat that played c
func (t Trick) Find(c deck.Card) (Position, bool) {
	for _, p := range t {
		if p.Card == c {
			return p.Position, true
		}
	}
	return 0, false
}

// String renders the trick as "top:10♥ right:7♠"
func (t Trick) String() string {
	parts := make([]string, len(t))
	for i, p := range t {
		parts[i] = p.Position.String() + ":" + p.Card.String()
	}
	return strings.Join(parts, " ")
}
