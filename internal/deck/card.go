// Package deck models Kozel playing cards: the 32-card deck, trump membership,
// ranking policies and the loose text encodings cards arrive in.
package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

// Suits lists every suit in canonical order
var Suits = [...]Suit{Clubs, Spades, Hearts, Diamonds}

// String returns the glyph for a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Name returns the canonical English name used at JSON boundaries
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	default:
		return "unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) valid() bool {
	return s >= Clubs && s <= Diamonds
}

// MarshalText encodes the suit by name
func (s Suit) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(s.Name()), nil
}

// UnmarshalText accepts any encoding understood by Normalize
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, ok := lookupSuit(string(text))
	if !ok {
		return fmt.Errorf("unknown suit %q", string(text))
	}
	*s = parsed
	return nil
}

// Rank represents a card rank. Declaration order is not playing strength;
// see Policy for trump order and simpleRank for plain-suit order.
type Rank int

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in declaration order
var Ranks = [...]Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

func (r Rank) valid() bool {
	return r >= Seven && r <= Ace
}

// MarshalText encodes the rank with its short label
func (r Rank) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("invalid rank %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts any encoding understood by Normalize
func (r *Rank) UnmarshalText(text []byte) error {
	parsed, ok := lookupRank(string(text))
	if !ok {
		return fmt.Errorf("unknown rank %q", string(text))
	}
	*r = parsed
	return nil
}

// simpleRank orders plain-suit cards: 7 < 8 < 9 < K < 10 < A.
// Jacks and queens are always trumps and have no plain-suit rank.
func (r Rank) simpleRank() int {
	switch r {
	case Seven:
		return 0
	case Eight:
		return 1
	case Nine:
		return 2
	case King:
		return 3
	case Ten:
		return 4
	case Ace:
		return 5
	default:
		return -1
	}
}

// Card represents a playing card. Cards are plain values and never mutated.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// The two cards behind the special catch: the seven of clubs catches the queen of clubs.
var (
	Catcher = Card{Rank: Seven, Suit: Clubs}
	Target  = Card{Rank: Queen, Suit: Clubs}
)

// UnmarshalJSON requires both rank and suit. The zero Card is the seven of
// clubs, so a missing field would otherwise decode to a real card.
func (c *Card) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw struct {
		Rank *Rank `json:"rank"`
		Suit *Suit `json:"suit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Rank == nil || raw.Suit == nil {
		return fmt.Errorf("card %s: rank and suit are both required", data)
	}
	*c = Card{Rank: *raw.Rank, Suit: *raw.Suit}
	return nil
}

// String returns the string representation of a card (e.g., "Q♣")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns a compact ASCII code such as "10h" or "Qc"
func (c Card) Code() string {
	return c.Rank.String() + strings.ToLower(c.Suit.Name()[:1])
}

// Valid reports whether rank and suit are both in range
func (c Card) Valid() bool {
	return c.Rank.valid() && c.Suit.valid()
}

// IsTrump reports whether the card is a trump: every jack, every queen and every club
func (c Card) IsTrump() bool {
	return c.Rank == Jack || c.Rank == Queen || c.Suit == Clubs
}

// SimpleSuit returns the card's plain suit; ok is false for trumps
func (c Card) SimpleSuit() (suit Suit, ok bool) {
	if c.IsTrump() {
		return 0, false
	}
	return c.Suit, true
}

// Points returns the card's value under the default policy
func (c Card) Points() int {
	return defaultPolicy.Points(c)
}

// TrumpOrder returns the trump strength under the default policy, -1 for non-trumps
func (c Card) TrumpOrder() int {
	return defaultPolicy.TrumpOrder(c)
}

// CompareInTrick compares c against other under the default policy
func (c Card) CompareInTrick(other Card, lead Lead) int {
	return defaultPolicy.Compare(c, other, lead)
}

// Lead is the obligation set by the first card of a trick: either a plain suit
// that must be followed or a trump lead that frees every card.
type Lead struct {
	Suit  Suit
	Trump bool
}

// TrumpLead is the lead produced by a trump first card
var TrumpLead = Lead{Trump: true}

// SuitLead builds a plain-suit lead
func SuitLead(s Suit) Lead {
	return Lead{Suit: s}
}

// LeadOf derives the lead obligation from a trick's first card
func LeadOf(first Card) Lead {
	if suit, ok := first.SimpleSuit(); ok {
		return SuitLead(suit)
	}
	return TrumpLead
}

// Follows reports whether c is a plain card of the lead suit
func (l Lead) Follows(c Card) bool {
	if l.Trump {
		return false
	}
	suit, ok := c.SimpleSuit()
	return ok && suit == l.Suit
}

// String returns "trump" or the suit glyph
func (l Lead) String() string {
	if l.Trump {
		return "trump"
	}
	return l.Suit.String()
}

// FormatCards renders cards separated by spaces
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Contains reports whether cards holds c
func Contains(cards []Card, c Card) bool {
	return IndexOf(cards, c) >= 0
}

// IndexOf returns the position of c in cards or -1
func IndexOf(cards []Card, c Card) int {
	for i, card := range cards {
		if card == c {
			return i
		}
	}
	return -1
}
