package deck

import "fmt"

// PointTable maps each rank to its card value
type PointTable [8]int

var (
	// FullPoints counts every honour: J=2, Q=3, K=4, 10=10, A=11.
	FullPoints = PointTable{Seven: 0, Eight: 0, Nine: 0, Ten: 10, Jack: 2, Queen: 3, King: 4, Ace: 11}

	// ClassicPoints counts only aces, tens and kings.
	ClassicPoints = PointTable{Ten: 10, King: 4, Ace: 11}
)

// Policy bundles a trump hierarchy with a point table. Two historical trump
// orders exist and are exact reverses of each other, so the hierarchy is data
// rather than code and callers pick a preset explicitly.
type Policy struct {
	name   string
	trumps [14]Card
	order  map[Card]int
	points PointTable
}

var (
	standardTrumps = [14]Card{
		{Eight, Clubs}, {Nine, Clubs}, {King, Clubs}, {Ten, Clubs}, {Ace, Clubs},
		{Jack, Diamonds}, {Jack, Hearts}, {Jack, Spades}, {Jack, Clubs},
		{Queen, Diamonds}, {Queen, Hearts}, {Queen, Spades}, {Queen, Clubs},
		{Seven, Clubs},
	}

	defaultPolicy = StandardPolicy()
)

// NewPolicy builds a policy from the 14 trumps listed weakest first
func NewPolicy(name string, trumpsAscending []Card, points PointTable) (Policy, error) {
	if len(trumpsAscending) != 14 {
		return Policy{}, fmt.Errorf("policy %s: need 14 trumps, got %d", name, len(trumpsAscending))
	}
	p := Policy{name: name, order: make(map[Card]int, 14), points: points}
	for i, c := range trumpsAscending {
		if !c.Valid() || !c.IsTrump() {
			return Policy{}, fmt.Errorf("policy %s: %s is not a trump", name, c)
		}
		if _, dup := p.order[c]; dup {
			return Policy{}, fmt.Errorf("policy %s: duplicate trump %s", name, c)
		}
		p.trumps[i] = c
		p.order[c] = i
	}
	return p, nil
}

func mustPolicy(name string, trumps [14]Card, points PointTable) Policy {
	p, err := NewPolicy(name, trumps[:], points)
	if err != nil {
		panic(err)
	}
	return p
}

// StandardPolicy is the canonical hierarchy 8♣ < 9♣ < K♣ < 10♣ < A♣ < J♦ < J♥ <
// J♠ < J♣ < Q♦ < Q♥ < Q♠ < Q♣ < 7♣ with full point values.
func StandardPolicy() Policy {
	return mustPolicy("standard", standardTrumps, FullPoints)
}

// ReversedPolicy is the historical variant with the trump hierarchy inverted
// (7♣ weakest, 8♣ strongest). Kept for comparison runs only.
func ReversedPolicy() Policy {
	var reversed [14]Card
	for i, c := range standardTrumps {
		reversed[len(standardTrumps)-1-i] = c
	}
	return mustPolicy("reversed", reversed, FullPoints)
}

// PolicyByName resolves a preset name as used in configuration files
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "standard":
		return StandardPolicy(), nil
	case "reversed":
		return ReversedPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown ranking policy %q", name)
	}
}

// PointsByName resolves a point table preset
func PointsByName(name string) (PointTable, error) {
	switch name {
	case "", "full":
		return FullPoints, nil
	case "classic":
		return ClassicPoints, nil
	default:
		return PointTable{}, fmt.Errorf("unknown point table %q", name)
	}
}

// DefaultPolicy returns the policy used by the Card convenience methods
func DefaultPolicy() Policy {
	return defaultPolicy
}

// WithPoints returns a copy of the policy using a different point table
func (p Policy) WithPoints(points PointTable) Policy {
	p.points = points
	return p
}

// Name identifies the preset
func (p Policy) Name() string {
	return p.name
}

// Trumps returns the trump cards weakest first
func (p Policy) Trumps() []Card {
	out := make([]Card, len(p.trumps))
	copy(out, p.trumps[:])
	return out
}

// Points returns the value of c
func (p Policy) Points(c Card) int {
	if !c.Rank.valid() {
		return 0
	}
	return p.points[c.Rank]
}

// TrumpOrder returns the strength of a trump (0 weakest) or -1 for plain cards
func (p Policy) TrumpOrder(c Card) int {
	if !c.IsTrump() {
		return -1
	}
	if order, ok := p.order[c]; ok {
		return order
	}
	return -1
}

// Compare reports whether a beats b (>0), b beats a (<0), or neither can be
// ranked against the lead (0). Trumps beat plain cards; plain cards only
// count when they follow the lead suit.
func (p Policy) Compare(a, b Card, lead Lead) int {
	aTrump, bTrump := a.IsTrump(), b.IsTrump()
	switch {
	case aTrump && bTrump:
		return sign(p.TrumpOrder(a) - p.TrumpOrder(b))
	case aTrump:
		return 1
	case bTrump:
		return -1
	}

	aFollows, bFollows := lead.Follows(a), lead.Follows(b)
	switch {
	case aFollows && bFollows:
		return sign(a.Rank.simpleRank() - b.Rank.simpleRank())
	case aFollows:
		return 1
	case bFollows:
		return -1
	default:
		return 0
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
