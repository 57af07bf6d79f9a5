// Package scoring values cards and tricks.
package scoring

import "github.com/lox/kozelassist/internal/deck"

// Thresholds for trick valuation
const (
	ValuableTrick     = 10
	VeryValuableTrick = 15
)

// TrickValue summarises the points riding on a set of cards
type TrickValue struct {
	Points       int  `json:"points"`
	PointCards   int  `json:"pointCards"`
	Valuable     bool `json:"valuable"`
	VeryValuable bool `json:"veryValuable"`
}

// Scorer values cards under a ranking policy
type Scorer struct {
	policy deck.Policy
}

// New returns a scorer bound to policy
func New(policy deck.Policy) Scorer {
	return Scorer{policy: policy}
}

var standard = New(deck.DefaultPolicy())

// CardPoints returns the value of a single card
func (s Scorer) CardPoints(c deck.Card) int {
	return s.policy.Points(c)
}

// TrickPoints sums the value of cards
func (s Scorer) TrickPoints(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += s.policy.Points(c)
	}
	return total
}

// IsPointCard reports whether c carries any value
func (s Scorer) IsPointCard(c deck.Card) bool {
	return s.policy.Points(c) > 0
}

// EvaluateTrick values a set of cards
func (s Scorer) EvaluateTrick(cards []deck.Card) TrickValue {
	v := TrickValue{}
	for _, c := range cards {
		if p := s.policy.Points(c); p > 0 {
			v.Points += p
			v.PointCards++
		}
	}
	v.Valuable = v.Points >= ValuableTrick
	v.VeryValuable = v.Points >= VeryValuableTrick
	return v
}

// CardPoints values c under the default policy
func CardPoints(c deck.Card) int { return standard.CardPoints(c) }

// TrickPoints sums cards under the default policy
func TrickPoints(cards []deck.Card) int { return standard.TrickPoints(cards) }

// IsPointCard reports whether c carries value under the default policy
func IsPointCard(c deck.Card) bool { return standard.IsPointCard(c) }

// EvaluateTrick values cards under the default policy
func EvaluateTrick(cards []deck.Card) TrickValue { return standard.EvaluateTrick(cards) }
