package bot

import (
	"fmt"
	"sort"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/rules"
	"github.com/lox/kozelassist/internal/scoring"
)

// Strategy names the policy that produced a card
type Strategy string

const (
	TrapCatch  Strategy = "trap-catch"
	Aggressive Strategy = "aggressive"
	Defensive  Strategy = "defensive"
	Default    Strategy = "default"
)

// Strategist picks a policy for a situation and runs it
type Strategist struct {
	rules  rules.Engine
	scorer scoring.Scorer
}

// NewStrategist creates a strategist using engine for all card comparisons
func NewStrategist(engine rules.Engine) Strategist {
	return Strategist{rules: engine, scorer: engine.Scorer()}
}

// Select returns the highest priority policy that applies
func (s Strategist) Select(sit Situation) Strategy {
	switch {
	case sit.TrapOpportunity:
		return TrapCatch
	case sit.Aggression > 0:
		return Aggressive
	case sit.Defense > 0:
		return Defensive
	default:
		return Default
	}
}

// Play runs the policy over legal, which must not be empty
func (s Strategist) Play(strategy Strategy, trick game.Trick, legal []deck.Card, sit Situation, thinking *ThinkingContext) deck.Card {
	switch strategy {
	case TrapCatch:
		return s.trapCatch(trick, legal, sit, thinking)
	case Aggressive:
		return s.aggressive(trick, legal, sit, thinking)
	case Defensive:
		return s.defensive(trick, legal, sit, thinking)
	default:
		return s.balanced(trick, legal, sit, thinking)
	}
}

func (s Strategist) trapCatch(trick game.Trick, legal []deck.Card, sit Situation, thinking *ThinkingContext) deck.Card {
	if deck.Contains(legal, deck.Catcher) {
		thinking.AddThought(fmt.Sprintf("Catching %s with %s for +%d", deck.Target, deck.Catcher, rules.CatchBonus))
		return deck.Catcher
	}
	thinking.AddThought(fmt.Sprintf("%s not playable here", deck.Catcher))
	return s.balanced(trick, legal, sit, thinking)
}

func (s Strategist) aggressive(trick game.Trick, legal []deck.Card, sit Situation, thinking *ThinkingContext) deck.Card {
	switch {
	case sit.Winner == PartnerWinning:
		if points := s.pointCards(legal); len(points) > 0 {
			sort.SliceStable(points, func(i, j int) bool {
				return s.scorer.CardPoints(points[i]) > s.scorer.CardPoints(points[j])
			})
			thinking.AddThought(fmt.Sprintf("Feeding %d points to partner", s.scorer.CardPoints(points[0])))
			return points[0]
		}
		thinking.AddThought("Backing partner with a high card")
		return s.rules.SortByAttackPriority(legal)[0]

	case sit.Winner == OpponentWinning:
		if sit.Trick.Valuable {
			if c, ok := s.rules.MinimumWinningCard(legal, trick); ok {
				thinking.AddThought(fmt.Sprintf("Taking %d points from opponent", sit.Trick.Points))
				return c
			}
		}
		thinking.AddThought("Opponent takes it, discarding")
		return s.rules.SortByDiscardPriority(legal)[0]

	case sit.IsLead:
		thinking.AddThought("Aggressive lead")
		return s.rules.SortByAttackPriority(legal)[0]
	}
	return s.balanced(trick, legal, sit, thinking)
}

func (s Strategist) defensive(trick game.Trick, legal []deck.Card, sit Situation, thinking *ThinkingContext) deck.Card {
	switch {
	case sit.Winner == PartnerWinning:
		if plain := s.nonPointCards(legal); len(plain) > 0 {
			thinking.AddThought("Partner takes it, shedding a blank card")
			return s.rules.SortByDiscardPriority(plain)[0]
		}
		thinking.AddThought("Only point cards left, giving partner the cheapest")
		return s.cheapest(legal)

	case sit.Winner == OpponentWinning:
		thinking.AddThought("Conceding as few points as possible")
		return s.cheapest(legal)

	case sit.IsLead:
		if plain := s.nonPointCards(legal); len(plain) > 0 {
			thinking.AddThought("Safe lead without points")
			return middle(plain)
		}
		thinking.AddThought("Careful lead")
		return middle(legal)
	}
	return s.balanced(trick, legal, sit, thinking)
}

func (s Strategist) balanced(trick game.Trick, legal []deck.Card, sit Situation, thinking *ThinkingContext) deck.Card {
	switch {
	case sit.Winner == PartnerWinning:
		thinking.AddThought("Supporting partner")
		return middle(legal)

	case sit.Winner == OpponentWinning:
		thinking.AddThought("Opponent takes it, discarding")
		return s.rules.SortByDiscardPriority(legal)[0]

	case sit.Winner == SelfWinning:
		thinking.AddThought("Holding the trick")
		return s.rules.SortByAttackPriority(legal)[0]

	case sit.IsLead:
		var plain []deck.Card
		for _, c := range legal {
			if !c.IsTrump() {
				plain = append(plain, c)
			}
		}
		if len(plain) > 0 {
			thinking.AddThought("Standard lead with a middle plain card")
			return middle(plain)
		}
		trumps := append([]deck.Card(nil), legal...)
		policy := s.rules.Policy()
		sort.SliceStable(trumps, func(i, j int) bool {
			return policy.TrumpOrder(trumps[i]) < policy.TrumpOrder(trumps[j])
		})
		thinking.AddThought("Only trumps, leading the lowest")
		return trumps[0]
	}

	if c, ok := s.rules.MinimumWinningCard(legal, trick); ok && sit.Trick.Points >= scoring.ValuableTrick {
		thinking.AddThought(fmt.Sprintf("Taking the trick for %d points", sit.Trick.Points))
		return c
	}
	thinking.AddThought("Standard discard")
	return s.rules.SortByDiscardPriority(legal)[0]
}

func (s Strategist) pointCards(cards []deck.Card) []deck.Card {
	var out []deck.Card
	for _, c := range cards {
		if s.scorer.IsPointCard(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Strategist) nonPointCards(cards []deck.Card) []deck.Card {
	var out []deck.Card
	for _, c := range cards {
		if !s.scorer.IsPointCard(c) {
			out = append(out, c)
		}
	}
	return out
}

// cheapest returns the lowest valued card, earliest first on ties
func (s Strategist) cheapest(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if s.scorer.CardPoints(c) < s.scorer.CardPoints(best) {
			best = c
		}
	}
	return best
}

// middle returns the card at index len/2, keeping hand order
func middle(cards []deck.Card) deck.Card {
	return cards[len(cards)/2]
}
