// Package rules implements Kozel move legality, trick resolution and the
// score-driven strategy flags. Every function is total: malformed input
// yields an empty result or false instead of an error.
package rules

import (
	"sort"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/scoring"
)

// Engine evaluates rules under a fixed ranking policy
type Engine struct {
	policy deck.Policy
	scorer scoring.Scorer
}

// New creates an Engine bound to policy
func New(policy deck.Policy) Engine {
	return Engine{policy: policy, scorer: scoring.New(policy)}
}

// Policy returns the bound ranking policy
func (e Engine) Policy() deck.Policy { return e.policy }

// Scorer returns a scorer using the same policy
func (e Engine) Scorer() scoring.Scorer { return e.scorer }

// LegalMoves returns the subset of hand that may be played into trick,
// preserving hand order. The result is empty only when hand is empty.
func (e Engine) LegalMoves(hand []deck.Card, trick game.Trick, round game.RoundContext) []deck.Card {
	if len(hand) == 0 {
		return nil
	}

	lead, ok := trick.Lead()
	if !ok {
		return e.openingMoves(hand, round)
	}
	if lead.Trump {
		return clone(hand)
	}

	var follow []deck.Card
	for _, c := range hand {
		if lead.Follows(c) {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return clone(hand)
}

// openingMoves applies the first-move restriction: no trump lead in the
// first round, nor on the first trick of a round opened by the team that
// led the previous one, unless the hand holds nothing but trumps.
func (e Engine) openingMoves(hand []deck.Card, round game.RoundContext) []deck.Card {
	restricted := round.FirstRound() ||
		(round.TricksPlayed == 0 && round.TeamOpenedPreviousRound)
	if !restricted {
		return clone(hand)
	}

	var plain []deck.Card
	for _, c := range hand {
		if !c.IsTrump() {
			plain = append(plain, c)
		}
	}
	if len(plain) == 0 {
		return clone(hand)
	}
	return plain
}

// TrickWinner returns the seat currently taking the trick. A challenger only
// displaces the best card when strictly stronger, so ties favour the earlier play.
func (e Engine) TrickWinner(trick game.Trick) (game.Position, bool) {
	best, ok := e.bestPlay(trick)
	if !ok {
		return 0, false
	}
	return best.Position, true
}

// WinningCard returns the card currently taking the trick
func (e Engine) WinningCard(trick game.Trick) (deck.Card, bool) {
	best, ok := e.bestPlay(trick)
	if !ok {
		return deck.Card{}, false
	}
	return best.Card, true
}

func (e Engine) bestPlay(trick game.Trick) (game.Play, bool) {
	lead, ok := trick.Lead()
	if !ok {
		return game.Play{}, false
	}
	best := trick[0]
	for _, p := range trick[1:] {
		if e.policy.Compare(p.Card, best.Card, lead) > 0 {
			best = p
		}
	}
	return best, true
}

// SortByDiscardPriority returns a copy of cards ordered cheapest first:
// plain cards before trumps, then ascending point value. Equal keys keep
// their input order.
func (e Engine) SortByDiscardPriority(cards []deck.Card) []deck.Card {
	out := clone(cards)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsTrump() != b.IsTrump() {
			return !a.IsTrump()
		}
		return e.policy.Points(a) < e.policy.Points(b)
	})
	return out
}

// SortByAttackPriority returns a copy of cards ordered strongest first:
// trumps before plain cards, trumps by descending trump order, plain cards
// by descending point value.
func (e Engine) SortByAttackPriority(cards []deck.Card) []deck.Card {
	out := clone(cards)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsTrump() != b.IsTrump() {
			return a.IsTrump()
		}
		if a.IsTrump() {
			return e.policy.TrumpOrder(a) > e.policy.TrumpOrder(b)
		}
		return e.policy.Points(a) > e.policy.Points(b)
	})
	return out
}

// MinimumWinningCard returns the weakest of cards that beats the best card
// already on the table. With an empty trick the first card is returned.
func (e Engine) MinimumWinningCard(cards []deck.Card, trick game.Trick) (deck.Card, bool) {
	if len(cards) == 0 {
		return deck.Card{}, false
	}
	best, ok := e.bestPlay(trick)
	if !ok {
		return cards[0], true
	}
	lead, _ := trick.Lead()

	var (
		winner deck.Card
		found  bool
	)
	for _, c := range cards {
		if e.policy.Compare(c, best.Card, lead) <= 0 {
			continue
		}
		if !found || e.policy.Compare(c, winner, lead) < 0 {
			winner, found = c, true
		}
	}
	return winner, found
}

func clone(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	return out
}

var standard = New(deck.DefaultPolicy())

// Default returns the Engine bound to the default policy
func Default() Engine { return standard }

// LegalMoves uses the default policy
func LegalMoves(hand []deck.Card, trick game.Trick, round game.RoundContext) []deck.Card {
	return standard.LegalMoves(hand, trick, round)
}

// TrickWinner uses the default policy
func TrickWinner(trick game.Trick) (game.Position, bool) {
	return standard.TrickWinner(trick)
}

// SortByDiscardPriority uses the default policy
func SortByDiscardPriority(cards []deck.Card) []deck.Card {
	return standard.SortByDiscardPriority(cards)
}

// SortByAttackPriority uses the default policy
func SortByAttackPriority(cards []deck.Card) []deck.Card {
	return standard.SortByAttackPriority(cards)
}

// MinimumWinningCard uses the default policy
func MinimumWinningCard(cards []deck.Card, trick game.Trick) (deck.Card, bool) {
	return standard.MinimumWinningCard(cards, trick)
}
