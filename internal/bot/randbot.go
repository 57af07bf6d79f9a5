package bot

import (
	rand "math/rand/v2"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/rules"
)

// RandBot plays a uniformly random legal card
type RandBot struct {
	rng   *rand.Rand
	rules rules.Engine
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, engine rules.Engine) *RandBot {
	return &RandBot{rng: rng, rules: engine}
}

// ChooseCard picks a random legal card, or nil when nothing is playable
func (r *RandBot) ChooseCard(state game.GameState) *Recommendation {
	legal := r.rules.LegalMoves(state.Hand, state.Trick, state.Round)
	if len(legal) == 0 {
		return nil
	}
	card := legal[r.rng.IntN(len(legal))]
	return &Recommendation{
		Card:      card,
		Index:     deck.IndexOf(state.Hand, card),
		Reasoning: "rand-bot random card",
		Source:    SourceHeuristic,
	}
}
