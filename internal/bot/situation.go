package bot

import (
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/rules"
	"github.com/lox/kozelassist/internal/scoring"
)

// Winner classifies who currently takes the trick relative to the deciding seat
type Winner int

const (
	NoWinner Winner = iota
	SelfWinning
	PartnerWinning
	OpponentWinning
)

// String returns the classification name
func (w Winner) String() string {
	switch w {
	case NoWinner:
		return "none"
	case SelfWinning:
		return "self"
	case PartnerWinning:
		return "partner"
	case OpponentWinning:
		return "opponent"
	default:
		return "unknown"
	}
}

// Situation captures the key elements of a Kozel decision
type Situation struct {
	IsLead          bool
	Winner          Winner
	WinningSeat     game.Position
	Trick           scoring.TrickValue
	Flags           rules.ScoreFlags
	TrapOpportunity bool

	// Aggression and Defense start at 0 or 1 from the score flags and are
	// nudged by what is known about the other players. A policy is active
	// whenever its weight is above zero.
	Aggression float64
	Defense    float64
}

// Analyze evaluates state under the default ranking policy
func Analyze(state game.GameState) Situation {
	return analyze(rules.Default(), state)
}

func analyze(engine rules.Engine, state game.GameState) Situation {
	sit := Situation{
		IsLead: len(state.Trick) == 0,
		Trick:  engine.Scorer().EvaluateTrick(state.Trick.Cards()),
		Flags:  rules.ScoreStrategy(state.MyScore, state.OpponentScore, state.RoundPoints),
	}

	if seat, ok := engine.TrickWinner(state.Trick); ok {
		sit.WinningSeat = seat
		switch {
		case seat == state.Seat:
			sit.Winner = SelfWinning
		case rules.IsPartner(state.Seat, seat):
			sit.Winner = PartnerWinning
		default:
			sit.Winner = OpponentWinning
		}
	}

	_, targetOnTable := state.Trick.Find(deck.Target)
	sit.TrapOpportunity = targetOnTable && deck.Contains(state.Hand, deck.Catcher)

	if sit.Flags.PlayAggressive {
		sit.Aggression = 1
	}
	if sit.Flags.PlayDefensive {
		sit.Defense = 1
	}
	return sit
}
