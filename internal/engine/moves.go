package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/history"
	"github.com/lox/kozelassist/internal/profiler"
	"github.com/lox/kozelassist/internal/rules"
	"github.com/lox/kozelassist/internal/statistics"
)

// Move is a card the assisted player put on the table
type Move struct {
	// State is the snapshot the card was chosen from
	State       game.GameState
	Played      deck.Card
	Recommended *deck.Card
	// Completed is the resolved trick, when known. Every named player in
	// it is profiled.
	Completed game.Trick
}

// RecordMove appends the move to the ledger and feeds the profiler with
// every other player's card from the completed trick.
func (e *Engine) RecordMove(ctx context.Context, m Move) history.MoveRecord {
	state := m.State
	rec := history.MoveRecord{
		Seat:          state.Seat,
		Hand:          state.Hand,
		Table:         state.Trick,
		MyScore:       state.MyScore,
		OpponentScore: state.OpponentScore,
		Played:        m.Played,
		Recommended:   m.Recommended,
		Followed:      m.Recommended != nil && *m.Recommended == m.Played,
		Lead:          len(state.Trick) == 0,
		Partner:       state.PartnerName(),
		Players:       state.Players,
	}

	if m.Completed.Complete() {
		if winner, ok := e.rules.TrickWinner(m.Completed); ok {
			rec.Winner = winner
			rec.TrickWon = rules.TeamOf(winner) == rules.TeamOf(state.Seat)
			if rec.TrickWon {
				rec.PointsGained = e.trickPoints(m.Completed)
			}
			e.observe(m.Completed, state, winner)
		}
	}

	return e.ledger.RecordMove(ctx, rec)
}

func (e *Engine) trickPoints(trick game.Trick) int {
	points := e.rules.Scorer().TrickPoints(trick.Cards())
	if c, ok := rules.SpecialCatch(trick); ok {
		points += c.Bonus
	}
	return points
}

func (e *Engine) observe(trick game.Trick, state game.GameState, winner game.Position) {
	for _, play := range trick {
		if play.Position == state.Seat {
			continue
		}
		name := state.PlayerAt(play.Position)
		if name == "" {
			continue
		}
		obs, ok := profiler.Observe(trick, play.Position, winner, e.rules.Scorer())
		if !ok {
			continue
		}
		e.profiler.RecordMove(name, obs)
	}
}

// RecordGameOutcome folds a finished game into the statistics and closes
// the current game in the ledger.
func (e *Engine) RecordGameOutcome(ctx context.Context, outcome statistics.GameOutcome) history.GameRecord {
	if outcome.At.IsZero() {
		outcome.At = e.clock.Now()
	}

	e.mu.Lock()
	e.outcomes.Record(outcome)
	e.mu.Unlock()

	e.logger.Info("Game finished",
		"result", outcome.Result(),
		"games", outcome.MyGames,
		"opponentGames", outcome.OpponentGames)

	return e.ledger.EndGame(ctx, history.GameResult{
		Result:        outcome.Result(),
		MyScore:       outcome.MyScore,
		OpponentScore: outcome.OpponentScore,
		Partner:       outcome.Partner,
	})
}

// LeadPattern is how often leading with Card took the trick
type LeadPattern struct {
	Card deck.Card `json:"card"`
	history.PatternStats
}

// Statistics is everything the host shows on a stats screen. Leads is
// empty until the archive holds history.MinPatternMoves moves.
type Statistics struct {
	Outcomes      statistics.Summary `json:"outcomes"`
	Efficacy      history.Efficacy   `json:"efficacy"`
	Leads         []LeadPattern      `json:"leads,omitempty"`
	Players       int                `json:"players"`
	ArchivedGames int                `json:"archivedGames"`
	CurrentMoves  int                `json:"currentMoves"`
}

// GetStatistics digests outcomes, recommendation efficacy and ledger state
func (e *Engine) GetStatistics() Statistics {
	e.mu.Lock()
	summary := e.outcomes.Summary()
	e.mu.Unlock()

	return Statistics{
		Outcomes:      summary,
		Efficacy:      e.ledger.RecommendationEfficacy(),
		Leads:         e.leadPatterns(),
		Players:       len(e.profiler.Players()),
		ArchivedGames: len(e.ledger.Archive().Games),
		CurrentMoves:  len(e.ledger.CurrentMoves()),
	}
}

// leadPatterns orders first-move patterns by how often the card was led,
// then by suit and rank.
func (e *Engine) leadPatterns() []LeadPattern {
	patterns, ok := e.ledger.FirstMovePatterns()
	if !ok {
		return nil
	}
	leads := make([]LeadPattern, 0, len(patterns))
	for card, stats := range patterns {
		leads = append(leads, LeadPattern{Card: card, PatternStats: stats})
	}
	slices.SortFunc(leads, func(a, b LeadPattern) int {
		return cmp.Or(
			cmp.Compare(b.Total, a.Total),
			cmp.Compare(a.Card.Suit, b.Card.Suit),
			cmp.Compare(a.Card.Rank, b.Card.Rank),
		)
	})
	return leads
}

// CardStats reports how card has fared in archived games; false when it
// was never played.
func (e *Engine) CardStats(card deck.Card) (history.CardStats, bool) {
	return e.ledger.CardStats(card)
}

// Outcomes returns a copy of the raw outcome counters
func (e *Engine) Outcomes() statistics.Outcomes {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotOutcomesLocked()
}
