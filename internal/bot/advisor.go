package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/profiler"
	"github.com/lox/kozelassist/internal/rules"
)

const (
	// DefaultSuggestionTimeout bounds how long a suggestion provider may take
	DefaultSuggestionTimeout = 300 * time.Millisecond
	// OverrideConfidence is the confidence above which a suggestion replaces the heuristic card
	OverrideConfidence = 0.8
	// NoticeConfidence is the confidence above which a suggestion is logged
	NoticeConfidence = 0.6
)

// ErrSuggestionTimeout is reported when a provider does not answer in time
var ErrSuggestionTimeout = errors.New("suggestion timed out")

// Suggestion is an external card pick with a confidence in [0,1]
type Suggestion struct {
	Card       deck.Card `json:"card"`
	Confidence float64   `json:"confidence"`
}

// SuggestionProvider proposes a card from the legal set. A nil suggestion
// with a nil error means no opinion.
type SuggestionProvider interface {
	Suggest(ctx context.Context, state game.GameState, legal []deck.Card) (*Suggestion, error)
}

// SuggestionFunc adapts a function to SuggestionProvider
type SuggestionFunc func(ctx context.Context, state game.GameState, legal []deck.Card) (*Suggestion, error)

// Suggest calls f
func (f SuggestionFunc) Suggest(ctx context.Context, state game.GameState, legal []deck.Card) (*Suggestion, error) {
	return f(ctx, state, legal)
}

// StyleSource classifies players by name
type StyleSource interface {
	ClassifyStyle(player string) profiler.StyleAnalysis
}

// Source records what decided a recommendation
type Source string

const (
	SourceOnlyMove   Source = "only-move"
	SourceHeuristic  Source = "heuristic"
	SourceSuggestion Source = "suggestion"
)

// Recommendation is the advisor's answer for one turn
type Recommendation struct {
	Card      deck.Card `json:"card"`
	Index     int       `json:"index"`
	Reasoning string    `json:"reasoning"`
	Strategy  Strategy  `json:"strategy,omitempty"`
	Source    Source    `json:"source"`
}

// Advisor recommends a card for the deciding seat of a GameState
type Advisor struct {
	rules      rules.Engine
	strategist Strategist
	provider   SuggestionProvider
	styles     StyleSource
	clock      quartz.Clock
	timeout    time.Duration
	logger     *log.Logger
}

// AdvisorOption configures an Advisor
type AdvisorOption func(*Advisor)

// WithSuggestionProvider installs an optional external suggestion source
func WithSuggestionProvider(p SuggestionProvider) AdvisorOption {
	return func(a *Advisor) { a.provider = p }
}

// WithStyleSource enables profile-based adaptation
func WithStyleSource(s StyleSource) AdvisorOption {
	return func(a *Advisor) { a.styles = s }
}

// WithClock sets the clock used for the suggestion timeout
func WithClock(c quartz.Clock) AdvisorOption {
	return func(a *Advisor) { a.clock = c }
}

// WithSuggestionTimeout bounds each provider call; non-positive values keep the default
func WithSuggestionTimeout(d time.Duration) AdvisorOption {
	return func(a *Advisor) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAdvisor creates an advisor evaluating rules with engine
func NewAdvisor(engine rules.Engine, logger *log.Logger, opts ...AdvisorOption) *Advisor {
	a := &Advisor{
		rules:      engine,
		strategist: NewStrategist(engine),
		clock:      quartz.NewReal(),
		timeout:    DefaultSuggestionTimeout,
		logger:     logger.WithPrefix("advisor"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ChooseCard returns the recommended card, or nil when nothing is playable
func (a *Advisor) ChooseCard(ctx context.Context, state game.GameState) *Recommendation {
	legal := a.rules.LegalMoves(state.Hand, state.Trick, state.Round)
	if len(legal) == 0 {
		a.logger.Debug("No legal cards", "hand", deck.FormatCards(state.Hand))
		return nil
	}
	if len(legal) == 1 {
		return &Recommendation{
			Card:      legal[0],
			Index:     deck.IndexOf(state.Hand, legal[0]),
			Reasoning: "Only legal card",
			Source:    SourceOnlyMove,
		}
	}

	if rec := a.consult(ctx, state, legal); rec != nil {
		return rec
	}

	thinking := &ThinkingContext{}
	sit := analyze(a.rules, state)
	a.logger.Debug("Situation",
		"seat", state.Seat,
		"winner", sit.Winner,
		"trickPoints", sit.Trick.Points,
		"aggression", sit.Aggression,
		"defense", sit.Defense)

	if a.styles != nil {
		before := sit
		sit = Adapt(sit, a.tableRead(state), thinking)
		if before.Aggression != sit.Aggression || before.Defense != sit.Defense {
			a.logger.Debug("Adapted to table",
				"aggressionBefore", before.Aggression, "aggression", sit.Aggression,
				"defenseBefore", before.Defense, "defense", sit.Defense)
		}
	}

	strategy := a.strategist.Select(sit)
	card := a.strategist.Play(strategy, state.Trick, legal, sit, thinking)

	a.logger.Info("Recommendation",
		"seat", state.Seat,
		"strategy", strategy,
		"card", card,
		"legal", deck.FormatCards(legal))

	return &Recommendation{
		Card:      card,
		Index:     deck.IndexOf(state.Hand, card),
		Reasoning: thinking.GetThoughts(),
		Strategy:  strategy,
		Source:    SourceHeuristic,
	}
}

// consult asks the provider for a card and returns an override when it is
// confident and legal. Any failure falls back to the heuristic.
func (a *Advisor) consult(ctx context.Context, state game.GameState, legal []deck.Card) *Recommendation {
	if a.provider == nil {
		return nil
	}

	s, err := a.suggest(ctx, state, legal)
	if err != nil {
		a.logger.Warn("Suggestion unavailable", "error", err)
		return nil
	}
	if s == nil || s.Confidence <= NoticeConfidence {
		return nil
	}
	if !deck.Contains(legal, s.Card) {
		a.logger.Warn("Suggested card is not legal", "card", s.Card, "confidence", s.Confidence)
		return nil
	}

	a.logger.Info("Suggestion", "card", s.Card, "confidence", s.Confidence)
	if s.Confidence <= OverrideConfidence {
		return nil
	}
	return &Recommendation{
		Card:      s.Card,
		Index:     deck.IndexOf(state.Hand, s.Card),
		Reasoning: fmt.Sprintf("Suggested with %.0f%% confidence", s.Confidence*100),
		Source:    SourceSuggestion,
	}
}

type suggestResult struct {
	suggestion *Suggestion
	err        error
}

func (a *Advisor) suggest(ctx context.Context, state game.GameState, legal []deck.Card) (*Suggestion, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Wait for the provider or timeout using the quartz clock
	timeoutFired := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	results := make(chan suggestResult, 1)
	go func() {
		s, err := a.provider.Suggest(ctx, state, append([]deck.Card(nil), legal...))
		results <- suggestResult{suggestion: s, err: err}
	}()

	select {
	case r := <-results:
		return r.suggestion, r.err
	case <-timeoutFired:
		return nil, fmt.Errorf("after %s: %w", a.timeout, ErrSuggestionTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *Advisor) tableRead(state game.GameState) TableRead {
	var read TableRead
	if name := state.PartnerName(); name != "" {
		analysis := a.styles.ClassifyStyle(name)
		read.Partner = &analysis
	}
	opponents := state.OpponentNames()
	for _, seat := range game.Positions {
		if name, ok := opponents[seat]; ok {
			read.Opponents = append(read.Opponents, a.styles.ClassifyStyle(name))
		}
	}
	return read
}
