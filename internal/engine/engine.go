// Package engine is the long-lived context a host embeds: it owns the
// profiler, the move ledger, the outcome statistics and the advisor, and
// persists them through a storage.Store.
//
// Typical lifecycle:
//
//	e := engine.New(engine.Options{Store: store, Logger: logger})
//	if err := e.Load(ctx); err != nil { ... }
//	rec := e.ChooseCard(ctx, state)
//	e.RecordMove(ctx, engine.Move{State: state, Played: card, Completed: trick})
//	e.RecordGameOutcome(ctx, outcome)
//	_ = e.Flush(ctx)
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kozelassist/internal/bot"
	"github.com/lox/kozelassist/internal/config"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/gameid"
	"github.com/lox/kozelassist/internal/history"
	"github.com/lox/kozelassist/internal/profiler"
	"github.com/lox/kozelassist/internal/rules"
	"github.com/lox/kozelassist/internal/statistics"
	"github.com/lox/kozelassist/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Policy            deck.Policy
	Store             storage.Store
	Clock             quartz.Clock
	Logger            *log.Logger
	IDs               *gameid.Generator
	Provider          bot.SuggestionProvider
	SuggestionTimeout time.Duration
	// DisableAdaptation skips profile-based weight adjustment
	DisableAdaptation bool
}

// OptionsFromConfig maps the engine and storage blocks of a config file
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := cfg.Engine.RankingPolicy()
	if err != nil {
		return Options{}, err
	}

	var store storage.Store
	switch cfg.Storage.Backend {
	case "memory":
		store = storage.NewMemoryStore()
	default:
		fs, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return Options{}, fmt.Errorf("failed to open store: %w", err)
		}
		store = fs
	}

	return Options{
		Policy:            policy,
		Store:             store,
		SuggestionTimeout: cfg.Engine.Timeout(),
		DisableAdaptation: !cfg.Engine.Adapt(),
	}, nil
}

// Engine is safe for concurrent use
type Engine struct {
	rules    rules.Engine
	profiler *profiler.Profiler
	ledger   *history.Ledger
	advisor  *bot.Advisor
	store    storage.Store
	clock    quartz.Clock
	logger   *log.Logger

	mu       sync.Mutex
	outcomes statistics.Outcomes
}

// New wires the components together. Nothing is read from the store until Load.
func New(opts Options) *Engine {
	if opts.Policy.Name() == "" {
		opts.Policy = deck.DefaultPolicy()
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	re := rules.New(opts.Policy)
	prof := profiler.New(opts.Clock, opts.Logger)

	advisorOpts := []bot.AdvisorOption{
		bot.WithClock(opts.Clock),
		bot.WithSuggestionTimeout(opts.SuggestionTimeout),
	}
	if opts.Provider != nil {
		advisorOpts = append(advisorOpts, bot.WithSuggestionProvider(opts.Provider))
	}
	if !opts.DisableAdaptation {
		advisorOpts = append(advisorOpts, bot.WithStyleSource(prof))
	}

	return &Engine{
		rules:    re,
		profiler: prof,
		ledger:   history.New(opts.Store, opts.IDs, opts.Clock, opts.Logger),
		advisor:  bot.NewAdvisor(re, opts.Logger, advisorOpts...),
		store:    opts.Store,
		clock:    opts.Clock,
		logger:   opts.Logger.WithPrefix("engine"),
	}
}

// Load restores profiles, history and statistics from the store
func (e *Engine) Load(ctx context.Context) error {
	var (
		profiles map[string]profiler.Profile
		outcomes statistics.Outcomes
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := storage.LoadJSON(ctx, e.store, storage.KeyProfiles, &profiles)
		return err
	})
	g.Go(func() error {
		return e.ledger.Load(ctx)
	})
	g.Go(func() error {
		found, err := storage.LoadJSON(ctx, e.store, storage.KeyStatistics, &outcomes)
		if err != nil || !found {
			return err
		}
		if err := outcomes.Validate(); err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if profiles != nil {
		e.profiler.Restore(profiles)
	}
	e.mu.Lock()
	e.outcomes = outcomes
	e.mu.Unlock()

	e.logger.Info("Engine state loaded",
		"profiles", len(profiles),
		"games", outcomes.Games,
		"gameID", e.ledger.CurrentGameID())
	return nil
}

// Flush writes profiles, history and statistics concurrently
func (e *Engine) Flush(ctx context.Context) error {
	profiles := e.profiler.Snapshot()
	e.mu.Lock()
	outcomes := e.snapshotOutcomesLocked()
	e.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return storage.SaveJSON(ctx, e.store, storage.KeyProfiles, profiles)
	})
	g.Go(func() error {
		return e.ledger.Flush(ctx)
	})
	g.Go(func() error {
		return storage.SaveJSON(ctx, e.store, storage.KeyStatistics, outcomes)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}
	e.logger.Debug("Engine state flushed", "profiles", len(profiles), "games", outcomes.Games)
	return nil
}

func (e *Engine) snapshotOutcomesLocked() statistics.Outcomes {
	out := e.outcomes
	out.Margins = append([]float64(nil), e.outcomes.Margins...)
	out.Recent = append([]statistics.GameRecord(nil), e.outcomes.Recent...)
	return out
}

// Rules returns the rules engine in use
func (e *Engine) Rules() rules.Engine { return e.rules }

// Profiler returns the player profiler
func (e *Engine) Profiler() *profiler.Profiler { return e.profiler }

// Ledger returns the move ledger
func (e *Engine) Ledger() *history.Ledger { return e.ledger }

// ChooseCard recommends a card for state. It never touches the store.
func (e *Engine) ChooseCard(ctx context.Context, state game.GameState) *bot.Recommendation {
	return e.advisor.ChooseCard(ctx, state)
}

// LegalMoves returns the playable subset of hand
func (e *Engine) LegalMoves(hand []deck.Card, trick game.Trick, round game.RoundContext) []deck.Card {
	return e.rules.LegalMoves(hand, trick, round)
}

// TrickWinner returns the seat currently winning trick
func (e *Engine) TrickWinner(trick game.Trick) (game.Position, bool) {
	return e.rules.TrickWinner(trick)
}

// ClassifyStyle classifies a player from their profile
func (e *Engine) ClassifyStyle(player string) profiler.StyleAnalysis {
	return e.profiler.ClassifyStyle(player)
}

// CounterStrategy suggests a posture against a player
func (e *Engine) CounterStrategy(player string) profiler.Counter {
	return e.profiler.CounterStrategy(player)
}

// PruneStale drops profiles not updated recently
func (e *Engine) PruneStale() int {
	return e.profiler.PruneStale(e.clock.Now())
}

// TableSummary describes every named player at the table
func (e *Engine) TableSummary(players map[game.Position]string) map[game.Position]profiler.SeatSummary {
	return e.profiler.Summary(players)
}
