// Package simulator plays seeded self-play Kozel games between advisors and
// random bots and aggregates the results from the bottom/top team's side.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kozelassist/internal/config"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/engine"
	"github.com/lox/kozelassist/internal/randutil"
	"github.com/lox/kozelassist/internal/rules"
	"github.com/lox/kozelassist/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Workers     int
	Seed        int64
	TargetScore int
	MaxRounds   int
	// Seats names the strategy for Bottom, Left, Top and Right
	Seats   [4]string
	Timeout time.Duration
	Policy  deck.Policy
	Logger  *log.Logger
	// Engine, when set, chooses cards for advisor seats and records the
	// bottom seat's moves and every game outcome. Games then run one at a
	// time because the ledger tracks a single current game.
	Engine *engine.Engine
}

// ConfigFromSettings maps the simulation block of a config file
func ConfigFromSettings(s *config.SimulationSettings) (Config, error) {
	if len(s.Seats) != 4 {
		return Config{}, fmt.Errorf("exactly 4 seats required, got %d", len(s.Seats))
	}
	var seats [4]string
	copy(seats[:], s.Seats)
	return Config{
		Games:       s.Games,
		Workers:     s.Workers,
		Seed:        s.Seed,
		TargetScore: s.TargetScore,
		MaxRounds:   s.MaxRounds,
		Seats:       seats,
	}, nil
}

// GameResult is one simulated game
type GameResult struct {
	Game    int                    `json:"game"`
	Seed    int64                  `json:"seed"`
	Rounds  int                    `json:"rounds"`
	Catches int                    `json:"catches"`
	Outcome statistics.GameOutcome `json:"outcome"`
}

// Result aggregates a simulation run
type Result struct {
	Outcomes statistics.Outcomes `json:"outcomes"`
	Games    []GameResult        `json:"games"`
	Rounds   int                 `json:"rounds"`
	Catches  int                 `json:"catches"`
	Elapsed  time.Duration       `json:"elapsed"`
}

// Simulator runs Kozel self-play simulations
type Simulator struct {
	config Config
	rules  rules.Engine
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Policy.Name() == "" {
		cfg.Policy = deck.DefaultPolicy()
	}
	if cfg.Workers < 1 || cfg.Engine != nil {
		cfg.Workers = 1
	}
	if cfg.TargetScore < 1 {
		cfg.TargetScore = 12
	}
	if cfg.MaxRounds < 1 {
		cfg.MaxRounds = 60
	}
	for i, seat := range cfg.Seats {
		if seat == "" {
			cfg.Seats[i] = config.SeatAdvisor
		}
	}
	r := rules.New(cfg.Policy)
	if cfg.Engine != nil {
		r = cfg.Engine.Rules()
	}
	return &Simulator{
		config: cfg,
		rules:  r,
		logger: cfg.Logger.WithPrefix("simulator"),
	}
}

// Run plays every game and returns the aggregated result. Games are
// independent: game n always deals from randutil.Derive(seed, n).
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	games := make([]GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for n := range s.config.Games {
		g.Go(func() error {
			res, err := s.playGameWithTimeout(ctx, n)
			if err != nil {
				return fmt.Errorf("game %d: %w", n+1, err)
			}
			games[n] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Games: games}
	for _, res := range games {
		result.Outcomes.Record(res.Outcome)
		result.Rounds += res.Rounds
		result.Catches += res.Catches
	}
	if err := result.Outcomes.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	result.Elapsed = time.Since(start)

	s.logger.Info("Simulation finished",
		"games", result.Outcomes.Games,
		"wins", result.Outcomes.Wins,
		"losses", result.Outcomes.Losses,
		"rounds", result.Rounds,
		"elapsed", result.Elapsed)
	return result, nil
}

// playGameWithTimeout bounds a single game so a stuck player surfaces as
// an error instead of a hang.
func (s *Simulator) playGameWithTimeout(ctx context.Context, n int) (GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	seed := randutil.Derive(s.config.Seed, n)
	res, err := s.playGame(ctx, n, seed)
	if err != nil {
		return GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	return res, nil
}
