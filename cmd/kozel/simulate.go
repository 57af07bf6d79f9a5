package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kozelassist/internal/engine"
	"github.com/lox/kozelassist/internal/simulator"
)

type SimulateCmd struct {
	Games   int           `short:"n" help:"Number of games, overrides config"`
	Workers int           `short:"w" help:"Parallel games, overrides config"`
	Seed    int64         `short:"s" help:"Seed for deterministic runs, overrides config"`
	Target  int           `help:"Match points that end a game, overrides config"`
	Seats   []string      `help:"Strategy per seat bottom,left,top,right (advisor|random), overrides config"`
	Timeout time.Duration `default:"30s" help:"Per-game timeout"`
	Record  bool          `help:"Record the bottom seat's games into persisted state"`
	Verbose bool          `help:"Print every game result"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	sim := cfg.Simulation
	if c.Games > 0 {
		sim.Games = c.Games
	}
	if c.Workers > 0 {
		sim.Workers = c.Workers
	}
	if c.Seed != 0 {
		sim.Seed = c.Seed
	}
	if c.Target > 0 {
		sim.TargetScore = c.Target
	}
	if len(c.Seats) > 0 {
		sim.Seats = c.Seats
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	simCfg, err := simulator.ConfigFromSettings(sim)
	if err != nil {
		return err
	}
	simCfg.Timeout = c.Timeout
	simCfg.Logger = logger
	if simCfg.Policy, err = cfg.Engine.RankingPolicy(); err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	logger.Info("Starting simulation",
		"games", simCfg.Games,
		"workers", simCfg.Workers,
		"seed", simCfg.Seed,
		"seats", sim.Seats,
		"record", c.Record)

	var result *simulator.Result
	if c.Record {
		var e *engine.Engine
		if e, err = openEngine(ctx, cfg, logger); err != nil {
			return err
		}
		result, err = recordSimulation(ctx, simCfg, e, logger)
	} else {
		result, err = simulator.New(simCfg).Run(ctx)
	}
	if err != nil {
		return err
	}

	p := g.printer()
	if c.Verbose {
		for _, game := range result.Games {
			fmt.Printf("#%-4d seed=%-20d rounds=%-3d ", game.Game, game.Seed, game.Rounds)
			p.Outcome(game.Outcome)
		}
	}
	p.Simulation(result, simCfg.Seats)
	return nil
}

// recordSimulation runs the simulation through e and saves the engine
// state afterwards, including when ctx is cancelled part way.
func recordSimulation(ctx context.Context, simCfg simulator.Config, e *engine.Engine, logger *log.Logger) (*simulator.Result, error) {
	simCfg.Engine = e
	defer func() {
		if err := flushEngine(ctx, e); err != nil {
			logger.Error("Failed to save state", "error", err)
		}
	}()
	return simulator.New(simCfg).Run(ctx)
}
