package main

import (
	"fmt"

	"github.com/lox/kozelassist/internal/profiler"
)

type ProfilesCmd struct {
	List  ProfilesListCmd  `cmd:"" default:"withargs" help:"List profiled players"`
	Prune ProfilesPruneCmd `cmd:"" help:"Drop profiles not updated in 30 days"`
}

type ProfilesListCmd struct {
	Player string `arg:"" optional:"" help:"Only show this player"`
}

func (c *ProfilesListCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	e, err := openEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var profiles []profiler.Profile
	for _, name := range e.Profiler().Players() {
		if c.Player != "" && name != c.Player {
			continue
		}
		if prof, ok := e.Profiler().Profile(name); ok {
			profiles = append(profiles, prof)
		}
	}
	if c.Player != "" && len(profiles) == 0 {
		return fmt.Errorf("no profile for %q", c.Player)
	}
	g.printer().Profiles(profiles, e.ClassifyStyle)
	return nil
}

type ProfilesPruneCmd struct{}

func (c *ProfilesPruneCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	e, err := openEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	removed := e.PruneStale()
	if err := flushEngine(ctx, e); err != nil {
		return err
	}
	fmt.Printf("Removed %d stale profiles, %d remaining\n", removed, len(e.Profiler().Players()))
	return nil
}
