package main

type AdviseCmd struct {
	PositionFlags

	Players     []string `short:"p" help:"Player at a seat as seat=name, used for profile adaptation (repeatable)"`
	MyScore     int      `help:"Our team's game score"`
	OppScore    int      `help:"Opponents' game score"`
	RoundPoints int      `help:"Card points our team has taken this round"`
	Summary     bool     `help:"Show the profiled style of each named player"`
}

func (c *AdviseCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	state, err := c.state()
	if err != nil {
		return err
	}
	state.MyScore = c.MyScore
	state.OpponentScore = c.OppScore
	state.RoundPoints = c.RoundPoints
	if state.Players, err = parsePlayers(c.Players); err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	e, err := openEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}

	p := g.printer()
	p.Recommendation(state, e.ChooseCard(ctx, state))
	if c.Summary && len(state.Players) > 0 {
		p.Table(e.TableSummary(state.Players))
	}
	return nil
}
