package main

import (
	"fmt"

	"github.com/lox/kozelassist/internal/rules"
)

type LegalCmd struct {
	PositionFlags
}

func (c *LegalCmd) Run(g *Globals) error {
	cfg, _, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	policy, err := cfg.Engine.RankingPolicy()
	if err != nil {
		return err
	}
	state, err := c.state()
	if err != nil {
		return err
	}

	re := rules.New(policy)
	p := g.printer()
	p.Legal(state.Hand, re.LegalMoves(state.Hand, state.Trick, state.Round))
	if winner, ok := re.TrickWinner(state.Trick); ok {
		card, _ := re.WinningCard(state.Trick)
		fmt.Printf("Winning so far: %s with %s\n", winner, p.Card(card))
	}
	if catch, ok := rules.SpecialCatch(state.Trick); ok {
		fmt.Printf("Catch by %s: +%d for %s\n", catch.Position, catch.Bonus, catch.Team)
	}
	return nil
}
