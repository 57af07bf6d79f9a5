package main

import (
	"encoding/json"
	"os"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/history"
)

type StatsCmd struct {
	JSON bool   `help:"Print statistics as JSON"`
	Card string `help:"Only report how this card (e.g. Qc) has fared"`
}

type cardReport struct {
	Card   deck.Card         `json:"card"`
	Played bool              `json:"played"`
	Stats  history.CardStats `json:"stats"`
}

func (c *StatsCmd) Run(g *Globals) error {
	var card deck.Card
	if c.Card != "" {
		parsed, err := deck.ParseCard(c.Card)
		if err != nil {
			return err
		}
		card = parsed
	}

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

	if c.Card != "" {
		stats, ok := e.CardStats(card)
		if c.JSON {
			return printJSON(cardReport{Card: card, Played: ok, Stats: stats})
		}
		g.printer().CardStats(card, stats, ok)
		return nil
	}

	stats := e.GetStatistics()
	if c.JSON {
		return printJSON(stats)
	}
	g.printer().Statistics(stats)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
