package display

import (
	"bytes"
	"testing"

	"github.com/lox/kozelassist/internal/bot"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/engine"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/history"
	"github.com/lox/kozelassist/internal/profiler"
	"github.com/lox/kozelassist/internal/simulator"
	"github.com/lox/kozelassist/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf, true), &buf
}

func TestCardsPlain(t *testing.T) {
	p, _ := plain()
	assert.Equal(t, "[7♠ A♥ Q♣]", p.Cards(deck.MustParseCards("7s Ah Qc")))
	assert.Equal(t, "[]", p.Cards(nil))

	trick := game.Trick{}.With(game.Top, deck.MustParseCards("10h")[0]).With(game.Right, deck.MustParseCards("Ah")[0])
	assert.Equal(t, "top:10♥ right:A♥", p.Trick(trick))
	assert.Equal(t, "(empty)", p.Trick(nil))
}

func TestRecommendation(t *testing.T) {
	p, buf := plain()
	state := game.GameState{Hand: deck.MustParseCards("7s Ah Qc")}
	p.Recommendation(state, &bot.Recommendation{
		Card:      deck.MustParseCards("Ah")[0],
		Index:     1,
		Reasoning: "Leading a middle plain card",
		Strategy:  bot.Default,
		Source:    bot.SourceHeuristic,
	})

	out := buf.String()
	assert.Contains(t, out, "Play A♥ (card 2)")
	assert.Contains(t, out, "Strategy: default")
	assert.Contains(t, out, "Leading a middle plain card")
	assert.NotContains(t, out, "\x1b[", "no escape codes without colour")

	buf.Reset()
	p.Recommendation(state, nil)
	assert.Contains(t, buf.String(), "No legal card")
}

func TestStatistics(t *testing.T) {
	var outcomes statistics.Outcomes
	outcomes.Record(statistics.GameOutcome{MyGames: 12, OpponentGames: 4})
	outcomes.Record(statistics.GameOutcome{MyGames: 6, OpponentGames: 12})

	p, buf := plain()
	p.Statistics(engine.Statistics{Outcomes: outcomes.Summary(), Players: 3})
	out := buf.String()
	assert.Contains(t, out, "Games: 2 (1 won, 1 lost, 0 drawn)")
	assert.Contains(t, out, "Win rate: 50.0%")
	assert.Contains(t, out, "Best win: 12:4 (+8)")
	assert.Contains(t, out, "Worst loss: 6:12 (-6)")
	assert.Contains(t, out, "Not enough recorded moves")

	buf.Reset()
	p.Statistics(engine.Statistics{Efficacy: history.Efficacy{Followed: 20, FollowedWinRate: 0.6, Ignored: 5, IgnoredWinRate: 0.2, Better: true, Confidence: 0.4}})
	assert.Contains(t, buf.String(), "Followed: 20 (60% tricks won)")
	assert.Contains(t, buf.String(), "following recommendations wins more tricks")
	assert.NotContains(t, buf.String(), "Opening leads")

	buf.Reset()
	p.Statistics(engine.Statistics{Leads: []engine.LeadPattern{
		{Card: deck.NewCard(deck.Ace, deck.Hearts), PatternStats: history.PatternStats{Wins: 9, Total: 12}},
	}})
	assert.Contains(t, buf.String(), "Opening leads")
	assert.Contains(t, buf.String(), "A♥ took 9 of 12 tricks")
}

func TestCardStats(t *testing.T) {
	p, buf := plain()
	p.CardStats(deck.Target, history.CardStats{TimesPlayed: 4, WinRate: 0.75, AvgPoints: 6.5}, true)
	out := buf.String()
	assert.Contains(t, out, "Card Q♣")
	assert.Contains(t, out, "Played: 4")
	assert.Contains(t, out, "Tricks won: 75%")
	assert.Contains(t, out, "Average points: 6.5")

	buf.Reset()
	p.CardStats(deck.Catcher, history.CardStats{}, false)
	assert.Contains(t, buf.String(), "Never played")
}

func TestProfiles(t *testing.T) {
	p, buf := plain()
	p.Profiles(nil, nil)
	assert.Contains(t, buf.String(), "No players profiled yet")

	buf.Reset()
	profiles := []profiler.Profile{
		{Name: "zoe", Aggressiveness: 0.9, Moves: profiler.MoveCounters{Total: 30, TricksTaken: 15, TricksAbandoned: 15}},
		{Name: "adam", Moves: profiler.MoveCounters{Total: 2}},
	}
	classify := func(name string) profiler.StyleAnalysis {
		if name == "zoe" {
			return profiler.StyleAnalysis{Style: profiler.Aggressive, Confidence: 1}
		}
		return profiler.StyleAnalysis{Style: profiler.Unknown}
	}
	p.Profiles(profiles, classify)

	out := buf.String()
	require.Less(t, bytes.Index(buf.Bytes(), []byte("adam")), bytes.Index(buf.Bytes(), []byte("zoe")), "sorted by name")
	assert.Contains(t, out, "zoe aggressive aggr=0.90")
	assert.Contains(t, out, "tricks=50%")
	assert.Contains(t, out, string(profiler.Defend))
}

func TestSimulation(t *testing.T) {
	res := &simulator.Result{Rounds: 10, Catches: 1}
	res.Outcomes.Record(statistics.GameOutcome{MyGames: 12, OpponentGames: 2})
	res.Outcomes.Record(statistics.GameOutcome{MyGames: 12, OpponentGames: 3})

	p, buf := plain()
	p.Simulation(res, [4]string{"advisor", "random", "advisor", "random"})
	out := buf.String()
	assert.Contains(t, out, "Simulation: advisor+advisor vs random+random")
	assert.Contains(t, out, "Rounds: 10 (5.0 per game)")
	assert.Contains(t, out, "2 won, 0 lost")
	assert.Contains(t, out, "significantly stronger")
}

func TestOutcome(t *testing.T) {
	p, buf := plain()
	p.Outcome(statistics.GameOutcome{MyGames: 3, OpponentGames: 12})
	assert.Equal(t, "loss 3:12\n", buf.String())
}

func TestTable(t *testing.T) {
	p, buf := plain()
	p.Table(map[game.Position]profiler.SeatSummary{
		game.Top:  {Name: "bob", Analysis: profiler.StyleAnalysis{Style: profiler.Defensive, Confidence: 0.5}, Counter: profiler.Counter{Posture: profiler.Attack, Advice: "press"}},
		game.Left: {Name: "alice", Analysis: profiler.StyleAnalysis{Style: profiler.Unknown}, Counter: profiler.Counter{Posture: profiler.PostureDefault}},
	})
	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("alice")), bytes.Index(buf.Bytes(), []byte("bob")), "play order")
	assert.Contains(t, out, "top    bob defensive (50% sure)")
	assert.Contains(t, out, "attack press")
	assert.NotContains(t, out, "default")
}
