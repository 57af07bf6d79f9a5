// Package display renders recommendations, statistics, profiles and
// simulation results for the kozel command.
package display

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lox/kozelassist/internal/bot"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/engine"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/history"
	"github.com/lox/kozelassist/internal/profiler"
	"github.com/lox/kozelassist/internal/simulator"
	"github.com/lox/kozelassist/internal/statistics"
)

// Card renders one card: trumps gold, red suits red, the rest grey
func (p *Printer) Card(c deck.Card) string {
	switch {
	case c.IsTrump():
		return p.styles.trump.Render(c.String())
	case c.Suit.IsRed():
		return p.styles.redCard.Render(c.String())
	default:
		return p.styles.blackCard.Render(c.String())
	}
}

// Cards formats cards with colors
func (p *Printer) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = p.Card(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Trick formats a trick as seat:card pairs
func (p *Printer) Trick(t game.Trick) string {
	if len(t) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(t))
	for i, play := range t {
		parts[i] = fmt.Sprintf("%s:%s", play.Position, p.Card(play.Card))
	}
	return strings.Join(parts, " ")
}

func (p *Printer) header(title string) {
	fmt.Fprintln(p.w, p.styles.header.Render(title))
}

func (p *Printer) field(label string, format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.label.Render(label+":"), p.styles.value.Render(fmt.Sprintf(format, args...)))
}

// Legal prints the playable subset of a hand
func (p *Printer) Legal(hand, legal []deck.Card) {
	p.header("Legal moves")
	p.field("Hand", "%s", p.Cards(hand))
	p.field("Legal", "%s", p.Cards(legal))
}

// Recommendation prints the advisor's pick
func (p *Printer) Recommendation(state game.GameState, rec *bot.Recommendation) {
	p.header("Recommendation")
	p.field("Hand", "%s", p.Cards(state.Hand))
	p.field("Table", "%s", p.Trick(state.Trick))
	if rec == nil {
		fmt.Fprintln(p.w, p.styles.warning.Render("No legal card to play"))
		return
	}
	fmt.Fprintf(p.w, "%s %s (card %d)\n", p.styles.success.Render("Play"), p.Card(rec.Card), rec.Index+1)
	if rec.Strategy != "" {
		p.field("Strategy", "%s", rec.Strategy)
	}
	p.field("Source", "%s", rec.Source)
	if rec.Reasoning != "" {
		fmt.Fprintln(p.w, p.styles.info.Render(rec.Reasoning))
	}
}

// Statistics prints the engine's outcome and efficacy digest
func (p *Printer) Statistics(s engine.Statistics) {
	o := s.Outcomes
	p.header("Statistics")
	p.field("Games", "%d (%d won, %d lost, %d drawn)", o.Games, o.Wins, o.Losses, o.Draws)
	p.field("Win rate", "%.1f%%", o.WinRate)
	p.field("Average score", "%d : %d", o.AverageScore, o.AverageOpponent)
	if o.Games > 0 {
		p.field("Margin", "%.2f ± %.2f", o.MarginMean, o.MarginStdDev)
	}
	if o.BestWin != nil {
		p.field("Best win", "%s (+%d)", o.BestWin.Score, o.BestWin.Margin)
	}
	if o.WorstLoss != nil {
		p.field("Worst loss", "%s (-%d)", o.WorstLoss.Score, o.WorstLoss.Margin)
	}
	if o.Streak.Count > 0 {
		p.field("Streak", "%d %s", o.Streak.Count, o.Streak.Result)
	}
	p.field("Players profiled", "%d", s.Players)
	p.field("Archived games", "%d", s.ArchivedGames)
	p.field("Moves this game", "%d", s.CurrentMoves)

	p.efficacy(s.Efficacy)

	if len(s.Leads) > 0 {
		p.header("Opening leads")
		for _, l := range s.Leads {
			fmt.Fprintf(p.w, "%s took %d of %d tricks\n", p.Card(l.Card), l.Wins, l.Total)
		}
	}
}

func (p *Printer) efficacy(e history.Efficacy) {
	if e.Confidence == 0 {
		fmt.Fprintln(p.w, p.styles.info.Render("Not enough recorded moves to judge recommendations"))
		return
	}
	verdict := p.styles.warning.Render("ignoring recommendations has done better")
	if e.Better {
		verdict = p.styles.success.Render("following recommendations wins more tricks")
	}
	p.field("Followed", "%d (%.0f%% tricks won)", e.Followed, e.FollowedWinRate*100)
	p.field("Ignored", "%d (%.0f%% tricks won)", e.Ignored, e.IgnoredWinRate*100)
	fmt.Fprintf(p.w, "%s (confidence %.2f)\n", verdict, e.Confidence)
}

// CardStats prints how one card has fared in archived games
func (p *Printer) CardStats(card deck.Card, s history.CardStats, ok bool) {
	p.header("Card " + p.Card(card))
	if !ok {
		fmt.Fprintln(p.w, p.styles.info.Render("Never played in archived games"))
		return
	}
	p.field("Played", "%d", s.TimesPlayed)
	p.field("Tricks won", "%.0f%%", s.WinRate*100)
	p.field("Average points", "%.1f", s.AvgPoints)
}

// Profiles prints each profile with its style and counter posture
func (p *Printer) Profiles(profiles []profiler.Profile, classify func(string) profiler.StyleAnalysis) {
	p.header("Player profiles")
	if len(profiles) == 0 {
		fmt.Fprintln(p.w, p.styles.info.Render("No players profiled yet"))
		return
	}
	slices.SortFunc(profiles, func(a, b profiler.Profile) int { return strings.Compare(a.Name, b.Name) })
	for _, prof := range profiles {
		a := classify(prof.Name)
		counter := profiler.CounterFor(a)
		fmt.Fprintf(p.w, "%s %s aggr=%.2f risk=%.2f tricks=%.0f%% moves=%d\n",
			p.styles.label.Render(prof.Name),
			p.styles.value.Render(string(a.Style)),
			prof.Aggressiveness, prof.RiskTaking, prof.TrickWinRate()*100, prof.Moves.Total)
		if counter.Posture != profiler.PostureDefault {
			fmt.Fprintf(p.w, "  %s %s\n", p.styles.warning.Render(string(counter.Posture)), counter.Advice)
		}
	}
}

// Simulation prints a summary of a simulation run
func (p *Printer) Simulation(res *simulator.Result, seats [4]string) {
	o := &res.Outcomes
	p.header(fmt.Sprintf("Simulation: %s+%s vs %s+%s",
		seats[game.Bottom], seats[game.Top], seats[game.Left], seats[game.Right]))
	p.field("Games", "%d in %s", o.Games, res.Elapsed.Round(time.Millisecond))
	p.field("Rounds", "%d (%.1f per game)", res.Rounds, perGame(res.Rounds, o.Games))
	p.field("Catches", "%d", res.Catches)
	p.field("Results", "%d won, %d lost, %d drawn (%.1f%%)", o.Wins, o.Losses, o.Draws, o.WinRate())

	low, high := o.ConfidenceInterval95()
	p.field("Margin", "mean %.3f, median %.1f, sd %.3f", o.Mean(), o.Median(), o.StdDev())
	p.field("95% CI", "[%.3f, %.3f]", low, high)
	p.field("Percentiles", "P5=%.1f P25=%.1f P75=%.1f P95=%.1f",
		o.Percentile(0.05), o.Percentile(0.25), o.Percentile(0.75), o.Percentile(0.95))

	switch {
	case low > 0:
		fmt.Fprintln(p.w, p.styles.success.Render("bottom/top team is significantly stronger"))
	case high < 0:
		fmt.Fprintln(p.w, p.styles.error.Render("bottom/top team is significantly weaker"))
	default:
		fmt.Fprintln(p.w, p.styles.info.Render("no significant difference"))
	}
}

// Outcome prints one game result line
func (p *Printer) Outcome(o statistics.GameOutcome) {
	style := p.styles.info
	switch o.Result() {
	case statistics.Win:
		style = p.styles.success
	case statistics.Loss:
		style = p.styles.error
	}
	fmt.Fprintf(p.w, "%s %d:%d\n", style.Render(string(o.Result())), o.MyGames, o.OpponentGames)
}

func perGame(n, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(n) / float64(games)
}

// Table prints the profiled style of each seat in play order
func (p *Printer) Table(summary map[game.Position]profiler.SeatSummary) {
	p.header("Table")
	for _, seat := range game.Positions {
		s, ok := summary[seat]
		if !ok {
			continue
		}
		fmt.Fprintf(p.w, "%-6s %s %s (%.0f%% sure)\n",
			seat, p.styles.label.Render(s.Name), p.styles.value.Render(string(s.Analysis.Style)), s.Analysis.Confidence*100)
		if s.Counter.Posture != profiler.PostureDefault {
			fmt.Fprintf(p.w, "       %s %s\n", p.styles.warning.Render(string(s.Counter.Posture)), s.Counter.Advice)
		}
	}
}
