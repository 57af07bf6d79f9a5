package profiler

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfiler(t *testing.T) (*Profiler, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	return New(clock, log.NewWithOptions(io.Discard, log.Options{})), clock
}

func record(p *Profiler, player string, n int, obs Observation) {
	for range n {
		p.RecordMove(player, obs)
	}
}

func TestSmoothing(t *testing.T) {
	p, _ := newTestProfiler(t)

	p.RecordMove("anna", Observation{Aggressive: true})
	prof, ok := p.Profile("anna")
	require.True(t, ok)
	assert.InDelta(t, 0.5+0.1*(1-0.5), prof.Aggressiveness, 1e-9)
	assert.InDelta(t, 0.5*(1-0.05), prof.RiskTaking, 1e-9)

	prev := prof.Aggressiveness
	p.RecordMove("anna", Observation{})
	prof, _ = p.Profile("anna")
	assert.InDelta(t, prev*(1-0.05), prof.Aggressiveness, 1e-9)
}

func TestRecentRingNewestFirst(t *testing.T) {
	p, _ := newTestProfiler(t)
	for i := range 25 {
		p.RecordMove("anna", Observation{PointsInTrick: i})
	}
	prof, _ := p.Profile("anna")
	require.Len(t, prof.Recent, RecentLimit)
	assert.Equal(t, 24, prof.Recent[0].PointsInTrick)
	assert.Equal(t, 5, prof.Recent[RecentLimit-1].PointsInTrick)
	assert.Equal(t, 25, prof.Moves.Total)
	assert.Equal(t, 25, prof.Moves.TricksAbandoned)
}

func TestClassifyStyle(t *testing.T) {
	t.Run("unknown below minimum", func(t *testing.T) {
		p, _ := newTestProfiler(t)
		record(p, "anna", MinMoves-1, Observation{Aggressive: true, Risky: true})
		a := p.ClassifyStyle("anna")
		assert.Equal(t, Unknown, a.Style)
		assert.Zero(t, a.Confidence)
		assert.Equal(t, PostureDefault, p.CounterStrategy("anna").Posture)
	})

	t.Run("aggressive", func(t *testing.T) {
		p, _ := newTestProfiler(t)
		record(p, "anna", 20, Observation{Aggressive: true, Risky: true, TrickWon: true})
		a := p.ClassifyStyle("anna")
		assert.Equal(t, Aggressive, a.Style)
		assert.Equal(t, 1.0, a.Confidence)
		assert.Equal(t, 1.0, a.TrickWinRate)
		assert.Equal(t, Defend, p.CounterStrategy("anna").Posture)
	})

	t.Run("defensive", func(t *testing.T) {
		p, _ := newTestProfiler(t)
		// 0.5 * 0.95^n drops below 0.3 after 10 moves
		record(p, "boris", 12, Observation{})
		a := p.ClassifyStyle("boris")
		assert.Equal(t, Defensive, a.Style)
		assert.InDelta(t, 0.6, a.Confidence, 1e-9)
		assert.Equal(t, Attack, p.CounterStrategy("boris").Posture)
	})

	t.Run("assertive", func(t *testing.T) {
		p, _ := newTestProfiler(t)
		record(p, "vera", 7, Observation{Aggressive: true})
		a := p.ClassifyStyle("vera")
		assert.Equal(t, Assertive, a.Style)
		assert.Equal(t, Compete, p.CounterStrategy("vera").Posture)
	})

	t.Run("risky", func(t *testing.T) {
		p, _ := newTestProfiler(t)
		record(p, "gleb", 8, Observation{Risky: true})
		a := p.ClassifyStyle("gleb")
		assert.Equal(t, Risky, a.Style)
		assert.Equal(t, Caution, p.CounterStrategy("gleb").Posture)
	})

	t.Run("low confidence counter", func(t *testing.T) {
		p, _ := newTestProfiler(t)
		record(p, "dima", 5, Observation{Aggressive: true})
		a := p.ClassifyStyle("dima")
		assert.Equal(t, 0.25, a.Confidence)
		assert.Equal(t, PostureDefault, p.CounterStrategy("dima").Posture)
	})
}

func TestPruneStale(t *testing.T) {
	p, clock := newTestProfiler(t)
	p.RecordMove("old", Observation{})
	clock.Advance(20 * 24 * time.Hour)
	p.RecordMove("fresh", Observation{})

	now := clock.Now().Add(15 * 24 * time.Hour)
	assert.Equal(t, 1, p.PruneStale(now))
	assert.Equal(t, []string{"fresh"}, p.Players())
}

func TestSnapshotRestore(t *testing.T) {
	p, _ := newTestProfiler(t)
	record(p, "anna", 3, Observation{Card: deck.Catcher, Aggressive: true})
	snap := p.Snapshot()

	q, _ := newTestProfiler(t)
	q.Restore(snap)
	got, ok := q.Profile("anna")
	require.True(t, ok)
	assert.Equal(t, snap["anna"], got)
	assert.Equal(t, 3, got.Moves.Trumps)

	p.RecordMove("anna", Observation{})
	again, _ := q.Profile("anna")
	assert.Equal(t, 3, again.Moves.Total, "restored copy must not alias")
}

func TestSummary(t *testing.T) {
	p, _ := newTestProfiler(t)
	record(p, "anna", 20, Observation{Aggressive: true, Risky: true})
	s := p.Summary(map[game.Position]string{game.Top: "anna", game.Left: ""})
	require.Len(t, s, 1)
	assert.Equal(t, Aggressive, s[game.Top].Analysis.Style)
	assert.Equal(t, Defend, s[game.Top].Counter.Posture)
}

func TestPointCardsFollowPointPolicy(t *testing.T) {
	tr := game.Trick{
		{Position: game.Left, Card: deck.NewCard(deck.Jack, deck.Hearts)},
		{Position: game.Top, Card: deck.NewCard(deck.King, deck.Hearts)},
	}
	classic := scoring.New(deck.DefaultPolicy().WithPoints(deck.ClassicPoints))

	p, _ := newTestProfiler(t)
	for _, seat := range []game.Position{game.Left, game.Top} {
		obs, ok := Observe(tr, seat, game.Left, classic)
		require.True(t, ok)
		p.RecordMove(seat.String(), obs)
	}

	jack, _ := p.Profile(game.Left.String())
	assert.Equal(t, 0, jack.Moves.PointCards, "jacks score nothing under classic points")
	king, _ := p.Profile(game.Top.String())
	assert.Equal(t, 1, king.Moves.PointCards)

	obs, _ := Observe(tr, game.Left, game.Left, scoring.New(deck.DefaultPolicy()))
	assert.Equal(t, 2, obs.CardPoints)
}

func TestConfidenceSaturates(t *testing.T) {
	p, _ := newTestProfiler(t)
	record(p, "anna", ConfidenceMoves/2, Observation{Aggressive: true})
	assert.InDelta(t, 0.5, p.ClassifyStyle("anna").Confidence, 1e-9)

	record(p, "anna", ConfidenceMoves, Observation{Aggressive: true})
	assert.InDelta(t, 1.0, p.ClassifyStyle("anna").Confidence, 1e-9)
}

func TestObserve(t *testing.T) {
	tr := game.Trick{
		{Position: game.Top, Card: deck.NewCard(deck.Ten, deck.Hearts)},
		{Position: game.Right, Card: deck.NewCard(deck.Ace, deck.Hearts)},
		{Position: game.Bottom, Card: deck.NewCard(deck.Eight, deck.Clubs)},
		{Position: game.Left, Card: deck.NewCard(deck.Seven, deck.Hearts)},
	}
	scorer := scoring.New(deck.DefaultPolicy())

	obs, ok := Observe(tr, game.Bottom, game.Bottom, scorer)
	require.True(t, ok)
	assert.True(t, obs.TrickWon)
	assert.True(t, obs.Aggressive)
	assert.False(t, obs.Risky)
	assert.Equal(t, 21, obs.PointsInTrick)

	obs, _ = Observe(tr, game.Right, game.Bottom, scorer)
	assert.False(t, obs.Aggressive)
	assert.True(t, obs.Risky)

	obs, _ = Observe(tr, game.Top, game.Bottom, scorer)
	assert.False(t, obs.Risky, "partner's points stay with the team")

	_, ok = Observe(tr[:2], game.Left, game.Top, scorer)
	assert.False(t, ok)
}
