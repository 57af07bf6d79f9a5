package history

import (
	"math"

	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/statistics"
)

const (
	// MinEfficacyMoves is the archive size below which efficacy is not judged
	MinEfficacyMoves = 10
	// MinPatternMoves is the archive size below which patterns are not reported
	MinPatternMoves = 20
	// efficacySaturation is the followed-move count at which confidence reaches 1
	efficacySaturation = 50
)

// TrainingExample is one reward-labelled move
type TrainingExample struct {
	GameID    string            `json:"gameId"`
	MoveIndex int               `json:"moveIndex"`
	Move      MoveRecord        `json:"move"`
	Action    deck.Card         `json:"action"`
	Reward    float64           `json:"reward"`
	Followed  bool              `json:"followed"`
	Result    statistics.Result `json:"result"`
}

// MoveReward scores a move: 0.5 base, +0.2 for taking the trick plus up
// to 0.3 for the points it brought, blended 70/30 with the game outcome.
func MoveReward(m MoveRecord, result statistics.Result) float64 {
	r := 0.5
	if m.TrickWon {
		r += 0.2
		if m.PointsGained > 0 {
			r += math.Min(0.3, float64(m.PointsGained)/30)
		}
	}
	gameReward := 0.0
	if result == statistics.Win {
		gameReward = 1
	}
	return r*0.7 + gameReward*0.3
}

// TrainingExamples labels every archived move, newest game first
func (l *Ledger) TrainingExamples() []TrainingExample {
	return l.RecentTrainingExamples(0)
}

// RecentTrainingExamples labels the moves of the newest n games; n <= 0 means all
func (l *Ledger) RecentTrainingExamples(n int) []TrainingExample {
	archive := l.Archive()
	games := archive.Games
	if n > 0 && n < len(games) {
		games = games[:n]
	}

	var out []TrainingExample
	for _, g := range games {
		for i, m := range g.Moves {
			out = append(out, TrainingExample{
				GameID:    g.ID,
				MoveIndex: i,
				Move:      m,
				Action:    m.Played,
				Reward:    MoveReward(m, g.Result.Result),
				Followed:  m.Followed,
				Result:    g.Result.Result,
			})
		}
	}
	return out
}

// Efficacy compares trick win rates when the recommendation was followed or ignored
type Efficacy struct {
	TotalMoves      int     `json:"totalMoves"`
	Followed        int     `json:"followed"`
	Ignored         int     `json:"ignored"`
	FollowedWinRate float64 `json:"followedWinRate"`
	IgnoredWinRate  float64 `json:"ignoredWinRate"`
	Better          bool    `json:"better"`
	Confidence      float64 `json:"confidence"`
}

// RecommendationEfficacy analyses archived moves that carried a recommendation
func (l *Ledger) RecommendationEfficacy() Efficacy {
	moves := l.Archive().Moves
	e := Efficacy{TotalMoves: len(moves)}
	if len(moves) < MinEfficacyMoves {
		return e
	}

	var followedWins, ignoredWins int
	for _, m := range moves {
		if m.Recommended == nil {
			continue
		}
		if m.Followed {
			e.Followed++
			if m.TrickWon {
				followedWins++
			}
		} else {
			e.Ignored++
			if m.TrickWon {
				ignoredWins++
			}
		}
	}
	if e.Followed > 0 {
		e.FollowedWinRate = float64(followedWins) / float64(e.Followed)
	}
	if e.Ignored > 0 {
		e.IgnoredWinRate = float64(ignoredWins) / float64(e.Ignored)
	}
	e.Better = e.FollowedWinRate > e.IgnoredWinRate
	e.Confidence = math.Min(float64(e.Followed)/efficacySaturation, 1)
	return e
}

// CardStats summarises how a card has fared when played
type CardStats struct {
	TimesPlayed int     `json:"timesPlayed"`
	WinRate     float64 `json:"winRate"`
	AvgPoints   float64 `json:"avgPoints"`
}

// CardStats reports archived results for card; false when it was never played
func (l *Ledger) CardStats(card deck.Card) (CardStats, bool) {
	var (
		s      CardStats
		wins   int
		points int
	)
	for _, m := range l.Archive().Moves {
		if m.Played != card {
			continue
		}
		s.TimesPlayed++
		points += m.PointsGained
		if m.TrickWon {
			wins++
		}
	}
	if s.TimesPlayed == 0 {
		return s, false
	}
	s.WinRate = float64(wins) / float64(s.TimesPlayed)
	s.AvgPoints = float64(points) / float64(s.TimesPlayed)
	return s, true
}

// PatternStats counts how often a lead card took its trick
type PatternStats struct {
	Wins  int `json:"wins"`
	Total int `json:"total"`
}

// FirstMovePatterns tallies lead cards and whether they took the trick.
// It reports false until MinPatternMoves moves are archived.
func (l *Ledger) FirstMovePatterns() (map[deck.Card]PatternStats, bool) {
	moves := l.Archive().Moves
	if len(moves) < MinPatternMoves {
		return nil, false
	}
	out := make(map[deck.Card]PatternStats)
	for _, m := range moves {
		if !m.Lead {
			continue
		}
		p := out[m.Played]
		p.Total++
		if m.TrickWon {
			p.Wins++
		}
		out[m.Played] = p
	}
	return out, true
}
