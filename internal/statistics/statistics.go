// Package statistics aggregates finished games into win/loss records and
// score-margin distributions.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RecentLimit caps the list of recent games kept in an Outcomes
const RecentLimit = 50

// Result is the outcome of a game from the assisted team's side
type Result string

const (
	Win  Result = "win"
	Loss Result = "loss"
	Draw Result = "draw"
)

// GameOutcome is a finished game as reported by the host
type GameOutcome struct {
	MyGames       int       `json:"myGames"`       // Match points won by our team
	OpponentGames int       `json:"opponentGames"` // Match points won by the opponents
	MyScore       int       `json:"myScore"`       // Card points taken by our team
	OpponentScore int       `json:"opponentScore"` // Card points taken by the opponents
	Partner       string    `json:"partner,omitempty"`
	At            time.Time `json:"at"`
}

// Result classifies the outcome by match points
func (o GameOutcome) Result() Result {
	switch {
	case o.MyGames > o.OpponentGames:
		return Win
	case o.MyGames < o.OpponentGames:
		return Loss
	default:
		return Draw
	}
}

// Margin is our match points minus theirs
func (o GameOutcome) Margin() int {
	return o.MyGames - o.OpponentGames
}

// GameRecord is one entry of the recent games list
type GameRecord struct {
	GameOutcome
	Result Result `json:"result"`
}

// Extreme records the largest win or loss seen
type Extreme struct {
	Margin int       `json:"margin"`
	Score  string    `json:"score"`
	At     time.Time `json:"at"`
}

// Outcomes tracks every recorded game. The zero value is ready to use.
type Outcomes struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	TotalScore         int `json:"totalScore"`
	TotalOpponentScore int `json:"totalOpponentScore"`

	SumMargin  float64   `json:"sumMargin"`
	SumMargin2 float64   `json:"sumMargin2"` // Sum of squares for variance calculation
	Margins    []float64 `json:"margins"`    // All margins for median/percentile calculation

	BestWin    *Extreme     `json:"bestWin,omitempty"`
	WorstLoss  *Extreme     `json:"worstLoss,omitempty"`
	Recent     []GameRecord `json:"recent"` // Newest first
	LastPlayed time.Time    `json:"lastPlayed"`
}

// Record incorporates a finished game
func (s *Outcomes) Record(o GameOutcome) {
	s.Games++
	s.TotalScore += o.MyScore
	s.TotalOpponentScore += o.OpponentScore
	s.LastPlayed = o.At

	margin := o.Margin()
	s.SumMargin += float64(margin)
	s.SumMargin2 += float64(margin * margin)
	s.Margins = append(s.Margins, float64(margin))

	score := fmt.Sprintf("%d:%d", o.MyGames, o.OpponentGames)
	result := o.Result()
	switch result {
	case Win:
		s.Wins++
		if s.BestWin == nil || margin > s.BestWin.Margin {
			s.BestWin = &Extreme{Margin: margin, Score: score, At: o.At}
		}
	case Loss:
		s.Losses++
		if s.WorstLoss == nil || -margin > s.WorstLoss.Margin {
			s.WorstLoss = &Extreme{Margin: -margin, Score: score, At: o.At}
		}
	default:
		s.Draws++
	}

	s.Recent = append([]GameRecord{{GameOutcome: o, Result: result}}, s.Recent...)
	if len(s.Recent) > RecentLimit {
		s.Recent = s.Recent[:RecentLimit]
	}
}

// WinRate returns the percentage of games won
func (s *Outcomes) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games) * 100
}

// AverageScores returns rounded mean card points per game for both teams
func (s *Outcomes) AverageScores() (mine, theirs int) {
	if s.Games == 0 {
		return 0, 0
	}
	n := float64(s.Games)
	return int(math.Round(float64(s.TotalScore) / n)), int(math.Round(float64(s.TotalOpponentScore) / n))
}

// Streak is a run of identical results ending at the most recent game
type Streak struct {
	Result Result `json:"result,omitempty"`
	Count  int    `json:"count"`
}

// CurrentStreak counts the run of results matching the latest game
func (s *Outcomes) CurrentStreak() Streak {
	if len(s.Recent) == 0 {
		return Streak{}
	}
	streak := Streak{Result: s.Recent[0].Result}
	for _, g := range s.Recent {
		if g.Result != streak.Result {
			break
		}
		streak.Count++
	}
	return streak
}

// Mean returns the mean match-point margin per game
func (s *Outcomes) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of margins
func (s *Outcomes) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of margins
func (s *Outcomes) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Outcomes) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean margin
func (s *Outcomes) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median margin
func (s *Outcomes) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at the given percentile (0.0 to 1.0)
func (s *Outcomes) Percentile(p float64) float64 {
	if len(s.Margins) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Margins))
	copy(sorted, s.Margins)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Merge folds other into s. Recent games are interleaved by time.
func (s *Outcomes) Merge(other *Outcomes) {
	s.Games += other.Games
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Draws += other.Draws
	s.TotalScore += other.TotalScore
	s.TotalOpponentScore += other.TotalOpponentScore
	s.SumMargin += other.SumMargin
	s.SumMargin2 += other.SumMargin2
	s.Margins = append(s.Margins, other.Margins...)

	if other.BestWin != nil && (s.BestWin == nil || other.BestWin.Margin > s.BestWin.Margin) {
		best := *other.BestWin
		s.BestWin = &best
	}
	if other.WorstLoss != nil && (s.WorstLoss == nil || other.WorstLoss.Margin > s.WorstLoss.Margin) {
		worst := *other.WorstLoss
		s.WorstLoss = &worst
	}
	if other.LastPlayed.After(s.LastPlayed) {
		s.LastPlayed = other.LastPlayed
	}

	s.Recent = append(s.Recent, other.Recent...)
	sort.SliceStable(s.Recent, func(i, j int) bool {
		return s.Recent[i].At.After(s.Recent[j].At)
	})
	if len(s.Recent) > RecentLimit {
		s.Recent = s.Recent[:RecentLimit]
	}
}

// Validate checks that the counters are consistent
func (s *Outcomes) Validate() error {
	if s.Wins+s.Losses+s.Draws != s.Games {
		return fmt.Errorf("results (%d+%d+%d) do not match games (%d)", s.Wins, s.Losses, s.Draws, s.Games)
	}
	if len(s.Margins) != s.Games {
		return fmt.Errorf("margins length (%d) does not match games (%d)", len(s.Margins), s.Games)
	}
	if len(s.Recent) > RecentLimit {
		return fmt.Errorf("recent games (%d) exceed limit (%d)", len(s.Recent), RecentLimit)
	}
	return nil
}

// Summary is a read-only digest of an Outcomes
type Summary struct {
	Games           int          `json:"games"`
	Wins            int          `json:"wins"`
	Losses          int          `json:"losses"`
	Draws           int          `json:"draws"`
	WinRate         float64      `json:"winRate"`
	AverageScore    int          `json:"averageScore"`
	AverageOpponent int          `json:"averageOpponent"`
	BestWin         *Extreme     `json:"bestWin,omitempty"`
	WorstLoss       *Extreme     `json:"worstLoss,omitempty"`
	Streak          Streak       `json:"streak"`
	MarginMean      float64      `json:"marginMean"`
	MarginStdDev    float64      `json:"marginStdDev"`
	Recent          []GameRecord `json:"recent"`
	LastPlayed      time.Time    `json:"lastPlayed"`
}

// Summary digests the recorded games
func (s *Outcomes) Summary() Summary {
	mine, theirs := s.AverageScores()
	sum := Summary{
		Games:           s.Games,
		Wins:            s.Wins,
		Losses:          s.Losses,
		Draws:           s.Draws,
		WinRate:         s.WinRate(),
		AverageScore:    mine,
		AverageOpponent: theirs,
		Streak:          s.CurrentStreak(),
		MarginMean:      s.Mean(),
		MarginStdDev:    s.StdDev(),
		Recent:          append([]GameRecord(nil), s.Recent...),
		LastPlayed:      s.LastPlayed,
	}
	if s.BestWin != nil {
		best := *s.BestWin
		sum.BestWin = &best
	}
	if s.WorstLoss != nil {
		worst := *s.WorstLoss
		sum.WorstLoss = &worst
	}
	return sum
}
