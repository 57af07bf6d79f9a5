package profiler

import (
	"math"

	"github.com/lox/kozelassist/internal/game"
)

// Style is a coarse classification of how a player plays
type Style string

const (
	Unknown    Style = "unknown"
	Aggressive Style = "aggressive"
	Defensive  Style = "defensive"
	Risky      Style = "risky"
	Assertive  Style = "assertive"
	Balanced   Style = "balanced"
)

// Posture is the recommended stance against a player
type Posture string

const (
	PostureDefault Posture = "default"
	Defend         Posture = "defend"
	Attack         Posture = "attack"
	Caution        Posture = "caution"
	Compete        Posture = "compete"
)

const (
	// CounterConfidence is the minimum style confidence before a counter posture is offered
	CounterConfidence = 0.3
	// ConfidenceMoves is how many observed moves give full style confidence
	ConfidenceMoves = 20
)

// StyleAnalysis is the classification of one player
type StyleAnalysis struct {
	Style          Style   `json:"style"`
	Confidence     float64 `json:"confidence"`
	Description    string  `json:"description"`
	Aggressiveness float64 `json:"aggressiveness"`
	RiskTaking     float64 `json:"riskTaking"`
	TrickWinRate   float64 `json:"trickWinRate"`
	Moves          int     `json:"moves"`
}

// Counter is the recommended posture against a player
type Counter struct {
	Posture Posture `json:"posture"`
	Advice  string  `json:"advice"`
}

// ClassifyStyle buckets the player by their smoothed weights
func (p *Profiler) ClassifyStyle(player string) StyleAnalysis {
	prof, ok := p.Profile(player)
	if !ok || prof.Moves.Total < MinMoves {
		return StyleAnalysis{Style: Unknown, Description: "not enough moves observed"}
	}
	return classify(prof)
}

func classify(prof Profile) StyleAnalysis {
	a := StyleAnalysis{
		Confidence:     math.Min(float64(prof.Moves.Total)/ConfidenceMoves, 1),
		Aggressiveness: prof.Aggressiveness,
		RiskTaking:     prof.RiskTaking,
		TrickWinRate:   prof.TrickWinRate(),
		Moves:          prof.Moves.Total,
	}

	agg, risk := prof.Aggressiveness, prof.RiskTaking
	switch {
	case agg > 0.7 && risk > 0.6:
		a.Style, a.Description = Aggressive, "takes tricks and risks them"
	case agg < 0.3 && risk < 0.4:
		a.Style, a.Description = Defensive, "plays safe and rarely contests"
	case risk > 0.7:
		a.Style, a.Description = Risky, "gambles point cards"
	case agg > 0.6:
		a.Style, a.Description = Assertive, "actively contests tricks"
	default:
		a.Style, a.Description = Balanced, "no strong tendency"
	}
	return a
}

// CounterStrategy maps the player's style to a posture
func (p *Profiler) CounterStrategy(player string) Counter {
	return CounterFor(p.ClassifyStyle(player))
}

// CounterFor maps an analysis to a posture
func CounterFor(a StyleAnalysis) Counter {
	if a.Confidence < CounterConfidence {
		return Counter{Posture: PostureDefault, Advice: "play standard until more is known"}
	}
	switch a.Style {
	case Aggressive:
		return Counter{Posture: Defend, Advice: "play safe and keep point cards away"}
	case Defensive:
		return Counter{Posture: Attack, Advice: "press and take more tricks"}
	case Risky:
		return Counter{Posture: Caution, Advice: "expect bluffs and hold strong trumps"}
	case Assertive:
		return Counter{Posture: Compete, Advice: "contest tricks actively"}
	default:
		return Counter{Posture: PostureDefault, Advice: "balanced play"}
	}
}

// SeatSummary is the per-seat view of a table
type SeatSummary struct {
	Name     string        `json:"name"`
	Analysis StyleAnalysis `json:"analysis"`
	Counter  Counter       `json:"counter"`
}

// Summary classifies every named player at the table
func (p *Profiler) Summary(players map[game.Position]string) map[game.Position]SeatSummary {
	out := make(map[game.Position]SeatSummary, len(players))
	for seat, name := range players {
		if name == "" {
			continue
		}
		a := p.ClassifyStyle(name)
		out[seat] = SeatSummary{Name: name, Analysis: a, Counter: CounterFor(a)}
	}
	return out
}
