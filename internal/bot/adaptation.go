package bot

import (
	"fmt"
	"math"

	"github.com/lox/kozelassist/internal/profiler"
)

// TableRead is what the profiler knows about the other players
type TableRead struct {
	Partner   *profiler.StyleAnalysis
	Opponents []profiler.StyleAnalysis
}

// adaptConfidence gates which classifications are trusted
const adaptConfidence = 0.3

// AdaptationRule nudges the policy weights when its condition holds
type AdaptationRule struct {
	Name       string
	Condition  func(TableRead) bool
	Aggression float64
	Defense    float64
}

func partnerIs(style profiler.Style) func(TableRead) bool {
	return func(r TableRead) bool {
		return r.Partner != nil && r.Partner.Confidence > adaptConfidence && r.Partner.Style == style
	}
}

func anyOpponentIs(styles ...profiler.Style) func(TableRead) bool {
	return func(r TableRead) bool {
		for _, opp := range r.Opponents {
			if opp.Confidence <= adaptConfidence {
				continue
			}
			for _, s := range styles {
				if opp.Style == s {
					return true
				}
			}
		}
		return false
	}
}

// adaptationRules returns the weight adjustments applied before policy selection
func adaptationRules() []AdaptationRule {
	return []AdaptationRule{
		{
			Name:       "Partner aggressive",
			Condition:  partnerIs(profiler.Aggressive),
			Aggression: 0.2,
		},
		{
			Name:       "Partner defensive",
			Condition:  partnerIs(profiler.Defensive),
			Aggression: 0.1,
		},
		{
			Name:      "Partner risky",
			Condition: partnerIs(profiler.Risky),
			Defense:   0.1,
		},
		{
			Name:      "Aggressive opponents",
			Condition: anyOpponentIs(profiler.Aggressive, profiler.Risky),
			Defense:   0.15,
		},
		{
			Name:       "Defensive opponents",
			Condition:  anyOpponentIs(profiler.Defensive),
			Aggression: 0.15,
		},
	}
}

// Adapt applies every matching rule to the situation's weights, clamped to [0,1]
func Adapt(sit Situation, read TableRead, thinking *ThinkingContext) Situation {
	for _, rule := range adaptationRules() {
		if !rule.Condition(read) {
			continue
		}
		sit.Aggression = clamp(sit.Aggression + rule.Aggression)
		sit.Defense = clamp(sit.Defense + rule.Defense)
		if thinking != nil {
			thinking.AddThought(fmt.Sprintf("%s: aggression %.2f, defense %.2f", rule.Name, sit.Aggression, sit.Defense))
		}
	}
	return sit
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
