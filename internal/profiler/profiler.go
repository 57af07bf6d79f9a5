// Package profiler tracks how individual players tend to play and turns that
// into a style classification and a counter posture for the advisor.
package profiler

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kozelassist/internal/deck"
)

const (
	// RecentLimit caps the per-player ring of recent moves
	RecentLimit = 20
	// MinMoves is the number of observations needed before classifying
	MinMoves = 5
	// StaleAfter is how long an untouched profile survives PruneStale
	StaleAfter = 30 * 24 * time.Hour

	reinforceRate = 0.1
	decayRate     = 0.05
	initialWeight = 0.5
)

// Observation is what was seen when a player made one move. CardPoints is
// the card's value under the table's point policy.
type Observation struct {
	Card          deck.Card `json:"card"`
	CardPoints    int       `json:"cardPoints"`
	TrickWon      bool      `json:"trickWon"`
	Aggressive    bool      `json:"aggressive"`
	Risky         bool      `json:"risky"`
	PointsInTrick int       `json:"pointsInTrick"`
}

// RecentMove is one entry of a profile's recent behavior ring
type RecentMove struct {
	Card          deck.Card `json:"card"`
	TrickWon      bool      `json:"trickWon"`
	Risky         bool      `json:"risky"`
	PointsInTrick int       `json:"pointsInTrick"`
	At            time.Time `json:"at"`
}

// MoveCounters are cumulative per-player tallies
type MoveCounters struct {
	Total           int `json:"total"`
	TricksTaken     int `json:"tricksTaken"`
	TricksAbandoned int `json:"tricksAbandoned"`
	PointCards      int `json:"pointCards"`
	Trumps          int `json:"trumps"`
	RiskyTricks     int `json:"riskyTricks"`
}

// Profile is the persisted record of one player
type Profile struct {
	Name           string       `json:"name"`
	Aggressiveness float64      `json:"aggressiveness"`
	RiskTaking     float64      `json:"riskTaking"`
	Moves          MoveCounters `json:"moves"`
	Recent         []RecentMove `json:"recent"`
	LastUpdated    time.Time    `json:"lastUpdated"`
}

// TrickWinRate is the share of observed tricks this player took
func (p Profile) TrickWinRate() float64 {
	n := p.Moves.TricksTaken + p.Moves.TricksAbandoned
	if n == 0 {
		return 0
	}
	return float64(p.Moves.TricksTaken) / float64(n)
}

func (p Profile) clone() Profile {
	p.Recent = append([]RecentMove(nil), p.Recent...)
	return p
}

// Profiler owns every known profile. It is safe for concurrent use; each
// update to a profile's weights happens under one lock acquisition.
type Profiler struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	clock    quartz.Clock
	logger   *log.Logger
}

// New creates an empty profiler
func New(clock quartz.Clock, logger *log.Logger) *Profiler {
	return &Profiler{
		profiles: make(map[string]*Profile),
		clock:    clock,
		logger:   logger.WithPrefix("profiler"),
	}
}

func (p *Profiler) profileLocked(player string) *Profile {
	prof, ok := p.profiles[player]
	if !ok {
		prof = &Profile{
			Name:           player,
			Aggressiveness: initialWeight,
			RiskTaking:     initialWeight,
		}
		p.profiles[player] = prof
	}
	return prof
}

// RecordMove folds one observation into the player's profile. Empty player
// names are ignored.
func (p *Profiler) RecordMove(player string, obs Observation) {
	if player == "" {
		return
	}
	now := p.clock.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	prof := p.profileLocked(player)
	prof.Moves.Total++
	if obs.TrickWon {
		prof.Moves.TricksTaken++
	} else {
		prof.Moves.TricksAbandoned++
	}
	if obs.Card.IsTrump() {
		prof.Moves.Trumps++
	}
	if obs.CardPoints > 0 {
		prof.Moves.PointCards++
	}

	prof.Aggressiveness = smooth(prof.Aggressiveness, obs.Aggressive)
	prof.RiskTaking = smooth(prof.RiskTaking, obs.Risky)
	if obs.Risky {
		prof.Moves.RiskyTricks++
	}

	recent := RecentMove{
		Card:          obs.Card,
		TrickWon:      obs.TrickWon,
		Risky:         obs.Risky,
		PointsInTrick: obs.PointsInTrick,
		At:            now,
	}
	prof.Recent = append([]RecentMove{recent}, prof.Recent...)
	if len(prof.Recent) > RecentLimit {
		prof.Recent = prof.Recent[:RecentLimit]
	}
	prof.LastUpdated = now
}

// smooth moves w toward 1 quickly when the behavior was seen, and toward 0
// slowly when it was not.
func smooth(w float64, seen bool) float64 {
	if seen {
		return w + reinforceRate*(1-w)
	}
	return w + decayRate*(0-w)
}

// Profile returns a copy of the player's profile
func (p *Profiler) Profile(player string) (Profile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prof, ok := p.profiles[player]
	if !ok {
		return Profile{}, false
	}
	return prof.clone(), true
}

// Players returns known player names in sorted order
func (p *Profiler) Players() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.profiles))
	for name := range p.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PruneStale drops profiles not updated within StaleAfter of now
func (p *Profiler) PruneStale(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := now.Add(-StaleAfter)
	removed := 0
	for name, prof := range p.profiles {
		if prof.LastUpdated.Before(cutoff) {
			delete(p.profiles, name)
			removed++
		}
	}
	if removed > 0 {
		p.logger.Info("Pruned stale profiles", "removed", removed, "remaining", len(p.profiles))
	}
	return removed
}

// Snapshot returns a deep copy of all profiles for persistence
func (p *Profiler) Snapshot() map[string]Profile {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]Profile, len(p.profiles))
	for name, prof := range p.profiles {
		out[name] = prof.clone()
	}
	return out
}

// Restore replaces all profiles with the given set
func (p *Profiler) Restore(profiles map[string]Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.profiles = make(map[string]*Profile, len(profiles))
	for name, prof := range profiles {
		prof := prof.clone()
		if prof.Name == "" {
			prof.Name = name
		}
		p.profiles[name] = &prof
	}
}
