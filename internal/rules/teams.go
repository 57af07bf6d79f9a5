package rules

import (
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
)

// CatchBonus is awarded to the team that drops the 7♣ onto the Q♣
const CatchBonus = 4

// Catch describes a Q♣ caught by the 7♣ of the other team, which ends the round
type Catch struct {
	Team     game.Team     `json:"team"`
	Position game.Position `json:"position"`
	Bonus    int           `json:"bonus"`
}

// SpecialCatch reports a catch when the trick holds both the target and the
// catcher played by opposing teams.
func SpecialCatch(trick game.Trick) (*Catch, bool) {
	catcher, hasCatcher := trick.Find(deck.Catcher)
	target, hasTarget := trick.Find(deck.Target)
	if !hasCatcher || !hasTarget {
		return nil, false
	}
	if catcher.Team() == target.Team() {
		return nil, false
	}
	return &Catch{Team: catcher.Team(), Position: catcher, Bonus: CatchBonus}, true
}

// IsPartner reports whether a and b sit across from each other
func IsPartner(a, b game.Position) bool {
	return a.Valid() && b.Valid() && a.Partner() == b
}

// TeamOf returns the team p plays for
func TeamOf(p game.Position) game.Team { return p.Team() }

// PartnerOf returns the seat across from p
func PartnerOf(p game.Position) game.Position { return p.Partner() }

// ScoreFlags are the score-driven posture hints for one decision
type ScoreFlags struct {
	ProtectLead    bool `json:"protectLead"`
	PushForBonus   bool `json:"pushForBonus"`
	MustWin        bool `json:"mustWin"`
	NearFinalWin   bool `json:"nearFinalWin"`
	PlayAggressive bool `json:"playAggressive"`
	PlayDefensive  bool `json:"playDefensive"`
}

// ScoreStrategy derives posture flags from game and round points.
// No flag depends on oppPoints.
func ScoreStrategy(myPoints, oppPoints, roundPoints int) ScoreFlags {
	f := ScoreFlags{
		ProtectLead:  roundPoints >= 55 && roundPoints < 70,
		PushForBonus: roundPoints >= 70 && roundPoints < 90,
		MustWin:      myPoints < 0,
		NearFinalWin: myPoints >= 100,
	}
	f.PlayAggressive = f.PushForBonus || f.MustWin
	f.PlayDefensive = f.ProtectLead || f.NearFinalWin
	return f
}
