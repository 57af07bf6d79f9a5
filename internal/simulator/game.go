package simulator

import (
	"context"
	"fmt"
	"slices"

	"github.com/lox/kozelassist/internal/bot"
	"github.com/lox/kozelassist/internal/config"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/engine"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/randutil"
	"github.com/lox/kozelassist/internal/rules"
	"github.com/lox/kozelassist/internal/statistics"
)

// ditchThreshold is the card-point total at or below which the losers concede an extra match point
const ditchThreshold = 30

// Player picks a card for the seat in state
type Player interface {
	ChooseCard(ctx context.Context, state game.GameState) *bot.Recommendation
}

type randPlayer struct{ *bot.RandBot }

func (r randPlayer) ChooseCard(_ context.Context, state game.GameState) *bot.Recommendation {
	return r.RandBot.ChooseCard(state)
}

// match is the state of one game in progress
type match struct {
	players [4]Player
	names   map[game.Position]string
	hands   [4][]deck.Card

	games    [2]int // match points per team
	points   [2]int // card points per team across the game
	rounds   int
	catches  int
	opener   game.Team
	hasRound bool
}

func (s *Simulator) createPlayer(kind string, seed int64) Player {
	switch kind {
	case config.SeatRandom:
		return randPlayer{bot.NewRandBot(randutil.New(seed), s.rules)}
	default:
		if s.config.Engine != nil {
			return s.config.Engine
		}
		return bot.NewAdvisor(s.rules, s.logger)
	}
}

func (s *Simulator) playGame(ctx context.Context, n int, seed int64) (GameResult, error) {
	rng := randutil.New(seed)
	m := &match{names: make(map[game.Position]string, 4)}
	for _, pos := range game.Positions {
		kind := s.config.Seats[pos]
		m.players[pos] = s.createPlayer(kind, randutil.Derive(seed, int(pos)))
		m.names[pos] = fmt.Sprintf("%s-%s", kind, pos)
	}

	target := s.config.TargetScore
	for round := 1; round <= s.config.MaxRounds; round++ {
		if m.games[game.BottomTop] >= target || m.games[game.LeftRight] >= target {
			break
		}
		d := deck.NewDeck(rng)
		hands := d.DealHands()
		for i, pos := range game.Positions {
			m.hands[pos] = hands[i]
		}
		leader := game.Positions[(n+round-1)%len(game.Positions)]
		if err := s.playRound(ctx, m, round, leader); err != nil {
			return GameResult{}, err
		}
	}

	outcome := statistics.GameOutcome{
		MyGames:       m.games[game.BottomTop],
		OpponentGames: m.games[game.LeftRight],
		MyScore:       m.points[game.BottomTop],
		OpponentScore: m.points[game.LeftRight],
		Partner:       m.names[game.Top],
	}
	if e := s.config.Engine; e != nil {
		rec := e.RecordGameOutcome(ctx, outcome)
		outcome.At = rec.End
	}

	s.logger.Debug("Game finished",
		"game", n+1,
		"rounds", m.rounds,
		"score", fmt.Sprintf("%d:%d", outcome.MyGames, outcome.OpponentGames))

	return GameResult{
		Game:    n + 1,
		Seed:    seed,
		Rounds:  m.rounds,
		Catches: m.catches,
		Outcome: outcome,
	}, nil
}

// playRound plays up to eight tricks. A catch ends the round at once.
func (s *Simulator) playRound(ctx context.Context, m *match, number int, leader game.Position) error {
	var (
		points [2]int
		tricks [2]int
	)
	opener := leader.Team()

	for t := range deck.HandSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			trick  game.Trick
			bottom *engine.Move
		)
		pos := leader
		for range game.TrickSize {
			team := pos.Team()
			state := game.GameState{
				Seat:          pos,
				Hand:          m.hands[pos],
				Trick:         trick,
				MyScore:       m.games[team],
				OpponentScore: m.games[team.Other()],
				RoundPoints:   points[team],
				Round: game.RoundContext{
					Number:                  number,
					TricksPlayed:            t,
					TeamOpenedPreviousRound: m.hasRound && m.opener == team,
				},
				Players: m.names,
			}

			card, err := s.play(ctx, m.players[pos], state)
			if err != nil {
				return fmt.Errorf("round %d trick %d %s: %w", number, t+1, pos, err)
			}
			if pos == game.Bottom && s.config.Engine != nil {
				bottom = &engine.Move{State: state, Played: card, Recommended: &card}
			}

			m.hands[pos] = slices.DeleteFunc(slices.Clone(m.hands[pos]), func(c deck.Card) bool { return c == card })
			trick = trick.With(pos, card)
			pos = pos.Next()
		}

		winner, _ := s.rules.TrickWinner(trick)
		team := winner.Team()
		points[team] += s.rules.Scorer().TrickPoints(trick.Cards())
		tricks[team]++

		if bottom != nil {
			bottom.Completed = trick
			s.config.Engine.RecordMove(ctx, *bottom)
		}

		if catch, ok := rules.SpecialCatch(trick); ok {
			points[catch.Team] += catch.Bonus
			m.catches++
			s.logger.Debug("Catch", "round", number, "seat", catch.Position, "trick", trick)
			break
		}
		leader = winner
	}

	m.rounds++
	m.opener = opener
	m.hasRound = true
	for _, team := range []game.Team{game.BottomTop, game.LeftRight} {
		m.points[team] += points[team]
	}
	if award, team, ok := roundAward(points, tricks); ok {
		m.games[team] += award
	}
	return nil
}

// play asks p for a card and rejects anything the rules do not allow
func (s *Simulator) play(ctx context.Context, p Player, state game.GameState) (deck.Card, error) {
	rec := p.ChooseCard(ctx, state)
	if rec == nil {
		return deck.Card{}, fmt.Errorf("no card chosen from %s", deck.FormatCards(state.Hand))
	}
	legal := s.rules.LegalMoves(state.Hand, state.Trick, state.Round)
	if !deck.Contains(legal, rec.Card) {
		return deck.Card{}, fmt.Errorf("illegal card %s, legal %s", rec.Card, deck.FormatCards(legal))
	}
	return rec.Card, nil
}

// roundAward scores a finished round: the team with more card points takes
// one match point, two when the losers stayed at 30 or below, three when the
// losers took no trick. Equal totals award nothing.
func roundAward(points, tricks [2]int) (int, game.Team, bool) {
	var winner game.Team
	switch {
	case points[game.BottomTop] > points[game.LeftRight]:
		winner = game.BottomTop
	case points[game.LeftRight] > points[game.BottomTop]:
		winner = game.LeftRight
	default:
		return 0, 0, false
	}
	loser := winner.Other()
	switch {
	case tricks[loser] == 0:
		return 3, winner, true
	case points[loser] <= ditchThreshold:
		return 2, winner, true
	default:
		return 1, winner, true
	}
}
