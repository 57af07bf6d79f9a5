// Package history records every move the assisted player makes, folds
// finished games into a bounded archive and derives reward-labelled
// training examples and recommendation efficacy from it.
package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/gameid"
	"github.com/lox/kozelassist/internal/statistics"
	"github.com/lox/kozelassist/internal/storage"
)

const (
	// CheckpointEvery is how many moves are buffered between checkpoints
	CheckpointEvery = 5
	// GameLimit caps archived games
	GameLimit = 50
	// MoveLimit caps archived moves across all games
	MoveLimit = 500
	// SaveTimeout bounds each checkpoint or archive write
	SaveTimeout = 2 * time.Second
)

// ErrSaveTimeout is returned when a store write outlives SaveTimeout
var ErrSaveTimeout = errors.New("history save timed out")

// MoveRecord is an immutable snapshot of one played move
type MoveRecord struct {
	GameID string    `json:"gameId"`
	At     time.Time `json:"at"`

	Seat          game.Position `json:"seat"`
	Hand          []deck.Card   `json:"hand"`
	Table         game.Trick    `json:"table"`
	MyScore       int           `json:"myScore"`
	OpponentScore int           `json:"opponentScore"`

	Played      deck.Card  `json:"played"`
	Recommended *deck.Card `json:"recommended,omitempty"`
	Followed    bool       `json:"followed"`

	TrickWon     bool          `json:"trickWon"`
	PointsGained int           `json:"pointsGained"`
	Winner       game.Position `json:"winner"`

	Lead    bool                     `json:"lead"`
	Partner string                   `json:"partner,omitempty"`
	Players map[game.Position]string `json:"players,omitempty"`
}

// GameResult is how a game ended
type GameResult struct {
	Result        statistics.Result `json:"result"`
	MyScore       int               `json:"myScore"`
	OpponentScore int               `json:"opponentScore"`
	Partner       string            `json:"partner,omitempty"`
}

// GameRecord is an archived game
type GameRecord struct {
	ID     string       `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Moves  []MoveRecord `json:"moves"`
	Result GameResult   `json:"result"`
}

// Archive is the persisted history: newest game first, moves oldest first
type Archive struct {
	Games []GameRecord `json:"games"`
	Moves []MoveRecord `json:"moves"`
}

type checkpoint struct {
	GameID string       `json:"gameId"`
	Moves  []MoveRecord `json:"moves"`
}

// Ledger owns the current game buffer and the archive. It is safe for
// concurrent use.
type Ledger struct {
	mu      sync.Mutex
	gameID  string
	current []MoveRecord
	archive Archive

	store  storage.Store
	ids    *gameid.Generator
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a ledger persisting to store. A nil ids generator uses
// crypto randomness.
func New(store storage.Store, ids *gameid.Generator, clock quartz.Clock, logger *log.Logger) *Ledger {
	if ids == nil {
		ids = gameid.NewGenerator(nil)
	}
	return &Ledger{
		store:  store,
		ids:    ids,
		clock:  clock,
		logger: logger.WithPrefix("history"),
		gameID: ids.Generate(),
	}
}

// CurrentGameID returns the id moves are currently recorded under
func (l *Ledger) CurrentGameID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gameID
}

// RecordMove stamps and appends a move to the current game. Every
// CheckpointEvery moves the buffer is saved; failures are logged only.
func (l *Ledger) RecordMove(ctx context.Context, move MoveRecord) MoveRecord {
	l.mu.Lock()
	move.GameID = l.gameID
	move.At = l.clock.Now()
	move.Hand = append([]deck.Card(nil), move.Hand...)
	move.Table = append(game.Trick(nil), move.Table...)
	l.current = append(l.current, move)

	var cp *checkpoint
	if len(l.current)%CheckpointEvery == 0 {
		cp = &checkpoint{GameID: l.gameID, Moves: append([]MoveRecord(nil), l.current...)}
	}
	l.mu.Unlock()

	if cp != nil {
		if err := l.save(ctx, storage.KeyCurrentGame, cp); err != nil {
			l.logger.Warn("Checkpoint failed", "game", cp.GameID, "moves", len(cp.Moves), "error", err)
		} else {
			l.logger.Debug("Checkpointed game", "game", cp.GameID, "moves", len(cp.Moves))
		}
	}
	return move
}

// CurrentMoves returns a copy of the moves recorded in the current game
func (l *Ledger) CurrentMoves() []MoveRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]MoveRecord(nil), l.current...)
}

// EndGame archives the current game and starts a new one
func (l *Ledger) EndGame(ctx context.Context, result GameResult) GameRecord {
	now := l.clock.Now()

	l.mu.Lock()
	rec := GameRecord{
		ID:     l.gameID,
		Start:  now,
		End:    now,
		Moves:  l.current,
		Result: result,
	}
	if len(l.current) > 0 {
		rec.Start = l.current[0].At
	}

	l.archive.Games = append([]GameRecord{rec}, l.archive.Games...)
	if len(l.archive.Games) > GameLimit {
		l.archive.Games = l.archive.Games[:GameLimit]
	}
	l.archive.Moves = append(l.archive.Moves, rec.Moves...)
	if over := len(l.archive.Moves) - MoveLimit; over > 0 {
		l.archive.Moves = append([]MoveRecord(nil), l.archive.Moves[over:]...)
	}

	l.gameID = l.ids.Generate()
	l.current = nil
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.logger.Info("Game archived", "game", rec.ID, "moves", len(rec.Moves), "result", result.Result)
	if err := l.save(ctx, storage.KeyHistory, snapshot); err != nil {
		l.logger.Warn("Saving history failed", "error", err)
	}
	return rec
}

// save writes v under key, giving up after SaveTimeout. The store sees a
// cancelled context once save returns so a stalled write can unwind.
func (l *Ledger) save(ctx context.Context, key string, v any) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := make(chan struct{})
	timer := l.clock.AfterFunc(SaveTimeout, func() {
		close(expired)
	})
	defer timer.Stop()

	done := make(chan error, 1)
	go func() {
		done <- storage.SaveJSON(ctx, l.store, key, v)
	}()

	select {
	case err := <-done:
		return err
	case <-expired:
		return fmt.Errorf("%s after %s: %w", key, SaveTimeout, ErrSaveTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Ledger) snapshotLocked() Archive {
	return Archive{
		Games: append([]GameRecord(nil), l.archive.Games...),
		Moves: append([]MoveRecord(nil), l.archive.Moves...),
	}
}

// Archive returns a copy of the archived history
func (l *Ledger) Archive() Archive {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Load restores the archive and any checkpointed game from the store
func (l *Ledger) Load(ctx context.Context) error {
	var archive Archive
	if _, err := storage.LoadJSON(ctx, l.store, storage.KeyHistory, &archive); err != nil {
		return err
	}
	var cp checkpoint
	found, err := storage.LoadJSON(ctx, l.store, storage.KeyCurrentGame, &cp)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.archive = archive
	if found && cp.GameID != "" && !l.archivedLocked(cp.GameID) {
		l.gameID = cp.GameID
		l.current = cp.Moves
	}
	l.logger.Debug("Loaded history", "games", len(archive.Games), "moves", len(archive.Moves), "resumed", len(l.current))
	return nil
}

func (l *Ledger) archivedLocked(id string) bool {
	for _, g := range l.archive.Games {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Flush saves the archive and the current game buffer
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	archive := l.snapshotLocked()
	cp := checkpoint{GameID: l.gameID, Moves: append([]MoveRecord(nil), l.current...)}
	l.mu.Unlock()

	if err := l.save(ctx, storage.KeyHistory, archive); err != nil {
		return err
	}
	return l.save(ctx, storage.KeyCurrentGame, cp)
}
