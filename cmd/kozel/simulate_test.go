package main

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kozelassist/internal/bot"
	"github.com/lox/kozelassist/internal/config"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/lox/kozelassist/internal/engine"
	"github.com/lox/kozelassist/internal/game"
	"github.com/lox/kozelassist/internal/history"
	"github.com/lox/kozelassist/internal/simulator"
	"github.com/lox/kozelassist/internal/statistics"
	"github.com/lox/kozelassist/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSimulationSavesAfterInterrupt(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	store := storage.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Interrupt once a few games have been played
	var calls atomic.Int32
	interrupt := bot.SuggestionFunc(func(context.Context, game.GameState, []deck.Card) (*bot.Suggestion, error) {
		if calls.Add(1) == 40 {
			cancel()
		}
		return nil, nil
	})
	e := engine.New(engine.Options{
		Store:    store,
		Clock:    quartz.NewMock(t),
		Logger:   logger,
		Provider: interrupt,
	})

	_, err := recordSimulation(ctx, simulator.Config{
		Games:       50,
		Seed:        7,
		TargetScore: 1,
		MaxRounds:   1,
		Seats:       [4]string{config.SeatAdvisor, config.SeatRandom, config.SeatAdvisor, config.SeatRandom},
		Logger:      logger,
	}, e, logger)
	require.ErrorIs(t, err, context.Canceled)

	played := e.GetStatistics().Outcomes.Games
	require.Positive(t, played)
	require.Less(t, played, 50)

	check := context.Background()
	var saved statistics.Outcomes
	found, err := storage.LoadJSON(check, store, storage.KeyStatistics, &saved)
	require.NoError(t, err)
	require.True(t, found, "statistics are saved after the run is interrupted")
	assert.Equal(t, played, saved.Games)

	var archive history.Archive
	found, err = storage.LoadJSON(check, store, storage.KeyHistory, &archive)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, archive.Games, played)
}

func TestFlushEngineIgnoresCancellation(t *testing.T) {
	store := storage.NewMemoryStore()
	e := engine.New(engine.Options{
		Store:  store,
		Clock:  quartz.NewMock(t),
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, flushEngine(ctx, e))
	_, err := store.Load(context.Background(), storage.KeyProfiles)
	assert.NoError(t, err)
}
