package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kozelassist/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "standard", cfg.Engine.Policy)
	assert.Equal(t, "full", cfg.Engine.Points)
	assert.Equal(t, 300*time.Millisecond, cfg.Engine.Timeout())
	assert.True(t, cfg.Engine.Adapt())
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, ".kozel", cfg.Storage.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Simulation.Games)
	assert.Equal(t, 12, cfg.Simulation.TargetScore)
	assert.Equal(t, []string{SeatAdvisor, SeatRandom, SeatAdvisor, SeatRandom}, cfg.Simulation.Seats)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFile)
	src := `
engine {
  policy             = "reversed"
  points             = "classic"
  suggestion_timeout = "1s"
  adapt_to_profiles  = false
}

storage {
  backend = "memory"
}

logging {
  level = "debug"
}

simulation {
  games   = 10
  workers = 2
  seed    = 42
  seats   = ["advisor", "advisor", "advisor", "advisor"]
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "reversed", cfg.Engine.Policy)
	assert.Equal(t, time.Second, cfg.Engine.Timeout())
	assert.False(t, cfg.Engine.Adapt())
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Simulation.Games)
	assert.Equal(t, 2, cfg.Simulation.Workers)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 60, cfg.Simulation.MaxRounds, "unset values fall back to defaults")

	policy, err := cfg.Engine.RankingPolicy()
	require.NoError(t, err)
	assert.Equal(t, "reversed", policy.Name())
	assert.Equal(t, 0, policy.Points(deck.Card{Rank: deck.Jack, Suit: deck.Hearts}), "classic points ignore jacks")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`engine {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	_, err = Parse([]byte(`unknown = 1`), "unknown.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad policy", func(c *Config) { c.Engine.Policy = "inverted" }, "ranking policy"},
		{"bad points", func(c *Config) { c.Engine.Points = "double" }, "point table"},
		{"bad timeout", func(c *Config) { c.Engine.SuggestionTimeout = "soon" }, "suggestion_timeout"},
		{"negative timeout", func(c *Config) { c.Engine.SuggestionTimeout = "-1s" }, "suggestion_timeout"},
		{"bad backend", func(c *Config) { c.Storage.Backend = "s3" }, "backend"},
		{"file without dir", func(c *Config) { c.Storage.Dir = "" }, "dir is required"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"no games", func(c *Config) { c.Simulation.Games = -1 }, "games"},
		{"no workers", func(c *Config) { c.Simulation.Workers = -1 }, "workers"},
		{"three seats", func(c *Config) { c.Simulation.Seats = []string{"advisor", "advisor", "advisor"} }, "4 seats"},
		{"bad seat", func(c *Config) { c.Simulation.Seats = []string{"advisor", "advisor", "advisor", "oracle"} }, "oracle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}
