// Package config loads the kozel.hcl configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/kozelassist/internal/deck"
)

// DefaultFile is the configuration file looked up when none is given
const DefaultFile = "kozel.hcl"

// Seat strategies understood by the simulator
const (
	SeatAdvisor = "advisor"
	SeatRandom  = "random"
)

// Config represents the complete configuration
type Config struct {
	Engine     *EngineSettings     `hcl:"engine,block"`
	Storage    *StorageSettings    `hcl:"storage,block"`
	Logging    *LoggingSettings    `hcl:"logging,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// EngineSettings selects the rule variant and advisor behaviour
type EngineSettings struct {
	Policy            string `hcl:"policy,optional"`
	Points            string `hcl:"points,optional"`
	SuggestionTimeout string `hcl:"suggestion_timeout,optional"`
	AdaptToProfiles   *bool  `hcl:"adapt_to_profiles,optional"`
}

// StorageSettings selects where state is persisted
type StorageSettings struct {
	Backend string `hcl:"backend,optional"`
	Dir     string `hcl:"dir,optional"`
}

// LoggingSettings configures the logger
type LoggingSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// SimulationSettings configures self-play runs
type SimulationSettings struct {
	Games       int      `hcl:"games,optional"`
	Workers     int      `hcl:"workers,optional"`
	Seed        int64    `hcl:"seed,optional"`
	TargetScore int      `hcl:"target_score,optional"`
	MaxRounds   int      `hcl:"max_rounds,optional"`
	Seats       []string `hcl:"seats,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename, falling back to defaults when it does not exist
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for missing values
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == nil {
		c.Engine = &EngineSettings{}
	}
	if c.Engine.Policy == "" {
		c.Engine.Policy = "standard"
	}
	if c.Engine.Points == "" {
		c.Engine.Points = "full"
	}
	if c.Engine.SuggestionTimeout == "" {
		c.Engine.SuggestionTimeout = "300ms"
	}
	if c.Engine.AdaptToProfiles == nil {
		adapt := true
		c.Engine.AdaptToProfiles = &adapt
	}

	if c.Storage == nil {
		c.Storage = &StorageSettings{}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = ".kozel"
	}

	if c.Logging == nil {
		c.Logging = &LoggingSettings{}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 100
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 4
	}
	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = 1
	}
	if c.Simulation.TargetScore == 0 {
		c.Simulation.TargetScore = 12
	}
	if c.Simulation.MaxRounds == 0 {
		c.Simulation.MaxRounds = 60
	}
	if len(c.Simulation.Seats) == 0 {
		c.Simulation.Seats = []string{SeatAdvisor, SeatRandom, SeatAdvisor, SeatRandom}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := deck.PolicyByName(c.Engine.Policy); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if _, err := deck.PointsByName(c.Engine.Points); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if d, err := time.ParseDuration(c.Engine.SuggestionTimeout); err != nil || d <= 0 {
		return fmt.Errorf("engine: invalid suggestion_timeout %q", c.Engine.SuggestionTimeout)
	}

	switch c.Storage.Backend {
	case "file":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage: dir is required for the file backend")
		}
	case "memory":
	default:
		return fmt.Errorf("storage: invalid backend %q", c.Storage.Backend)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	sim := c.Simulation
	if sim.Games < 1 {
		return fmt.Errorf("simulation: games must be positive")
	}
	if sim.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive")
	}
	if sim.TargetScore < 1 {
		return fmt.Errorf("simulation: target_score must be positive")
	}
	if sim.MaxRounds < 1 {
		return fmt.Errorf("simulation: max_rounds must be positive")
	}
	if len(sim.Seats) != 4 {
		return fmt.Errorf("simulation: exactly 4 seats required, got %d", len(sim.Seats))
	}
	for _, s := range sim.Seats {
		if !slices.Contains([]string{SeatAdvisor, SeatRandom}, s) {
			return fmt.Errorf("simulation: invalid seat strategy %q", s)
		}
	}
	return nil
}

// RankingPolicy builds the deck policy the engine settings name
func (e *EngineSettings) RankingPolicy() (deck.Policy, error) {
	policy, err := deck.PolicyByName(e.Policy)
	if err != nil {
		return deck.Policy{}, err
	}
	points, err := deck.PointsByName(e.Points)
	if err != nil {
		return deck.Policy{}, err
	}
	return policy.WithPoints(points), nil
}

// Timeout returns the parsed suggestion timeout
func (e *EngineSettings) Timeout() time.Duration {
	d, err := time.ParseDuration(e.SuggestionTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Adapt reports whether profile adaptation is enabled
func (e *EngineSettings) Adapt() bool {
	return e.AdaptToProfiles == nil || *e.AdaptToProfiles
}

// ParseLevel maps a configured level name to a log level
func ParseLevel(level string) (log.Level, error) {
	switch level {
	case "debug", "info", "warn", "error", "fatal":
		return log.ParseLevel(level)
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
}
