// Package config loads the trainer's HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cribbage/scoring"
)

// DefaultFile is the configuration file read when none is given
const DefaultFile = "cribbage.hcl"

// UI modes
const (
	ModeConsole = "console"
	ModeTUI     = "tui"
)

// Config represents the complete trainer configuration
type Config struct {
	Game  *GameSettings  `hcl:"game,block"`
	UI    *UISettings    `hcl:"ui,block"`
	Stats *StatsSettings `hcl:"stats,block"`
}

// GameSettings controls dealing and penalties
type GameSettings struct {
	HandSize            int   `hcl:"hand_size,optional"`
	WrongScorePenalty   *int  `hcl:"wrong_score_penalty,optional"`
	InvalidComboPenalty *int  `hcl:"invalid_combo_penalty,optional"`
	Seed                int64 `hcl:"seed,optional"`
}

// UISettings contains user interface and logging settings
type UISettings struct {
	Mode     string `hcl:"mode,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// StatsSettings controls the score distribution sampler
type StatsSettings struct {
	Hands   int `hcl:"hands,optional"`
	Workers int `hcl:"workers,optional"`
}

func intPtr(v int) *int {
	return &v
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			HandSize:            5,
			WrongScorePenalty:   intPtr(1),
			InvalidComboPenalty: intPtr(2),
		},
		UI: &UISettings{
			Mode:     ModeConsole,
			LogLevel: "warn",
			LogFile:  "cribbage.log",
		},
		Stats: &StatsSettings{
			Hands:   100000,
			Workers: 0,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for anything unset
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
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.HandSize == 0 {
		c.Game.HandSize = defaults.Game.HandSize
	}
	if c.Game.WrongScorePenalty == nil {
		c.Game.WrongScorePenalty = defaults.Game.WrongScorePenalty
	}
	if c.Game.InvalidComboPenalty == nil {
		c.Game.InvalidComboPenalty = defaults.Game.InvalidComboPenalty
	}

	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.UI.Mode == "" {
		c.UI.Mode = defaults.UI.Mode
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}

	if c.Stats == nil {
		c.Stats = defaults.Stats
	}
	if c.Stats.Hands == 0 {
		c.Stats.Hands = defaults.Stats.Hands
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.HandSize < 1 || c.Game.HandSize > scoring.MaxHandSize {
		return fmt.Errorf("hand size must be between 1 and %d, got %d", scoring.MaxHandSize, c.Game.HandSize)
	}
	if *c.Game.WrongScorePenalty < 0 {
		return fmt.Errorf("wrong score penalty cannot be negative")
	}
	if *c.Game.InvalidComboPenalty < 0 {
		return fmt.Errorf("invalid combo penalty cannot be negative")
	}

	switch c.UI.Mode {
	case ModeConsole, ModeTUI:
	default:
		return fmt.Errorf("invalid ui mode: %s", c.UI.Mode)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	if c.Stats.Hands <= 0 {
		return fmt.Errorf("stats hands must be positive")
	}
	if c.Stats.Workers < 0 {
		return fmt.Errorf("stats workers cannot be negative")
	}

	return nil
}
