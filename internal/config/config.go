package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every startup parameter of a board and its frontends.
type Config struct {
	Seed         int64              `yaml:"seed"`
	Board        BoardConfig        `yaml:"board"`
	Spawn        SpawnConfig        `yaml:"spawn"`
	Trajectories []TrajectoryConfig `yaml:"trajectories"`
	Display      DisplayConfig      `yaml:"display"`
	Log          LogConfig          `yaml:"log"`
}

// BoardConfig sizes the grid and the block physics.
type BoardConfig struct {
	Width     int     `yaml:"width"`      // columns
	Height    int     `yaml:"height"`     // visible block slots per column
	BlockSize float64 `yaml:"block_size"` // pixels per block edge
	FallSpeed float64 `yaml:"fall_speed"` // pixels per tick for free-falling blocks
	Types     int     `yaml:"types"`      // colour count, excluding the dead type
	LaunchTTL int     `yaml:"launch_ttl"` // settled ticks before a launch group dissolves

	// StackDepth is how many blocks per column the bootstrap fill drops in.
	StackDepth    int  `yaml:"stack_depth"`
	SkipBootstrap bool `yaml:"skip_bootstrap"`
}

// SpawnConfig drives the automatic spawner. The spawn threshold is
// CooldownBase - totalLaunched/CooldownDivisor quiescent ticks.
type SpawnConfig struct {
	Manual          bool    `yaml:"manual"`
	CooldownBase    float64 `yaml:"cooldown_base"`
	CooldownDivisor float64 `yaml:"cooldown_divisor"`
}

// TrajectoryConfig is the launch curve speed(t) = Initial - Decay*t/40 for one type.
type TrajectoryConfig struct {
	Initial float64 `yaml:"initial"`
	Decay   float64 `yaml:"decay"`
}

type DisplayConfig struct {
	Scale     float64 `yaml:"scale"`
	SimSpeed  float64 `yaml:"sim_speed"`
	FeedLines int     `yaml:"feed_lines"`
	Mute      bool    `yaml:"mute"`
}

type LogConfig struct {
	Mode string `yaml:"mode"` // dev, prod or silence
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and validates the result. Omitted fields take their
// defaults in Validate.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills zero values with defaults and rejects impossible settings.
func (c *Config) Validate() error {
	d := Default()
	if c.Board.Width == 0 {
		c.Board.Width = d.Board.Width
	}
	if c.Board.Height == 0 {
		c.Board.Height = d.Board.Height
	}
	if c.Board.BlockSize == 0 {
		c.Board.BlockSize = d.Board.BlockSize
	}
	if c.Board.FallSpeed == 0 {
		c.Board.FallSpeed = d.Board.FallSpeed
	}
	if c.Board.Types == 0 {
		c.Board.Types = d.Board.Types
	}
	if c.Board.LaunchTTL == 0 {
		c.Board.LaunchTTL = d.Board.LaunchTTL
	}
	if c.Board.StackDepth == 0 {
		c.Board.StackDepth = d.Board.StackDepth
	}
	if c.Spawn.CooldownBase == 0 {
		c.Spawn.CooldownBase = d.Spawn.CooldownBase
	}
	if c.Spawn.CooldownDivisor == 0 {
		c.Spawn.CooldownDivisor = d.Spawn.CooldownDivisor
	}
	if len(c.Trajectories) == 0 && c.Board.Types <= len(d.Trajectories) {
		c.Trajectories = append([]TrajectoryConfig(nil), d.Trajectories[:c.Board.Types]...)
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = d.Display.Scale
	}
	if c.Display.SimSpeed == 0 {
		c.Display.SimSpeed = d.Display.SimSpeed
	}
	if c.Display.FeedLines == 0 {
		c.Display.FeedLines = d.Display.FeedLines
	}
	if c.Log.Mode == "" {
		c.Log.Mode = d.Log.Mode
	}

	if c.Board.Width < 1 {
		return fmt.Errorf("board.width must be positive, got %d", c.Board.Width)
	}
	if c.Board.Height < 1 {
		return fmt.Errorf("board.height must be positive, got %d", c.Board.Height)
	}
	if c.Board.BlockSize <= 0 {
		return fmt.Errorf("board.block_size must be positive, got %g", c.Board.BlockSize)
	}
	if c.Board.FallSpeed <= 0 {
		return fmt.Errorf("board.fall_speed must be positive, got %g", c.Board.FallSpeed)
	}
	if c.Board.Types < 1 {
		return fmt.Errorf("board.types must be at least 1, got %d", c.Board.Types)
	}
	if c.Board.LaunchTTL < 1 {
		return fmt.Errorf("board.launch_ttl must be positive, got %d", c.Board.LaunchTTL)
	}
	if c.Board.StackDepth < 0 {
		return fmt.Errorf("board.stack_depth must not be negative, got %d", c.Board.StackDepth)
	}
	if c.Spawn.CooldownDivisor <= 0 {
		return fmt.Errorf("spawn.cooldown_divisor must be positive, got %g", c.Spawn.CooldownDivisor)
	}
	if len(c.Trajectories) != c.Board.Types {
		return fmt.Errorf("trajectories: need one per type (%d), got %d", c.Board.Types, len(c.Trajectories))
	}
	if c.Display.SimSpeed < 0 {
		return fmt.Errorf("display.sim_speed must not be negative, got %g", c.Display.SimSpeed)
	}
	switch c.Log.Mode {
	case "dev", "prod", "silence":
	default:
		return fmt.Errorf("log.mode: unknown mode %q", c.Log.Mode)
	}
	return nil
}
