package game

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/bossrush/internal/battle"
)

// Config holds game configuration options, read from the environment.
type Config struct {
	// Seed for random number generation. Used for reproducible boss targeting.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"BOSSRUSH_SEED" envDefault:"0"`

	StartSkillPoints int           `env:"BOSSRUSH_START_SKILL_POINTS" envDefault:"3"`
	MaxSkillPoints   int           `env:"BOSSRUSH_MAX_SKILL_POINTS"   envDefault:"5"`
	BossDelay        time.Duration `env:"BOSSRUSH_BOSS_DELAY"         envDefault:"1s"` // Pause before the boss strikes
	Telemetry        bool          `env:"BOSSRUSH_TELEMETRY"          envDefault:"true"`

	HoneycombAPIKey  string `env:"HONEYCOMB_BOSSRUSH_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_BOSSRUSH_DATASET" envDefault:"bossrush"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		StartSkillPoints: battle.DefaultStartSkillPoints,
		MaxSkillPoints:   battle.DefaultMaxSkillPoints,
		BossDelay:        time.Second,
		Telemetry:        true,
		HoneycombDataset: "bossrush",
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a battle cannot start with.
func (c Config) Validate() error {
	if c.MaxSkillPoints < 1 {
		return fmt.Errorf("BOSSRUSH_MAX_SKILL_POINTS must be at least 1, got %d", c.MaxSkillPoints)
	}
	if c.StartSkillPoints < 0 || c.StartSkillPoints > c.MaxSkillPoints {
		return fmt.Errorf("BOSSRUSH_START_SKILL_POINTS must be within [0, %d], got %d", c.MaxSkillPoints, c.StartSkillPoints)
	}
	if c.BossDelay < 0 {
		return fmt.Errorf("BOSSRUSH_BOSS_DELAY cannot be negative, got %s", c.BossDelay)
	}
	return nil
}

// SessionOptions returns the battle options this configuration implies.
func (c Config) SessionOptions() []battle.Option {
	return []battle.Option{battle.WithSkillPoints(c.StartSkillPoints, c.MaxSkillPoints)}
}
