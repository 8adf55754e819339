// Package config loads game settings from EMOJI_MERGE_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"emoji-merge/assets"
	"emoji-merge/internal/board"
	"emoji-merge/internal/store"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name below.
const Prefix = "EMOJI_MERGE_"

// Config is the full set of tunables for one process.
type Config struct {
	BoardWidth    float64       `env:"BOARD_WIDTH"    envDefault:"24"`
	BoardHeight   float64       `env:"BOARD_HEIGHT"   envDefault:"30"`
	DeadlineRatio float64       `env:"DEADLINE_RATIO" envDefault:"0.18"`
	SpawnY        float64       `env:"SPAWN_Y"        envDefault:"2.5"`
	Cooldown      time.Duration `env:"COOLDOWN"       envDefault:"500ms"`
	Grace         time.Duration `env:"GRACE"          envDefault:"2s"`
	Tick          time.Duration `env:"TICK"           envDefault:"16ms"`
	Substeps      int           `env:"SUBSTEPS"       envDefault:"4"`
	Gravity       float64       `env:"GRAVITY"        envDefault:"40"`
	Store         string        `env:"STORE"          envDefault:"file"`
	DataDir       string        `env:"DATA_DIR"`
	Audio         bool          `env:"AUDIO"          envDefault:"true"`
	Seed          int64         `env:"SEED"           envDefault:"0"`
}

// Load parses the environment, fills in the data directory, and validates
// the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := store.DataDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Board returns the playfield described by cfg.
func (c Config) Board() board.Board {
	return board.New(c.BoardWidth, c.BoardHeight, c.DeadlineRatio, c.SpawnY)
}

// Validate reports every setting that would make the game unplayable.
func (c Config) Validate() error {
	var errs []error
	widest := 2 * (assets.Def(assets.MaxLevel).Radius + board.DropMargin)
	if c.BoardWidth <= widest {
		errs = append(errs, fmt.Errorf("board width %.1f cannot hold a level %d piece (needs > %.1f)", c.BoardWidth, assets.MaxLevel, widest))
	}
	if c.BoardHeight <= 0 {
		errs = append(errs, fmt.Errorf("board height must be positive, got %.1f", c.BoardHeight))
	}
	if c.DeadlineRatio <= 0 || c.DeadlineRatio >= 1 {
		errs = append(errs, fmt.Errorf("deadline ratio must be in (0, 1), got %.2f", c.DeadlineRatio))
	}
	if c.SpawnY < 0 || c.SpawnY >= c.BoardHeight*c.DeadlineRatio {
		errs = append(errs, fmt.Errorf("spawn y %.1f must sit above the deadline", c.SpawnY))
	}
	if c.Cooldown < 0 {
		errs = append(errs, errors.New("cooldown must not be negative"))
	}
	if c.Grace < 0 {
		errs = append(errs, errors.New("grace must not be negative"))
	}
	if c.Tick <= 0 {
		errs = append(errs, errors.New("tick must be positive"))
	}
	if c.Substeps < 1 {
		errs = append(errs, fmt.Errorf("substeps must be at least 1, got %d", c.Substeps))
	}
	switch c.Store {
	case store.KindFile, store.KindSQLite, store.KindMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	return errors.Join(errs...)
}
