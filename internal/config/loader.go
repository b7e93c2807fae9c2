package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads the invaders configuration.
// Search order: customPath -> ~/.arcade/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default.
// Files only need to set the keys they override; everything else keeps its default.
func Load(customPath string) (InvadersConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "invaders.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays YAML onto the hardcoded defaults and validates the result.
func parse(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders a config as YAML (used by `invaders config`).
func Marshal(cfg InvadersConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks the values the simulation relies on.
func (c InvadersConfig) Validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidConfig)
	}
	for i, t := range c.Tiers {
		if t.BaseLives < 1 {
			return fmt.Errorf("%w: tier %d (%s) base_lives must be >= 1", ErrInvalidConfig, i, t.Name)
		}
		if t.BonusFrom > 0 && t.BonusEvery < 1 {
			return fmt.Errorf("%w: tier %d (%s) bonus_every must be >= 1", ErrInvalidConfig, i, t.Name)
		}
		if err := t.Explosion.validate(); err != nil {
			return fmt.Errorf("%w: tier %d (%s): %v", ErrInvalidConfig, i, t.Name, err)
		}
	}
	for i, e := range c.Alt.Explosions {
		if err := e.validate(); err != nil {
			return fmt.Errorf("%w: alt explosion %d: %v", ErrInvalidConfig, i, err)
		}
	}
	if c.Formation.Columns < 1 || c.Formation.Rows < 1 {
		return fmt.Errorf("%w: formation needs at least one row and column", ErrInvalidConfig)
	}
	if c.Scaling.MaxColumns < c.Formation.Columns || c.Scaling.MaxRows < c.Formation.Rows {
		return fmt.Errorf("%w: scaling caps are below the base formation size", ErrInvalidConfig)
	}
	if c.Scaling.FireGrowth <= 1 {
		return fmt.Errorf("%w: fire_growth must be > 1", ErrInvalidConfig)
	}
	if c.Field.MinX >= c.Field.MaxX {
		return fmt.Errorf("%w: field min_x must be below max_x", ErrInvalidConfig)
	}
	if c.Formation.MinIntervalMs <= 0 || c.Formation.IntervalMs < c.Formation.MinIntervalMs {
		return fmt.Errorf("%w: formation interval must be >= min_interval_ms > 0", ErrInvalidConfig)
	}
	if c.Player.Lives < 1 {
		return fmt.Errorf("%w: player lives must be >= 1", ErrInvalidConfig)
	}
	return nil
}

func (e ExplosionConfig) validate() error {
	switch e.Mode {
	case ExplosionScaled:
		if e.ScaleDivisor <= 0 {
			return errors.New("scaled explosion needs scale_divisor > 0")
		}
	case ExplosionFixed:
		if e.Size <= 0 {
			return errors.New("fixed explosion needs size > 0")
		}
	default:
		return fmt.Errorf("unknown explosion mode %q", e.Mode)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
