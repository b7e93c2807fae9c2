package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// Template identifiers for the non-tier bodies.
const (
	TemplatePlayer       = "player"
	TemplatePlayerBullet = "player_bullet"
	TemplateAlienBullet  = "alien_bullet"
	TemplateMotherShip   = "mothership"
	TemplateBrick        = "brick"
)

// DefaultInvadersConfig returns the built-in configuration. It mirrors
// defaults/invaders.yaml and is the fallback when the embedded file fails to parse.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Field: FieldConfig{
			MinX:         -45,
			MaxX:         45,
			GroundY:      -6,
			PlayerY:      0,
			PlayerMinX:   -52,
			PlayerMaxX:   52,
			CeilingY:     80,
			FloorY:       -12,
			LevelDelayMs: 2000,
		},
		Formation: FormationConfig{
			Columns:         5,
			Rows:            5,
			SpacingX:        9,
			SpacingY:        8,
			PivotX:          0,
			PivotY:          48,
			StepX:           5,
			StepY:           5,
			IntervalMs:      1500,
			MinIntervalMs:   100,
			IntervalEase:    0.025,
			AnimSpeed:       0.2,
			StartDelayMs:    3000,
			StartSlowFactor: 0.5,
		},
		Tiers: []TierConfig{
			{
				Name: "squid", Template: "alien_1", Rows: 2, Score: 10, BaseLives: 1,
				BonusFrom: 4, BonusEvery: 3, MaxBonus: 3,
				Explosion: ExplosionConfig{Mode: ExplosionScaled, ScaleDivisor: 1.5, ParticlesPerSize: 20},
			},
			{
				Name: "crab", Template: "alien_2", Rows: 2, Score: 20, BaseLives: 1,
				BonusFrom: 6, BonusEvery: 3, MaxBonus: 3,
				Explosion: ExplosionConfig{Mode: ExplosionScaled, ScaleDivisor: 1.5, ParticlesPerSize: 20},
			},
			{
				Name: "octopus", Template: "alien_3", Rows: 0, Score: 30, BaseLives: 1,
				BonusFrom: 0, BonusEvery: 3, MaxBonus: 0,
				Explosion: ExplosionConfig{Mode: ExplosionScaled, ScaleDivisor: 1.5, ParticlesPerSize: 20},
			},
		},
		Scaling: ScalingConfig{
			MaxColumns:   10,
			MaxRows:      6,
			FireRate:     1,
			FireGrowth:   1.2,
			Barriers:     3,
			MaxBarriers:  6,
			RowScaleBase: 1.7,
			RowScaleStep: 0.14,
		},
		Player: PlayerConfig{
			Lives:               3,
			Accel:               0.2,
			Decay:               1.4,
			MaxMomentum:         4,
			InvincibleMs:        3000,
			RespawnInvincibleMs: 1500,
			FlickerPeriodMs:     200,
			MaxBullets:          50,
			FireCooldownMs:      250,
		},
		Bullets: BulletsConfig{
			PlayerSpeed:  1.25,
			PlayerOffset: 2,
			AlienSpeed:   0.5,
			AlienOffset:  -2,
			SpreadArc:    math.Pi / 6,
		},
		Barriers: BarrierConfig{
			Y:         15,
			BrickCols: 5,
			BrickRows: 2,
			BrickSize: 2,
		},
		MotherShip: MotherShipConfig{
			Y:                68,
			Speed:            0.4,
			Score:            100,
			IntervalSec:      20,
			MinIntervalSec:   6,
			IntervalPerLevel: 0.5,
			FireRate:         2,
			FireRatePerLevel: 1.0 / 3.0,
		},
		Templates: map[string]TemplateConfig{
			TemplatePlayer:       {HalfW: 2, HalfH: 1.5},
			TemplatePlayerBullet: {HalfW: 0.25, HalfH: 2},
			TemplateAlienBullet:  {HalfW: 0.25, HalfH: 1.5},
			TemplateMotherShip:   {HalfW: 4, HalfH: 1.5},
			TemplateBrick:        {HalfW: 1, HalfH: 1},
			"alien_1":            {HalfW: 2, HalfH: 1.5},
			"alien_2":            {HalfW: 2, HalfH: 1.5},
			"alien_3":            {HalfW: 2, HalfH: 1.5},
			"alien_1_alt":        {HalfW: 1.5, HalfH: 1.5},
			"alien_2_alt":        {HalfW: 1.5, HalfH: 1.5},
			"alien_3_alt":        {HalfW: 1.5, HalfH: 1.5},
		},
		Alt: AltModeConfig{
			TimeMultiplier: 1.5,
			Templates:      []string{"alien_1_alt", "alien_2_alt", "alien_3_alt"},
			Explosions: []ExplosionConfig{
				{Mode: ExplosionFixed, Size: 0.5, ParticlesPerSize: 10},
				{Mode: ExplosionFixed, Size: 0.75, ParticlesPerSize: 10},
				{Mode: ExplosionFixed, Size: 0.5, ParticlesPerSize: 10},
			},
		},
		Difficulty: DifficultyConfig{
			StartLevel: 1,
			Fixed:      false,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultInvadersYAML
}
