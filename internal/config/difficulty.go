package config

// ApplyPreset modifies the config based on a difficulty preset.
// "fixed" pins the formation to level-1 parameters for the whole run;
// the level counter still advances.
func ApplyPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Scaling.FireRate *= 0.7
		cfg.Formation.IntervalMs *= 1.2
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Scaling.FireRate *= 1.5
		cfg.Formation.IntervalMs *= 0.75
		cfg.Player.RespawnInvincibleMs = 0
	case DifficultyFixed:
		cfg.Difficulty.Fixed = true
	}

	if cfg.Formation.IntervalMs < cfg.Formation.MinIntervalMs {
		cfg.Formation.IntervalMs = cfg.Formation.MinIntervalMs
	}
}

// ApplyAltMode switches the config to the alternate model set: slower,
// heavier formation timing and explicit per-tier explosion presets.
func ApplyAltMode(cfg *InvadersConfig) {
	m := cfg.Alt.TimeMultiplier
	if m <= 0 {
		m = 1
	}
	cfg.Formation.IntervalMs *= m
	cfg.Formation.AnimSpeed *= m

	tiers := make([]TierConfig, len(cfg.Tiers))
	copy(tiers, cfg.Tiers)
	for i := range tiers {
		if i < len(cfg.Alt.Templates) && cfg.Alt.Templates[i] != "" {
			tiers[i].Template = cfg.Alt.Templates[i]
		}
		if i < len(cfg.Alt.Explosions) {
			tiers[i].Explosion = cfg.Alt.Explosions[i]
		}
	}
	cfg.Tiers = tiers
}
