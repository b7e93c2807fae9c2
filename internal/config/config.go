// Package config provides YAML-based game configuration loading and
// difficulty presets for the invaders game.
package config

// InvadersConfig contains all tunables for the invaders simulation.
// World units are abstract; x grows right, y grows up, the player sits at y=0.
type InvadersConfig struct {
	Field      FieldConfig               `yaml:"field"`
	Formation  FormationConfig           `yaml:"formation"`
	Tiers      []TierConfig              `yaml:"tiers"`
	Scaling    ScalingConfig             `yaml:"scaling"`
	Player     PlayerConfig              `yaml:"player"`
	Bullets    BulletsConfig             `yaml:"bullets"`
	Barriers   BarrierConfig             `yaml:"barriers"`
	MotherShip MotherShipConfig          `yaml:"mothership"`
	Templates  map[string]TemplateConfig `yaml:"templates"`
	Alt        AltModeConfig             `yaml:"alt_mode"`
	Difficulty DifficultyConfig          `yaml:"difficulty"`
}

// FieldConfig defines the play-area bounds.
type FieldConfig struct {
	MinX         float64 `yaml:"min_x"`          // Formation turns around left of this
	MaxX         float64 `yaml:"max_x"`          // Formation turns around right of this
	GroundY      float64 `yaml:"ground_y"`       // Aliens below this have landed
	PlayerY      float64 `yaml:"player_y"`       // Player row
	PlayerMinX   float64 `yaml:"player_min_x"`   // Player clamp
	PlayerMaxX   float64 `yaml:"player_max_x"`   // Player clamp
	CeilingY     float64 `yaml:"ceiling_y"`      // Player bullets above this are discarded
	FloorY       float64 `yaml:"floor_y"`        // Alien bullets below this are discarded
	LevelDelayMs float64 `yaml:"level_delay_ms"` // Pause between a cleared level and the next
}

// FormationConfig defines the enemy grid and its movement timing.
type FormationConfig struct {
	Columns         int     `yaml:"columns"`
	Rows            int     `yaml:"rows"`
	SpacingX        float64 `yaml:"spacing_x"`
	SpacingY        float64 `yaml:"spacing_y"`
	PivotX          float64 `yaml:"pivot_x"`
	PivotY          float64 `yaml:"pivot_y"`
	StepX           float64 `yaml:"step_x"`
	StepY           float64 `yaml:"step_y"`
	IntervalMs      float64 `yaml:"interval_ms"`       // Initial formation tick interval
	MinIntervalMs   float64 `yaml:"min_interval_ms"`   // Floor the interval eases toward
	IntervalEase    float64 `yaml:"interval_ease"`     // Lerp factor applied per formation tick
	AnimSpeed       float64 `yaml:"anim_speed"`        // Per-tick easing toward the formation slot
	StartDelayMs    float64 `yaml:"start_delay_ms"`    // Grace period before the first formation tick
	StartSlowFactor float64 `yaml:"start_slow_factor"` // Easing multiplier during the grace period
}

// TierConfig describes one class of enemy. Tiers are assigned bottom-up:
// the first tier fills the lowest Rows rows, the last tier takes the rest.
type TierConfig struct {
	Name       string          `yaml:"name"`
	Template   string          `yaml:"template"`
	Rows       int             `yaml:"rows"`
	Score      int             `yaml:"score"`
	BaseLives  int             `yaml:"base_lives"`
	BonusFrom  int             `yaml:"bonus_from"`  // First level granting a bonus life, 0 = never
	BonusEvery int             `yaml:"bonus_every"` // Levels per additional bonus life
	MaxBonus   int             `yaml:"max_bonus"`
	Explosion  ExplosionConfig `yaml:"explosion"`
}

// Explosion modes.
const (
	ExplosionScaled = "scaled" // size = model scale / divisor
	ExplosionFixed  = "fixed"  // size = Size
)

// ExplosionConfig is the per-tier explosion preset reported with every kill.
type ExplosionConfig struct {
	Mode             string  `yaml:"mode"`
	Size             float64 `yaml:"size"`
	ScaleDivisor     float64 `yaml:"scale_divisor"`
	ParticlesPerSize float64 `yaml:"particles_per_size"`
}

// ScalingConfig defines how level number parameterizes the formation.
type ScalingConfig struct {
	MaxColumns   int     `yaml:"max_columns"`
	MaxRows      int     `yaml:"max_rows"`
	FireRate     float64 `yaml:"fire_rate"`   // Expected alien shots per second at level 1
	FireGrowth   float64 `yaml:"fire_growth"` // Multiplier per level
	Barriers     int     `yaml:"barriers"`
	MaxBarriers  int     `yaml:"max_barriers"`
	RowScaleBase float64 `yaml:"row_scale_base"` // Alien model scale on the lowest row
	RowScaleStep float64 `yaml:"row_scale_step"` // Scale lost per row upward
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Lives               int     `yaml:"lives"`
	Accel               float64 `yaml:"accel"`
	Decay               float64 `yaml:"decay"`
	MaxMomentum         float64 `yaml:"max_momentum"`
	InvincibleMs        float64 `yaml:"invincible_ms"`
	RespawnInvincibleMs float64 `yaml:"respawn_invincible_ms"` // 0 disables invincibility after a hit
	FlickerPeriodMs     float64 `yaml:"flicker_period_ms"`
	MaxBullets          int     `yaml:"max_bullets"`
	FireCooldownMs      float64 `yaml:"fire_cooldown_ms"`
}

// BulletsConfig defines projectile motion.
type BulletsConfig struct {
	PlayerSpeed  float64 `yaml:"player_speed"`
	PlayerOffset float64 `yaml:"player_offset"`
	AlienSpeed   float64 `yaml:"alien_speed"`
	AlienOffset  float64 `yaml:"alien_offset"`
	SpreadArc    float64 `yaml:"spread_arc"` // Radians, centered on straight down
}

// BarrierConfig defines the destructible shields.
type BarrierConfig struct {
	Y         float64 `yaml:"y"`
	BrickCols int     `yaml:"brick_cols"`
	BrickRows int     `yaml:"brick_rows"`
	BrickSize float64 `yaml:"brick_size"`
}

// MotherShipConfig defines the bonus ship.
type MotherShipConfig struct {
	Y                float64 `yaml:"y"`
	Speed            float64 `yaml:"speed"`
	Score            int     `yaml:"score"`
	IntervalSec      float64 `yaml:"interval_sec"`
	MinIntervalSec   float64 `yaml:"min_interval_sec"`
	IntervalPerLevel float64 `yaml:"interval_per_level"` // Seconds removed per level
	FireRate         float64 `yaml:"fire_rate"`
	FireRatePerLevel float64 `yaml:"fire_rate_per_level"`
}

// TemplateConfig is the collision extent of a spawnable body template.
type TemplateConfig struct {
	HalfW float64 `yaml:"half_w"`
	HalfH float64 `yaml:"half_h"`
}

// AltModeConfig holds the alternate-model variant's overrides.
type AltModeConfig struct {
	TimeMultiplier float64           `yaml:"time_multiplier"` // Scales formation interval and easing
	Templates      []string          `yaml:"templates"`       // Per-tier template overrides
	Explosions     []ExplosionConfig `yaml:"explosions"`      // Per-tier explosion overrides
}

// DifficultyConfig defines how the run progresses.
type DifficultyConfig struct {
	StartLevel int  `yaml:"start_level"`
	Fixed      bool `yaml:"fixed"` // Keep level-1 parameters regardless of level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset; unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
