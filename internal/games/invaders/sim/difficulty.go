package sim

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// TierParams is one enemy tier resolved for a level.
type TierParams struct {
	Name      string
	Template  string
	Rows      int // 0 on the last tier means "all remaining rows"
	Score     int
	Lives     int
	Explosion config.ExplosionConfig
}

// LevelParams is everything the formation and mothership need for one level.
type LevelParams struct {
	Level    int
	Columns  int
	Rows     int
	FireRate float64 // Expected alien shots per second
	Barriers int
	Tiers    []TierParams

	MotherShipIntervalSec float64
	MotherShipFireRate    float64
}

// ComputeLevelParams derives level parameters from the config. Levels below
// 1 are treated as 1. Every quantity is non-decreasing in level and clamped
// to its configured cap.
func ComputeLevelParams(cfg config.InvadersConfig, level int) LevelParams {
	if level < 1 {
		level = 1
	}
	sc := cfg.Scaling

	p := LevelParams{
		Level:    level,
		Columns:  min(cfg.Formation.Columns+level-1, sc.MaxColumns),
		Rows:     min(cfg.Formation.Rows+level-1, sc.MaxRows),
		FireRate: sc.FireRate * math.Pow(sc.FireGrowth, float64(level-1)),
		Barriers: min(int(math.Floor(float64(sc.Barriers)+float64(level)/2-0.5)), sc.MaxBarriers),
	}

	p.Tiers = make([]TierParams, len(cfg.Tiers))
	for i, t := range cfg.Tiers {
		p.Tiers[i] = TierParams{
			Name:      t.Name,
			Template:  t.Template,
			Rows:      t.Rows,
			Score:     t.Score,
			Lives:     t.BaseLives + TierBonusLives(t, level),
			Explosion: t.Explosion,
		}
	}

	ms := cfg.MotherShip
	p.MotherShipIntervalSec = math.Max(ms.IntervalSec-float64(level)*ms.IntervalPerLevel, ms.MinIntervalSec)
	p.MotherShipFireRate = ms.FireRate + float64(level)*ms.FireRatePerLevel
	return p
}

// TierBonusLives returns the extra hits a tier needs at level: none before
// BonusFrom, then one more every BonusEvery levels, capped at MaxBonus.
func TierBonusLives(t config.TierConfig, level int) int {
	if t.BonusFrom <= 0 || t.BonusEvery <= 0 || level < t.BonusFrom {
		return 0
	}
	bonus := 1 + level/t.BonusEvery - t.BonusFrom/t.BonusEvery
	return max(0, min(bonus, t.MaxBonus))
}

// TierForRow returns the tier index for a formation row counted from the
// bottom. Tiers claim rows in order; the last tier takes whatever is left.
func (p LevelParams) TierForRow(row int) int {
	start := 0
	for i, t := range p.Tiers {
		if i == len(p.Tiers)-1 || row < start+t.Rows {
			return i
		}
		start += t.Rows
	}
	return 0
}
