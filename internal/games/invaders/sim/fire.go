package sim

import (
	"math"
	"math/rand"
)

// FireProbability is the per-tick chance of a shot for a controller whose
// expected rate is fireRate shots per second. Scaling by delta keeps the
// per-second rate independent of the tick rate.
func FireProbability(fireRate, delta float64) float64 {
	if fireRate <= 0 || delta <= 0 {
		return 0
	}
	return math.Min(fireRate*delta/60, 1)
}

// rollFire draws once from rng and reports whether a shot fires this tick.
func rollFire(rng *rand.Rand, fireRate, delta float64) bool {
	return rng.Float64() < FireProbability(fireRate, delta)
}

// spreadVelocity returns a downward velocity rotated by a random angle in
// [-arc/2, arc/2].
func spreadVelocity(rng *rand.Rand, speed, arc float64) Vec2 {
	angle := rng.Float64()*arc - arc/2
	return Vec2{X: speed * math.Sin(angle), Y: -speed * math.Cos(angle)}
}

// easeFactor converts a per-reference-tick easing rate into the factor for a
// tick of the given delta so the approach speed is tick-rate independent.
func easeFactor(rate, delta float64) float64 {
	if rate <= 0 {
		return 0
	}
	if rate >= 1 {
		return 1
	}
	return 1 - math.Pow(1-rate, delta)
}
