package systems

import "math"

// Rand is the random source used by the step and spawn rules.
// *rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// driftRange is the half-width of the horizontal drift draw.
const driftRange = 4.0

// drawDrift returns round(uniform[-4, 4]) with halves rounded up, so only
// about a quarter of draws land on -1, 0 or 1.
func drawDrift(rng Rand) int {
	v := rng.Float64()*2*driftRange - driftRange
	return int(math.Floor(v + 0.5))
}
