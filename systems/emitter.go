package systems

import "math"

// Emitter is a scripted pointer for runs without a mouse. It sweeps
// horizontally along a sine wave at a fixed height and fires every few ticks.
type Emitter struct {
	X, Y        float64 // center as fractions of the viewport
	Sweep       float64 // horizontal amplitude as a fraction of the viewport
	PeriodTicks int     // ticks per full sweep
	EveryTicks  int     // fire once every N ticks
	StopAfter   int     // stop firing at this tick (0 = never)
}

// Position returns the pointer position in viewport pixels for the given
// tick, and whether the emitter fires on that tick.
func (e Emitter) Position(tick int, viewW, viewH int) (px, py float64, fire bool) {
	if e.StopAfter > 0 && tick >= e.StopAfter {
		return 0, 0, false
	}
	every := e.EveryTicks
	if every < 1 {
		every = 1
	}
	if tick%every != 0 {
		return 0, 0, false
	}

	period := e.PeriodTicks
	if period < 1 {
		period = 1
	}
	phase := 2 * math.Pi * float64(tick%period) / float64(period)

	px = float64(viewW) * (e.X + e.Sweep*math.Sin(phase))
	py = float64(viewH) * e.Y
	return px, py, true
}
