package systems

import (
	"math"
	"testing"
)

func TestEmitterPosition(t *testing.T) {
	e := Emitter{X: 0.5, Y: 0.1, Sweep: 0.25, PeriodTicks: 100, EveryTicks: 1}

	tests := []struct {
		tick   int
		wantPx float64
	}{
		{0, 500},   // center
		{25, 750},  // right extreme
		{50, 500},  // back to center
		{75, 250},  // left extreme
		{100, 500}, // wraps
	}

	for _, tt := range tests {
		px, py, fire := e.Position(tt.tick, 1000, 400)
		if !fire {
			t.Fatalf("tick %d: expected fire", tt.tick)
		}
		if math.Abs(px-tt.wantPx) > 1e-6 {
			t.Errorf("tick %d: px = %v, want %v", tt.tick, px, tt.wantPx)
		}
		if py != 40 {
			t.Errorf("tick %d: py = %v, want 40", tt.tick, py)
		}
	}
}

func TestEmitterCadence(t *testing.T) {
	e := Emitter{X: 0.5, Y: 0.5, PeriodTicks: 10, EveryTicks: 3, StopAfter: 10}

	var fired []int
	for tick := 0; tick < 20; tick++ {
		if _, _, fire := e.Position(tick, 100, 100); fire {
			fired = append(fired, tick)
		}
	}

	want := []int{0, 3, 6, 9}
	if len(fired) != len(want) {
		t.Fatalf("fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired at %v, want %v", fired, want)
		}
	}
}

func TestEmitterDegenerateCadence(t *testing.T) {
	e := Emitter{X: 0.5, Y: 0.5}
	if _, _, fire := e.Position(7, 100, 100); !fire {
		t.Error("zero cadence should fire every tick")
	}
}

func TestEmitterFillsGrid(t *testing.T) {
	params := Params{
		Resolution: 40,
		InitialHue: 1,
		Spawn:      SpawnParams{Radius: 3, Probability: 0.5, Policy: PolicyEuclidean, HueStep: 0.04, HueWrap: 66},
	}
	sim := NewSimulation(400, 200, params, constRand(0.1))
	e := Emitter{X: 0.5, Y: 0.2, Sweep: 0.3, PeriodTicks: 60, EveryTicks: 2}

	for tick := 0; tick < 120; tick++ {
		if px, py, fire := e.Position(tick, 400, 200); fire {
			sim.SpawnAt(px, py)
		}
		sim.Step()
	}
	if sim.Grid().Occupied() == 0 {
		t.Error("emitter run produced no grains")
	}
}
