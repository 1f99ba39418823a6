package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/sandfall/grid"
)

func testParams() Params {
	return Params{
		Resolution: 240,
		InitialHue: 1,
		Spawn: SpawnParams{
			Radius:      7,
			Probability: 1,
			Policy:      PolicyEuclidean,
			HueStep:     0.04,
			HueWrap:     66,
		},
	}
}

func TestNewSimulationLayout(t *testing.T) {
	sim := NewSimulation(1920, 1080, testParams(), rand.New(rand.NewSource(1)))

	l := sim.Layout()
	if l.CellSize != 4 || l.W != 480 || l.H != 270 {
		t.Errorf("unexpected layout %+v", l)
	}
	if sim.Grid().W != 480 || sim.Grid().H != 270 {
		t.Errorf("grid dims %dx%d do not match layout", sim.Grid().W, sim.Grid().H)
	}
	if sim.Hue() != 1 {
		t.Errorf("initial hue = %v, want 1", sim.Hue())
	}
}

func TestSimulationResizeDiscardsGrains(t *testing.T) {
	sim := NewSimulation(800, 600, testParams(), rand.New(rand.NewSource(1)))
	sim.SpawnAt(400, 300)
	if sim.Grid().Occupied() == 0 {
		t.Fatal("expected grains after spawn")
	}

	sim.Resize(800, 600)
	first := sim.Grid()
	sim.Resize(800, 600)
	second := sim.Grid()

	if !first.SameSize(second) || first.Occupied() != 0 || second.Occupied() != 0 {
		t.Error("resize should produce identical empty grids")
	}
	if first == second {
		t.Error("resize should allocate a new grid")
	}
}

func TestSimulationSpawnAtConvertsPixels(t *testing.T) {
	p := testParams()
	p.Spawn.Radius = 0
	sim := NewSimulation(1920, 1080, p, constRand(0.5)) // cell size 4

	if filled := sim.SpawnAt(41, 19); filled != 1 {
		t.Fatalf("filled = %d, want 1", filled)
	}
	if sim.Grid().IsEmpty(10, 4) {
		t.Error("expected grain at cell (10,4)")
	}
	if math.Abs(sim.Hue()-1.04) > 1e-9 {
		t.Errorf("hue = %v, want 1.04", sim.Hue())
	}
}

func TestSimulationStepConserves(t *testing.T) {
	p := testParams()
	p.Spawn.Probability = 0.2
	sim := NewSimulation(320, 240, p, rand.New(rand.NewSource(9)))

	total := 0
	for tick := 0; tick < 200; tick++ {
		if tick%10 == 0 {
			total += sim.SpawnAt(160, 20)
		}
		counts := sim.Step()
		if counts.Total() != total {
			t.Fatalf("tick %d: step saw %d grains, want %d", tick, counts.Total(), total)
		}
		if sim.Grid().Occupied() != total {
			t.Fatalf("tick %d: occupied %d, want %d", tick, sim.Grid().Occupied(), total)
		}
	}
}

func TestSimulationClearAndRestore(t *testing.T) {
	sim := NewSimulation(100, 100, Params{Resolution: 10, InitialHue: 1, Spawn: testParams().Spawn}, constRand(0.5))
	sim.SpawnCell(5, 5)
	sim.Clear()
	if sim.Grid().Occupied() != 0 {
		t.Error("Clear left grains behind")
	}

	saved := grid.New(12, 3)
	saved.Set(0, 0, 3)
	saved.Set(11, 2, 4) // outside the 10x10 layout
	sim.Restore(saved, 42)

	if sim.Grid().At(0, 0) != 3 {
		t.Error("restored grain missing")
	}
	if sim.Grid().Occupied() != 1 {
		t.Errorf("expected out-of-layout cell dropped, got %d grains", sim.Grid().Occupied())
	}
	if sim.Hue() != 42 {
		t.Errorf("hue = %v, want 42", sim.Hue())
	}
}

func TestSimulationSpawnParams(t *testing.T) {
	sim := NewSimulation(100, 100, testParams(), constRand(0.5))
	p := sim.SpawnParams()
	p.Policy = p.Policy.Next()
	p.Radius = 3
	sim.SetSpawnParams(p)

	if got := sim.SpawnParams(); got.Policy != PolicyDiamond || got.Radius != 3 {
		t.Errorf("spawn params not applied: %+v", got)
	}
}
