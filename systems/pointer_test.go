package systems

import "testing"

func TestPointerPoursOnPressAndDrag(t *testing.T) {
	type event struct {
		down bool
		x, y float64
		want bool
	}
	tests := []struct {
		name   string
		events []event
	}{
		{"idle", []event{{false, 1, 1, false}, {false, 2, 2, false}}},
		{"press pours once", []event{{true, 5, 5, true}, {true, 5, 5, false}, {true, 5, 5, false}}},
		{"drag pours each move", []event{{true, 5, 5, true}, {true, 6, 5, true}, {true, 6, 7, true}, {true, 6, 7, false}}},
		{"release then press again", []event{{true, 5, 5, true}, {false, 5, 5, false}, {true, 5, 5, true}}},
		{"moving without button", []event{{false, 1, 1, false}, {false, 3, 3, false}, {true, 3, 3, true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pointer
			for i, ev := range tt.events {
				if got := p.Update(ev.down, ev.x, ev.y); got != ev.want {
					t.Errorf("event %d (%v at %v,%v): pour = %v, want %v", i, ev.down, ev.x, ev.y, got, ev.want)
				}
			}
		})
	}
}

func TestPointerRelease(t *testing.T) {
	var p Pointer
	p.Update(true, 4, 4)
	p.Release()
	if !p.Update(true, 4, 4) {
		t.Error("press after Release should pour")
	}
}

func TestPointerHeldStillStopsFilling(t *testing.T) {
	sim := NewSimulation(100, 100, testParams(), constRand(driftNone))
	var p Pointer

	for i := 0; i < 20; i++ {
		if p.Update(true, 50, 10) {
			sim.SpawnAt(50, 10)
		}
		sim.Step()
	}
	once := sim.Grid().Occupied()

	fresh := NewSimulation(100, 100, testParams(), constRand(driftNone))
	fresh.SpawnAt(50, 10)
	if want := fresh.Grid().Occupied(); once != want {
		t.Errorf("holding still poured %d grains, want a single pour of %d", once, want)
	}
}
