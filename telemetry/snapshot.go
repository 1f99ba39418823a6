package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/sandfall/grid"
	"github.com/pthm-cable/sandfall/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when loading a snapshot written by an
// incompatible format version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot holds the grid state needed to resume a run.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`
	CellSize   int `json:"cell_size"`

	Tick int32   `json:"tick"`
	Hue  float64 `json:"hue"`

	// Sparse occupied cells, column-major order
	Cells []CellState `json:"cells"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// CellState holds one occupied cell.
type CellState struct {
	X   int     `json:"x"`
	Y   int     `json:"y"`
	Hue float64 `json:"hue"`
}

// FromSimulation captures the simulation's grid and spawn hue.
func FromSimulation(sim *systems.Simulation, tick int32, seed int64) *Snapshot {
	g := sim.Grid()
	s := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    seed,
		GridWidth:  g.W,
		GridHeight: g.H,
		CellSize:   sim.Layout().CellSize,
		Tick:       tick,
		Hue:        sim.Hue(),
		Cells:      make([]CellState, 0, g.Occupied()),
	}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if v := g.At(x, y); v != grid.Empty {
				s.Cells = append(s.Cells, CellState{X: x, Y: y, Hue: v})
			}
		}
	}
	return s
}

// Apply restores the snapshot into sim and returns how many cells were
// dropped. A cell is dropped when it lies outside the current grid, repeats
// an earlier cell, or carries a hue outside (0, HueWrap). A spawn hue outside
// [0, HueWrap) leaves the simulation's current hue in place.
func (s *Snapshot) Apply(sim *systems.Simulation) (dropped int) {
	wrap := sim.SpawnParams().HueWrap
	g := sim.Layout().NewGrid()
	for _, c := range s.Cells {
		if !g.Exists(c.X, c.Y) || !g.IsEmpty(c.X, c.Y) || !(c.Hue > 0 && c.Hue < wrap) {
			dropped++
			continue
		}
		g.Set(c.X, c.Y, c.Hue)
	}

	hue := sim.Hue()
	if s.Hue >= 0 && s.Hue < wrap {
		hue = s.Hue
	}
	sim.Restore(g, hue)
	return dropped
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSnapshotVersion, snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
