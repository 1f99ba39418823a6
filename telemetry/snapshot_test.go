package telemetry

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/sandfall/systems"
)

func testSimulation(viewW, viewH int) *systems.Simulation {
	params := systems.Params{
		Resolution: 20,
		InitialHue: 1,
		Spawn: systems.SpawnParams{
			Radius:      3,
			Probability: 1,
			Policy:      systems.PolicyEuclidean,
			HueStep:     0.04,
			HueWrap:     66,
		},
	}
	return systems.NewSimulation(viewW, viewH, params, rand.New(rand.NewSource(7)))
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	sim := testSimulation(200, 100)
	sim.SpawnCell(10, 5)
	for i := 0; i < 3; i++ {
		sim.Step()
	}

	snapshot := FromSimulation(sim, 1000, 42)
	snapshot.Bookmark = &Bookmark{
		Type:        BookmarkSettled,
		Tick:        1000,
		Description: "Test bookmark",
	}

	// Save the snapshot
	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	// Load the snapshot
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	// Verify loaded data matches original
	if loaded.RNGSeed != 42 || loaded.Tick != 1000 {
		t.Errorf("header mismatch: seed %d tick %d", loaded.RNGSeed, loaded.Tick)
	}
	if loaded.GridWidth != 40 || loaded.GridHeight != 20 || loaded.CellSize != 5 {
		t.Errorf("layout mismatch: %dx%d cell %d", loaded.GridWidth, loaded.GridHeight, loaded.CellSize)
	}
	if loaded.Hue != sim.Hue() {
		t.Errorf("hue mismatch: got %v, want %v", loaded.Hue, sim.Hue())
	}
	if len(loaded.Cells) != sim.Grid().Occupied() {
		t.Errorf("cell count mismatch: got %d, want %d", len(loaded.Cells), sim.Grid().Occupied())
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkSettled {
		t.Errorf("bookmark not loaded: %+v", loaded.Bookmark)
	}
}

func TestSnapshotApplyRestoresGrid(t *testing.T) {
	sim := testSimulation(200, 100)
	sim.SpawnCell(20, 10)
	sim.Step()

	snapshot := FromSimulation(sim, 1, 0)
	want := sim.Grid().Clone()
	wantHue := sim.Hue()

	sim.Clear()
	sim.SpawnCell(5, 5)

	if dropped := snapshot.Apply(sim); dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	got := sim.Grid()
	for x := 0; x < want.W; x++ {
		for y := 0; y < want.H; y++ {
			if got.At(x, y) != want.At(x, y) {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got.At(x, y), want.At(x, y))
			}
		}
	}
	if sim.Hue() != wantHue {
		t.Errorf("hue = %v, want %v", sim.Hue(), wantHue)
	}
}

func TestSnapshotApplyDropsOutOfLayout(t *testing.T) {
	big := testSimulation(200, 100) // 40x20
	big.Grid().Set(39, 19, 3)
	big.Grid().Set(0, 19, 3)

	small := testSimulation(100, 100) // 20x20
	dropped := FromSimulation(big, 0, 0).Apply(small)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if small.Grid().Occupied() != 1 {
		t.Errorf("occupied = %d, want 1", small.Grid().Occupied())
	}
}

func TestSnapshotApplyDropsInvalidCells(t *testing.T) {
	sim := testSimulation(100, 100) // 20x20, hue wrap 66

	snap := &Snapshot{
		Version: SnapshotVersion,
		Hue:     12,
		Cells: []CellState{
			{X: 3, Y: 19, Hue: 5},          // kept
			{X: -1, Y: 19, Hue: 5},         // negative x
			{X: 4, Y: -2, Hue: 5},          // negative y
			{X: 20, Y: 0, Hue: 5},          // past the right edge
			{X: 5, Y: 19, Hue: 0},          // hue 0 is the empty marker
			{X: 6, Y: 19, Hue: -3},         // below the band
			{X: 7, Y: 19, Hue: 66},         // at the wrap
			{X: 8, Y: 19, Hue: math.NaN()}, // not a hue
			{X: 3, Y: 19, Hue: 9},          // repeats a kept cell
			{X: 9, Y: 18, Hue: 65.9},       // kept
		},
	}

	dropped := snap.Apply(sim)
	if dropped != 8 {
		t.Errorf("dropped = %d, want 8", dropped)
	}

	g := sim.Grid()
	if g.Occupied() != 2 {
		t.Fatalf("occupied = %d, want 2", g.Occupied())
	}
	if g.At(3, 19) != 5 || g.At(9, 18) != 65.9 {
		t.Errorf("kept cells = %v, %v, want 5, 65.9", g.At(3, 19), g.At(9, 18))
	}
	if sim.Hue() != 12 {
		t.Errorf("hue = %v, want 12", sim.Hue())
	}
}

func TestSnapshotApplyKeepsHueOutsideBand(t *testing.T) {
	sim := testSimulation(100, 100)
	before := sim.Hue()

	for _, hue := range []float64{-1, 66, 400, math.NaN()} {
		snap := &Snapshot{Version: SnapshotVersion, Hue: hue}
		if dropped := snap.Apply(sim); dropped != 0 {
			t.Errorf("hue %v: dropped = %d, want 0", hue, dropped)
		}
		if sim.Hue() != before {
			t.Errorf("spawn hue %v accepted, sim hue now %v", hue, sim.Hue())
		}
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	// Test with bookmark
	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Bookmark: &Bookmark{
			Type: BookmarkSpawnBurst,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_5000_spawn_burst.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	// Test without bookmark
	snapshotNoBookmark := &Snapshot{
		Version: SnapshotVersion,
		Tick:    3000,
	}

	path, err = SaveSnapshot(snapshotNoBookmark, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected = filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "cells": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSnapshot(path)
	if !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("expected ErrSnapshotVersion, got %v", err)
	}
}
