package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Settled(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.5, 3)

	// Still falling
	moving := WindowStats{WindowEndTick: 600, Occupied: 50, MovesDown: 120}
	if hasBookmark(bd.Check(moving), BookmarkSettled) {
		t.Fatal("settled reported while grains were moving")
	}

	rest := WindowStats{WindowEndTick: 1200, Occupied: 50}
	if !hasBookmark(bd.Check(rest), BookmarkSettled) {
		t.Error("expected settled bookmark")
	}

	// Staying at rest does not repeat the bookmark
	rest.WindowEndTick = 1800
	if hasBookmark(bd.Check(rest), BookmarkSettled) {
		t.Error("settled should only fire once per rest period")
	}
}

func TestBookmarkDetector_EmptyGridNotSettled(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.5, 3)
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 600}), BookmarkSettled) {
		t.Error("an empty grid is not a settled pile")
	}
}

func TestBookmarkDetector_SaturatedEdgeTriggered(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.5, 3)

	fills := []struct {
		fill float64
		want bool
	}{
		{0.2, false},
		{0.5, true}, // crosses threshold
		{0.7, false},
		{0.3, false}, // cleared
		{0.6, true},  // crosses again
	}

	for i, f := range fills {
		got := hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i * 600), FillFraction: f.fill}), BookmarkSaturated)
		if got != f.want {
			t.Errorf("window %d (fill %.1f): saturated = %v, want %v", i, f.fill, got, f.want)
		}
	}
}

func TestBookmarkDetector_SpawnBurst(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.5, 3)

	// Steady spawning
	for i := 0; i < 5; i++ {
		stats := WindowStats{WindowEndTick: int32(i * 600), Spawned: 100}
		if hasBookmark(bd.Check(stats), BookmarkSpawnBurst) {
			t.Fatalf("window %d: unexpected burst", i)
		}
	}

	burst := WindowStats{WindowEndTick: 3000, Spawned: 400} // 4x average
	if !hasBookmark(bd.Check(burst), BookmarkSpawnBurst) {
		t.Error("expected spawn_burst bookmark")
	}
}

func TestBookmarkDetector_SpawnBurstNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.5, 3)

	bd.Check(WindowStats{Spawned: 1})
	bd.Check(WindowStats{Spawned: 1})
	if hasBookmark(bd.Check(WindowStats{Spawned: 500}), BookmarkSpawnBurst) {
		t.Error("burst should not fire before three windows of history")
	}
}

func TestBookmarkDetector_Reset(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.5, 3)
	bd.Check(WindowStats{FillFraction: 0.9})

	bd.Reset()
	if !hasBookmark(bd.Check(WindowStats{FillFraction: 0.9}), BookmarkSaturated) {
		t.Error("saturated should fire again after reset")
	}
}
