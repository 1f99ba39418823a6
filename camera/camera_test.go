package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// Should be centered on the canvas
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestIdentityAtUnitZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// At zoom 1 the screen is the canvas
	for _, p := range []struct{ x, y float32 }{{0, 0}, {100, 200}, {1279, 719}} {
		wx, wy := cam.ScreenToWorld(p.x, p.y)
		if math.Abs(float64(wx-p.x)) > 0.01 || math.Abs(float64(wy-p.y)) > 0.01 {
			t.Errorf("ScreenToWorld(%v, %v) = (%v, %v), want identity", p.x, p.y, wx, wy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2.5)
	cam.Pan(100, -50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom clamped to 1.0, got %f", cam.Zoom)
	}

	cam.SetZoom(20.0) // Above max
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestPanStaysOnCanvas(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// At zoom 1 the camera cannot move at all
	cam.Pan(500, 500)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected pan ignored at zoom 1, got (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-100000, 100000)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX < 0 || minY < 0 || maxX > 1280 || maxY > 720 {
		t.Errorf("view left the canvas: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
	if minX != 0 || maxY != 720 {
		t.Errorf("expected view pinned to bottom-left, got (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestZoomOutRecenters(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(4)
	cam.Pan(10000, 0)

	cam.SetZoom(1)
	if cam.X != 640 {
		t.Errorf("expected camera re-centered after zoom out, got X=%f", cam.X)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)

	// Visible range: (320, 180) to (960, 540)
	if !cam.IsVisible(640, 360, 4) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(1200, 700, 4) {
		t.Error("corner cell should not be visible at 2x")
	}
	if !cam.IsVisible(317, 180, 4) {
		t.Error("cell overlapping the left edge should be visible")
	}
}

func TestResizeFollowsViewport(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(3)
	cam.Pan(1000, 1000)

	cam.Resize(800, 600)
	if cam.WorldW != 800 || cam.WorldH != 600 {
		t.Errorf("canvas should follow viewport, got %fx%f", cam.WorldW, cam.WorldH)
	}
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if maxX > 800 || maxY > 600 {
		t.Errorf("view left the canvas after resize: max (%f,%f)", maxX, maxY)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2.5)
	cam.Pan(200, 200)

	cam.Reset()

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected position (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
