package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1000, 800, 1000, 800)

	if cam.X != 500 || cam.Y != 400 {
		t.Errorf("expected camera at (500, 400), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}

	// At zoom 1 world and screen coincide.
	sx, sy := cam.WorldToScreen(120, 340)
	if !near(sx, 120) || !near(sy, 340) {
		t.Errorf("WorldToScreen(120, 340) = (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1000, 800, 1000, 800)
	cam.SetZoom(2.5)
	cam.Pan(130, -40)

	testCases := []struct{ sx, sy float32 }{
		{500, 400},
		{10, 10},
		{990, 790},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(1000, 800, 1000, 800)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1000, 800, 1000, 800)

	// Zooming at the center keeps the center fixed.
	cam.ZoomAt(2, 500, 400)
	wx, wy := cam.ScreenToWorld(500, 400)
	if !near(wx, 500) || !near(wy, 400) {
		t.Errorf("center moved to (%f, %f)", wx, wy)
	}

	// An off-center point stays put while the view remains inside the world.
	before, _ := cam.ScreenToWorld(600, 400)
	cam.ZoomAt(1.5, 600, 400)
	after, _ := cam.ScreenToWorld(600, 400)
	if !near(before, after) {
		t.Errorf("point under cursor moved from %f to %f", before, after)
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(1000, 800, 1000, 800)

	// At zoom 1 the whole world is visible and panning is a no-op.
	cam.Pan(300, 300)
	if cam.X != 500 || cam.Y != 400 {
		t.Errorf("pan at zoom 1 moved camera to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-5000, 5000)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(maxY, 800) {
		t.Errorf("view bounds (%f, %f)-(%f, %f) not clamped to the world", minX, minY, maxX, maxY)
	}
	if maxX > 1000 || minY < 0 {
		t.Errorf("view bounds (%f, %f)-(%f, %f) outside the world", minX, minY, maxX, maxY)
	}
}

func TestIsRectVisible(t *testing.T) {
	cam := New(1000, 800, 1000, 800)
	cam.SetZoom(4)

	if !cam.IsRectVisible(490, 390, 20, 20) {
		t.Error("center rect not visible")
	}
	if cam.IsRectVisible(0, 0, 50, 50) {
		t.Error("corner rect visible at zoom 4")
	}
}

func TestResize(t *testing.T) {
	cam := New(1000, 800, 1000, 800)
	cam.SetZoom(2)
	cam.Pan(200, 0)

	cam.Resize(500, 400, 500, 400)
	if cam.WorldW != 500 || cam.ViewportH != 400 {
		t.Errorf("dimensions not updated: %+v", cam)
	}
	if cam.X != 300 {
		t.Errorf("X = %f, want 300 (scaled from 600)", cam.X)
	}
}
