package cubetower

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewCameraIsIdentity(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(123, 45)
	if !approxEqual(sx, 123, epsilon) || !approxEqual(sy, 45, epsilon) {
		t.Errorf("WorldToScreen(123,45) = (%f,%f), want identity", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 2.0
	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if d := sx1 - sx0; !approxEqual(d, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", d)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y = 0, 0
	cam.Rotation = math.Pi / 2
	// Rotate(-π/2) maps (1,0)→(0,-1), then translate to viewport center.
	sx, sy := cam.WorldToScreen(1, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 299, epsilon) {
		t.Errorf("90° rotation: WorldToScreen(1,0) = (%f,%f), want (400,299)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y = 37, -12
	cam.Zoom = 1.7
	cam.Rotation = 0.4

	points := [][2]float64{{0, 0}, {100, 200}, {-50, 75}}
	for _, p := range points {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		wx, wy, ok := cam.ScreenToWorld(sx, sy)
		if !ok {
			t.Fatalf("ScreenToWorld failed for %v", p)
		}
		if !approxEqual(wx, p[0], 1e-6) || !approxEqual(wy, p[1], 1e-6) {
			t.Errorf("roundtrip %v → (%f,%f)", p, wx, wy)
		}
	}
}

func TestScreenToWorldZeroZoom(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 0
	if _, _, ok := cam.ScreenToWorld(10, 10); ok {
		t.Error("zero zoom should not project")
	}
}

func TestScreenToWorldNilCamera(t *testing.T) {
	wx, wy, ok := screenToWorld(nil, 12, 34)
	if !ok || wx != 12 || wy != 34 {
		t.Errorf("nil camera = (%v,%v,%v), want (12,34,true)", wx, wy, ok)
	}
}
