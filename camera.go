package cubetower

import "math"

// Camera controls the view into the scene: position, zoom, rotation, and viewport.
// A scene without a camera maps screen coordinates to world coordinates 1:1.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
}

// NewCamera creates a camera that shows the world rectangle covered by
// viewport without zoom, i.e. world == screen until the camera is moved.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.X + viewport.Width/2,
		Y:        viewport.Y + viewport.Height/2,
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// viewMatrix computes the world → screen matrix.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) viewMatrix() [6]float64 {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	return [6]float64{a, cc, b, d, tx, ty}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.viewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
// ok is false when the camera cannot project (zero zoom).
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64, ok bool) {
	inv, ok := invertAffine(c.viewMatrix())
	if !ok {
		return 0, 0, false
	}
	wx, wy = transformPoint(inv, sx, sy)
	return wx, wy, true
}

// screenToWorld converts screen coordinates to world coordinates using cam,
// or identity if cam is nil.
func screenToWorld(cam *Camera, sx, sy float64) (float64, float64, bool) {
	if cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy, true
}
