package cubetower

// ScreenToLocal converts a screen point into the local space of ref, going
// through cam first (nil cam means screen == world). ok is false when the
// point cannot be projected: nil or disposed ref, zero zoom, or a
// zero-scale transform somewhere on ref's parent chain.
func ScreenToLocal(p Vec2, ref *Node, cam *Camera) (Vec2, bool) {
	if ref == nil || ref.IsDisposed() {
		return Vec2{}, false
	}
	wx, wy, ok := screenToWorld(cam, p.X, p.Y)
	if !ok {
		return Vec2{}, false
	}
	return ref.worldToLocal(wx, wy)
}

// PointInEllipse reports whether the screen point p falls inside the ellipse
// inscribed in ref's rectangle. A zero-size rectangle never contains anything.
func PointInEllipse(p Vec2, ref *Node, cam *Camera) bool {
	if ref == nil || ref.Width <= 0 || ref.Height <= 0 {
		return false
	}
	local, ok := ScreenToLocal(p, ref, cam)
	if !ok {
		return false
	}
	return insideEllipse(local, ref.Width, ref.Height)
}

// insideEllipse tests a local point against the ellipse inscribed in a
// w x h rectangle whose top-left corner is the local origin.
func insideEllipse(local Vec2, w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	rx := w * 0.5
	ry := h * 0.5
	nx := (local.X - rx) / rx
	ny := (local.Y - ry) / ry
	return nx*nx+ny*ny <= 1
}

// centerOf returns the world position of the center of n's rectangle.
func centerOf(n *Node) Vec2 {
	x, y := n.LocalToWorld(n.Width/2, n.Height/2)
	return Vec2{x, y}
}
