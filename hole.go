package cubetower

// HoleZone is an oval drop target inscribed in a zone node. It may be bound
// to one tower so dropping a tower cube on it extracts that cube by index.
type HoleZone struct {
	zone  *Node
	tower *TowerStack
}

// NewHoleZone creates a hole over zone, optionally bound to tower.
func NewHoleZone(zone *Node, tower *TowerStack) *HoleZone {
	if zone != nil && zone.HitShape == nil {
		zone.HitShape = HitEllipse{Width: zone.Width, Height: zone.Height}
	}
	return &HoleZone{zone: zone, tower: tower}
}

// Zone returns the hole's zone node.
func (h *HoleZone) Zone() *Node {
	return h.zone
}

// Bind attaches the hole to tower; nil unbinds it.
func (h *HoleZone) Bind(tower *TowerStack) {
	h.tower = tower
}

// PointInEllipse reports whether the screen point lies in the hole's oval,
// converting through space (usually the Scene and its camera).
func (h *HoleZone) PointInEllipse(screen Vec2, space Space) bool {
	if h == nil || h.zone == nil || space == nil {
		return false
	}
	local, ok := space.ScreenToLocal(screen, h.zone)
	if !ok {
		return false
	}
	return insideEllipse(local, h.zone.Width, h.zone.Height)
}

// RequestExtract removes the cube at index from the bound tower. Returns
// false when the hole is unbound or the index is invalid.
func (h *HoleZone) RequestExtract(index int) (Removal, bool) {
	if h == nil || h.tower == nil {
		return Removal{}, false
	}
	return h.tower.RemoveAt(index)
}

// Center returns the world position of the hole's center.
func (h *HoleZone) Center() Vec2 {
	return centerOf(h.zone)
}
