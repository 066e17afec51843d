package cubetower

// DragProxy is the transient ghost that follows the pointer during a drag.
// It is owned by the GestureController that created it and is released
// exactly once: either disposed, or handed over with Detach when it becomes
// a persistent cube.
type DragProxy struct {
	payload Payload
	node    *Node
	layer   *Node
	offset  Vec2
	factory Factory
	space   Space
	gone    bool
}

// Space converts screen points into node-local coordinates.
type Space interface {
	ScreenToLocal(p Vec2, ref *Node) (Vec2, bool)
}

// newDragProxy instantiates the ghost under layer as its topmost child with
// hit testing disabled.
func newDragProxy(p Payload, layer *Node, offset Vec2, f Factory, space Space) *DragProxy {
	d := &DragProxy{
		payload: p,
		node:    f.Instantiate(layer, p),
		layer:   layer,
		offset:  offset,
		factory: f,
		space:   space,
	}
	d.SetHitTestable(false)
	return d
}

// Payload returns the payload copy carried by the proxy.
func (d *DragProxy) Payload() Payload {
	return d.payload
}

// Node returns the proxy's visual, or nil once released.
func (d *DragProxy) Node() *Node {
	if d.gone {
		return nil
	}
	return d.node
}

// Offset returns the pointer-relative grab offset.
func (d *DragProxy) Offset() Vec2 {
	return d.offset
}

// Alive reports whether the proxy has not been released yet.
func (d *DragProxy) Alive() bool {
	return !d.gone && !d.node.IsDisposed()
}

// MoveTo places the proxy so the grab point sits under the screen point.
// Returns false and leaves the proxy in place when the point cannot be
// converted into drag-layer space.
func (d *DragProxy) MoveTo(screen Vec2) bool {
	if !d.Alive() {
		return false
	}
	local, ok := d.space.ScreenToLocal(screen, d.layer)
	if !ok {
		return false
	}
	p := local.Sub(d.offset)
	d.node.SetPosition(p.X, p.Y)
	return true
}

// SetHitTestable toggles whether the proxy blocks hit testing.
func (d *DragProxy) SetHitTestable(on bool) {
	if d.Alive() {
		d.node.Interactable = on
	}
}

// Dispose destroys the visual. Safe to call more than once.
func (d *DragProxy) Dispose() {
	if d.gone {
		return
	}
	d.gone = true
	d.factory.Destroy(d.node)
}

// Detach releases ownership of the visual without destroying it and
// returns it. Used when the proxy becomes a persistent cube or when a
// fire-and-forget animation takes over its lifetime.
func (d *DragProxy) Detach() *Node {
	if d.gone {
		return nil
	}
	d.gone = true
	return d.node
}
