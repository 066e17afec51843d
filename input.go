package cubetower

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitEllipse is an elliptical hit area inscribed in a local rectangle.
type HitEllipse struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies inside or on the ellipse.
func (e HitEllipse) Contains(x, y float64) bool {
	return insideEllipse(Vec2{x, y}, e.Width, e.Height)
}

// --- Pointer state ---

// pointerState tracks the single pointer. start/last are world coordinates;
// the screen position is kept alongside for contexts.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	screenX  float64
	screenY  float64
	hitNode  *Node
	dragging bool
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's own rectangle.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS), appending
// interactable nodes to buf. Skips Visible=false or Interactable=false
// subtrees. The root itself is never a hit target.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n != s.root {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		p, ok := n.worldToLocal(worldX, worldY)
		if ok && nodeContainsLocal(n, p.X, p.Y) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update() once per frame. Injected events
// take priority over real devices; one injected event is consumed per frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.liveInput {
		return
	}
	s.processLivePointer()
}

// processLivePointer reads the mouse, or the first active touch when the
// mouse button is up.
func (s *Scene) processLivePointer() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if !pressed {
		if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
			tx, ty := ebiten.TouchPosition(ids[0])
			sx, sy = float64(tx), float64(ty)
			pressed = true
		}
	}
	s.feedPointer(sx, sy, pressed)
}

// feedPointer converts a screen position to world space and runs the
// pointer state machine. Unprojectable positions are dropped for the frame.
func (s *Scene) feedPointer(sx, sy float64, pressed bool) {
	wx, wy, ok := screenToWorld(s.camera, sx, sy)
	if !ok {
		return
	}
	s.processPointer(wx, wy, sx, sy, pressed)
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(wx, wy, sx, sy float64, pressed bool) {
	ps := &s.pointer
	ps.screenX, ps.screenY = sx, sy

	if pressed && !ps.down {
		// Just pressed.
		target := s.hitTest(wx, wy)
		ps.down = true
		ps.startX = wx
		ps.startY = wy
		ps.lastX = wx
		ps.lastY = wy
		ps.hitNode = target
		ps.dragging = false

		s.firePointerDown(target, wx, wy, sx, sy)
	} else if !pressed && ps.down {
		// Just released.
		node := ps.hitNode
		if ps.dragging {
			s.fireDragEnd(node, wx, wy, sx, sy, wx-ps.lastX, wy-ps.lastY)
		}
		s.firePointerUp(node, wx, wy, sx, sy)

		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX = wx
		ps.lastY = wy
	} else if pressed && ps.down {
		// Held down, possibly moved.
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDragStart(ps.hitNode, wx, wy, sx, sy, dx, dy)
				}
			}
			if ps.dragging {
				s.fireDrag(ps.hitNode, wx, wy, sx, sy, wx-ps.lastX, wy-ps.lastY)
			}
		}
		ps.lastX = wx
		ps.lastY = wy
	} else {
		ps.lastX = wx
		ps.lastY = wy
	}
}

// --- Event dispatch ---

func (s *Scene) firePointerDown(node *Node, wx, wy, sx, sy float64) {
	if node == nil || node.OnPointerDown == nil {
		return
	}
	lx, ly := node.WorldToLocal(wx, wy)
	node.OnPointerDown(PointerContext{
		Node: node, ScreenX: sx, ScreenY: sy,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
	})
}

func (s *Scene) firePointerUp(node *Node, wx, wy, sx, sy float64) {
	if node == nil || node.OnPointerUp == nil {
		return
	}
	lx, ly := node.WorldToLocal(wx, wy)
	node.OnPointerUp(PointerContext{
		Node: node, ScreenX: sx, ScreenY: sy,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
	})
}

func (s *Scene) dragContext(node *Node, wx, wy, sx, sy, dx, dy float64) DragContext {
	return DragContext{
		Node: node, ScreenX: sx, ScreenY: sy,
		GlobalX: wx, GlobalY: wy,
		StartX: s.pointer.startX, StartY: s.pointer.startY,
		DeltaX: dx, DeltaY: dy,
	}
}

func (s *Scene) fireDragStart(node *Node, wx, wy, sx, sy, dx, dy float64) {
	if node == nil || node.OnDragStart == nil {
		return
	}
	node.OnDragStart(s.dragContext(node, wx, wy, sx, sy, dx, dy))
}

func (s *Scene) fireDrag(node *Node, wx, wy, sx, sy, dx, dy float64) {
	if node == nil || node.OnDrag == nil {
		return
	}
	node.OnDrag(s.dragContext(node, wx, wy, sx, sy, dx, dy))
}

func (s *Scene) fireDragEnd(node *Node, wx, wy, sx, sy, dx, dy float64) {
	if node == nil || node.OnDragEnd == nil {
		return
	}
	node.OnDragEnd(s.dragContext(node, wx, wy, sx, sy, dx, dy))
}
