package cubetower

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data. Screen coordinates are the raw
// pointer position; Global coordinates are world space after the camera.
type PointerContext struct {
	Node    *Node
	ScreenX float64
	ScreenY float64
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// DragContext carries drag event data.
type DragContext struct {
	Node    *Node
	ScreenX float64
	ScreenY float64
	GlobalX float64
	GlobalY float64
	StartX  float64
	StartY  float64
	DeltaX  float64
	DeltaY  float64
}

// Screen returns the pointer position in screen space.
func (c PointerContext) Screen() Vec2 { return Vec2{c.ScreenX, c.ScreenY} }

// Screen returns the pointer position in screen space.
func (c DragContext) Screen() Vec2 { return Vec2{c.ScreenX, c.ScreenY} }

// nodeIDCounter is a plain counter (no atomic, the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. Every node is an axis-aligned rectangle of
// Width x Height in its own local space; (0,0) is its top-left corner before
// the pivot is applied. Containers simply leave Color transparent.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). X/Y place the pivot in parent space.
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64
	Rotation      float64
	PivotX        float64
	PivotY        float64

	// Visibility & interaction. Interactable=false excludes the node and its
	// subtree from hit testing.
	Alpha        float64
	Visible      bool
	Interactable bool

	Color    Color
	UserData any
	HitShape HitShape

	customImage *ebiten.Image

	// Per-node callbacks (nil by default).
	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnDragStart   func(DragContext)
	OnDrag        func(DragContext)
	OnDragEnd     func(DragContext)
	// OnDispose runs once, before the node is detached and cleared.
	OnDispose func()

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
}

// NewContainer creates a node with no visual output of the given size.
// Containers are interactable so hit testing descends into them.
func NewContainer(name string, w, h float64) *Node {
	n := &Node{Name: name, Width: w, Height: h}
	nodeDefaults(n)
	n.Interactable = true
	return n
}

// NewRect creates a solid-color rectangle pivoted on its center, so X/Y is
// the center of the rectangle in parent space.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Width: w, Height: h, Color: c, PivotX: w / 2, PivotY: h / 2}
	nodeDefaults(n)
	n.Interactable = true
	return n
}

// SetCustomImage sets an image drawn stretched over the node's rectangle
// instead of a solid fill.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// CustomImage returns the user-provided image, or nil if not set.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cubetower: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("cubetower: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cubetower: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Reparent moves n under parent while keeping its world position.
func (n *Node) Reparent(parent *Node) {
	wx, wy := n.LocalToWorld(n.PivotX, n.PivotY)
	parent.AddChild(n)
	px, py := parent.WorldToLocal(wx, wy)
	n.X, n.Y = px, py
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose runs OnDispose, removes this node from its parent, marks it as
// disposed, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	if fn := n.OnDispose; fn != nil {
		n.OnDispose = nil
		fn()
	}
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.ID = 0
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.customImage = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
