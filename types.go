package cubetower

import (
	"fmt"
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{clamp(c.R * c.A), clamp(c.G * c.A), clamp(c.B * c.A), clamp(c.A)}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Payload is the immutable descriptor carried by a cube. Proxies copy it.
type Payload struct {
	Color Color
}

// OriginKind distinguishes where a dragged cube was picked up.
type OriginKind uint8

const (
	FromSource OriginKind = iota // the scrolling source panel
	FromTower                    // a slot in a tower
)

// Origin is the tag captured at pick-up. Index is only meaningful for
// FromTower and is -1 otherwise.
type Origin struct {
	Kind  OriginKind
	Index int
}

// SourceOrigin is the origin of every panel cube.
var SourceOrigin = Origin{Kind: FromSource, Index: -1}

// TowerOrigin returns the origin of the tower slot at index.
func TowerOrigin(index int) Origin {
	return Origin{Kind: FromTower, Index: index}
}

func (o Origin) String() string {
	if o.Kind == FromTower {
		return fmt.Sprintf("tower[%d]", o.Index)
	}
	return "source"
}

// Cube is a draggable unit: its payload plus the node currently showing it.
// tower is set while the cube rests in a TowerStack.
type Cube struct {
	Payload Payload
	Node    *Node

	tower   *TowerStack
	gesture *GestureController
}

// Tower returns the stack the cube rests in, or nil.
func (c *Cube) Tower() *TowerStack {
	return c.tower
}

// Gesture returns the gesture session attached to the cube, or nil.
func (c *Cube) Gesture() *GestureController {
	return c.gesture
}
