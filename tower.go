package cubetower

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Jitter is the random source used for horizontal placement. *rand.Rand
// from math/rand/v2 satisfies it.
type Jitter interface {
	Float64() float64
}

// TowerConfig holds the placement policy of a tower.
type TowerConfig struct {
	// BottomOffset is the gap below the first cube and the headroom kept
	// at the top of the zone.
	BottomOffset float64
	// HorizontalOffsetFactor scales the maximum jitter relative to the
	// cube width.
	HorizontalOffsetFactor float64
}

// DefaultTowerConfig returns the stock placement policy.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{BottomOffset: 20, HorizontalOffsetFactor: 0.3}
}

const (
	bounceHeight   = 10
	bounceUpTime   = 0.5
	bounceDownTime = 0.2
	settleTime     = 0.25
	fallTime       = 0.5
)

// Removal describes the outcome of RemoveAt: the extracted cube and the
// cubes above it that lost support and were evicted.
type Removal struct {
	Cube      *Cube
	Collapsed []*Cube
}

// TowerStack is an ordered stack of cubes resting in a zone node. Index 0
// is the bottom. Rest positions are kept in tower space: X is the cube
// center in zone-local coordinates, Y is the height of the cube's bottom
// edge above the zone's bottom edge.
//
// Mutations are applied synchronously; only the visual settling runs
// through the Animator afterwards.
type TowerStack struct {
	zone    *Node
	cfg     TowerConfig
	jitter  Jitter
	anim    Animator
	factory Factory
	events  *eventSink

	cubes []*Cube
	rest  []Vec2
}

// NewTowerStack binds a stack to zone. The zone's UserData is set to the
// stack so hit tests landing on the zone or a stacked cube resolve to it.
func NewTowerStack(zone *Node, cfg TowerConfig, jitter Jitter, anim Animator, factory Factory) *TowerStack {
	t := &TowerStack{
		zone:    zone,
		cfg:     cfg,
		jitter:  jitter,
		anim:    anim,
		factory: factory,
	}
	zone.UserData = t
	return t
}

// SetEventStore routes the stack's events to store.
func (t *TowerStack) SetEventStore(store EventStore) {
	t.events = &eventSink{store: store}
}

// Zone returns the zone node the stack lives in.
func (t *TowerStack) Zone() *Node {
	return t.zone
}

// Count returns the number of stacked cubes.
func (t *TowerStack) Count() int {
	return len(t.cubes)
}

// Cubes returns a copy of the stack, bottom first.
func (t *TowerStack) Cubes() []*Cube {
	out := make([]*Cube, len(t.cubes))
	copy(out, t.cubes)
	return out
}

// At returns the cube at index, or nil.
func (t *TowerStack) At(index int) *Cube {
	if index < 0 || index >= len(t.cubes) {
		return nil
	}
	return t.cubes[index]
}

// RestingPosition returns the tower-space rest position of the slot.
func (t *TowerStack) RestingPosition(index int) (Vec2, bool) {
	if index < 0 || index >= len(t.rest) {
		return Vec2{}, false
	}
	return t.rest[index], true
}

// usableHeight is the zone height minus the top headroom.
func (t *TowerStack) usableHeight() float64 {
	return t.zone.Height - t.cfg.BottomOffset
}

// CanAccept reports whether one more cube of the given height fits. An
// empty tower always accepts. Evaluated against the zone's current height.
func (t *TowerStack) CanAccept(height float64) bool {
	n := len(t.cubes)
	if n == 0 {
		return true
	}
	return t.cfg.BottomOffset+float64(n+1)*height <= t.usableHeight()
}

// IndexOf returns the slot of c, or -1.
func (t *TowerStack) IndexOf(c *Cube) int {
	for i, sc := range t.cubes {
		if sc == c {
			return i
		}
	}
	return -1
}

// AddCube stacks c on top. The first cube keeps the horizontal position it
// was dropped at; later cubes are jittered relative to the cube below.
// Returns false without mutating anything when the tower is full.
func (t *TowerStack) AddCube(c *Cube) bool {
	if c == nil || c.Node == nil || c.Node.IsDisposed() {
		return false
	}
	n := c.Node
	if !t.CanAccept(n.Height) {
		logger.Debug("tower full", "count", len(t.cubes))
		return false
	}

	index := len(t.cubes)
	var rest Vec2
	if index == 0 {
		center := centerOf(n)
		lx, _ := t.zone.WorldToLocal(center.X, center.Y)
		rest = Vec2{X: lx, Y: t.cfg.BottomOffset}
	} else {
		below := t.rest[index-1]
		rest = Vec2{
			X: below.X + t.jitterOffset(n.Width),
			Y: t.cfg.BottomOffset + float64(index)*n.Height,
		}
	}

	t.zone.AddChild(n)
	n.ScaleX, n.ScaleY = 1, 1
	n.Rotation = 0
	n.Alpha = 1
	pos := t.nodePosition(rest, n)
	n.SetPosition(pos.X, pos.Y)

	t.cubes = append(t.cubes, c)
	t.rest = append(t.rest, rest)
	c.tower = t

	if t.anim != nil {
		t.anim.Animate(n, nil,
			MoveYTo(pos.Y-bounceHeight, bounceUpTime, ease.OutBack),
			MoveYTo(pos.Y, bounceDownTime, ease.InOutQuad),
		)
	}
	t.events.emit(Event{Type: EventStacked, Payload: c.Payload, Index: index, Count: len(t.cubes)})
	logger.Debug("cube stacked", "index", index, "x", rest.X)
	return true
}

// jitterOffset returns a random horizontal offset in [-max, +max] where
// max = HorizontalOffsetFactor * width.
func (t *TowerStack) jitterOffset(width float64) float64 {
	maxOff := t.cfg.HorizontalOffsetFactor * width
	if maxOff <= 0 || t.jitter == nil {
		return 0
	}
	off := (t.jitter.Float64()*2 - 1) * maxOff
	return math.Max(-maxOff, math.Min(maxOff, off))
}

// nodePosition maps a tower-space rest position to the node's pivot
// position (its center) in zone-local coordinates.
func (t *TowerStack) nodePosition(rest Vec2, n *Node) Vec2 {
	return Vec2{X: rest.X, Y: t.zone.Height - rest.Y - n.Height/2}
}

// touching reports whether two stacked cubes overlap horizontally.
func touching(upper, lower, width float64) bool {
	return math.Abs(upper-lower) < width
}

// RemoveAt extracts the cube at index. Cubes above shift down one slot;
// the first of them that no longer touches its new lower neighbor is
// evicted together with everything above it. Returns false without
// mutating anything for an out-of-range index.
//
// The extracted cube is detached from the stack but left alive for the
// caller to animate; evicted cubes fall away and are destroyed.
func (t *TowerStack) RemoveAt(index int) (Removal, bool) {
	if index < 0 || index >= len(t.cubes) {
		return Removal{}, false
	}

	removed := t.cubes[index]
	t.cubes = append(t.cubes[:index], t.cubes[index+1:]...)
	t.rest = append(t.rest[:index], t.rest[index+1:]...)
	removed.tower = nil

	breakAt := -1
	for j := index; j < len(t.cubes); j++ {
		if j == 0 {
			continue // the bottom cube rests on the zone floor
		}
		if !touching(t.rest[j].X, t.rest[j-1].X, t.cubes[j].Node.Width) {
			breakAt = j
			break
		}
	}

	var collapsed []*Cube
	if breakAt >= 0 {
		collapsed = make([]*Cube, len(t.cubes)-breakAt)
		copy(collapsed, t.cubes[breakAt:])
		for j := breakAt; j < len(t.cubes); j++ {
			t.cubes[j] = nil
		}
		t.cubes = t.cubes[:breakAt]
		t.rest = t.rest[:breakAt]
	}

	for j := index; j < len(t.cubes); j++ {
		n := t.cubes[j].Node
		t.rest[j].Y = t.cfg.BottomOffset + float64(j)*n.Height
		pos := t.nodePosition(t.rest[j], n)
		if t.anim != nil {
			t.anim.Animate(n, nil, MoveTo(pos, settleTime, ease.OutQuad))
		} else {
			n.SetPosition(pos.X, pos.Y)
		}
	}

	t.events.emit(Event{Type: EventExtracted, Payload: removed.Payload, Index: index, Count: len(t.cubes)})
	for k, c := range collapsed {
		c.tower = nil
		t.fallAway(c)
		t.events.emit(Event{Type: EventFellAway, Payload: c.Payload, Index: breakAt + k, Count: len(t.cubes)})
	}
	logger.Debug("cube removed", "index", index, "collapsed", len(collapsed), "count", len(t.cubes))
	return Removal{Cube: removed, Collapsed: collapsed}, true
}

// fallAway drops an evicted cube below the zone while fading it, then
// destroys it.
func (t *TowerStack) fallAway(c *Cube) {
	n := c.Node
	destroy := func() {
		if t.factory != nil {
			t.factory.Destroy(n)
		} else {
			n.Dispose()
		}
	}
	if t.anim == nil {
		destroy()
		return
	}
	n.Interactable = false
	dir := 1.0
	if len(t.rest) > 0 && n.X < t.rest[len(t.rest)-1].X {
		dir = -1
	}
	t.anim.Animate(n, destroy, Join(
		MoveTo(Vec2{X: n.X + dir*n.Width, Y: t.zone.Height + n.Height}, fallTime, ease.InQuad),
		RotateTo(dir*math.Pi/2, fallTime, ease.InQuad),
		FadeTo(0, fallTime, ease.Linear),
	))
}
