package cubetower

import (
	"fmt"
	"math"
)

// GestureState is the phase of a pointer session on one cube.
type GestureState uint8

const (
	StateIdle GestureState = iota
	StateArmed
	StateScrolling
	StateDragging
)

var gestureStateNames = [...]string{"idle", "armed", "scrolling", "dragging"}

func (s GestureState) String() string {
	if int(s) < len(gestureStateNames) {
		return gestureStateNames[s]
	}
	return "unknown"
}

// GestureConfig holds the classification thresholds.
type GestureConfig struct {
	// MinDragDistance is the pointer travel in pixels below which no
	// classification is attempted.
	MinDragDistance float64
	// DirectionalThreshold is how much one axis must dominate the other.
	DirectionalThreshold float64
}

// DefaultGestureConfig returns the stock thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{MinDragDistance: 10, DirectionalThreshold: 1.5}
}

// Scroller receives the pointer positions of a session classified as a
// horizontal scroll.
type Scroller interface {
	BeginScroll(p Vec2)
	Scroll(p Vec2)
	EndScroll(p Vec2)
}

// Dropper resolves a finished drag.
type Dropper interface {
	Resolve(point Vec2, proxy *DragProxy, s Session) DropResult
}

// DragEnv is the set of collaborators a gesture session needs. Scroller
// may be nil for cubes that never scroll anything.
type DragEnv struct {
	Space     Space
	Factory   Factory
	DragLayer *Node
	Scroller  Scroller
	Dropper   Dropper
}

// Classify decides what a pointer delta means. It returns StateArmed when
// the delta is too short or too diagonal to tell.
func Classify(delta Vec2, cfg GestureConfig) GestureState {
	if delta.Len() < cfg.MinDragDistance {
		return StateArmed
	}
	h := math.Abs(delta.X)
	v := math.Abs(delta.Y)
	switch {
	case h > v*cfg.DirectionalThreshold:
		return StateScrolling
	case v > h*cfg.DirectionalThreshold:
		return StateDragging
	}
	return StateArmed
}

// GestureController runs the pointer session of one cube: it tells a
// horizontal scroll from a vertical pick-up, owns the drag proxy while
// dragging and hands it to the Dropper on release.
//
// Cubes resting in a tower always drag, regardless of direction.
type GestureController struct {
	cube *Cube
	cfg  GestureConfig
	env  DragEnv

	state  GestureState
	origin Origin
	down   Vec2
	last   Vec2
	offset Vec2
	proxy  *DragProxy
	hidden bool

	// LastResult is the result of the most recent drop.
	LastResult DropResult
}

// AttachGesture creates a controller for c and wires it to the node's
// pointer callbacks. Disposing the node tears the session down.
func AttachGesture(c *Cube, cfg GestureConfig, env DragEnv) *GestureController {
	g := &GestureController{cube: c, cfg: cfg, env: env}
	n := c.Node
	n.OnPointerDown = func(ctx PointerContext) { g.OnPointerDown(ctx.Screen()) }
	n.OnDragStart = func(ctx DragContext) { g.OnBeginDrag(ctx.Screen()) }
	n.OnDrag = func(ctx DragContext) { g.OnDrag(ctx.Screen()) }
	n.OnDragEnd = func(ctx DragContext) { g.OnEndDrag(ctx.Screen()) }
	n.OnPointerUp = func(ctx PointerContext) { g.OnPointerUp(ctx.Screen()) }
	n.OnDispose = g.Teardown
	c.gesture = g
	return g
}

// State returns the session phase.
func (g *GestureController) State() GestureState {
	return g.state
}

// Origin returns the origin captured at the last pointer-down.
func (g *GestureController) Origin() Origin {
	return g.origin
}

// Proxy returns the live drag proxy, or nil.
func (g *GestureController) Proxy() *DragProxy {
	if g.proxy == nil || !g.proxy.Alive() {
		return nil
	}
	return g.proxy
}

// OnPointerDown arms a new session at the screen point.
func (g *GestureController) OnPointerDown(p Vec2) {
	switch g.state {
	case StateDragging:
		g.endDrag(g.last)
	case StateScrolling:
		g.endScroll(g.last)
	}
	g.reset()

	g.origin = SourceOrigin
	if t := g.cube.tower; t != nil {
		if i := t.IndexOf(g.cube); i >= 0 {
			g.origin = TowerOrigin(i)
		}
	}

	n := g.cube.Node
	g.offset = Vec2{}
	if g.env.Space != nil {
		if local, ok := g.env.Space.ScreenToLocal(p, n); ok {
			g.offset = local.Sub(Vec2{n.PivotX, n.PivotY})
		}
	}
	g.down = p
	g.last = p
	g.state = StateArmed
	logger.Debug("pointer down", "origin", g.origin)
}

// OnBeginDrag tries to classify the session. It is a no-op unless armed,
// so it can be called again on every move until it commits.
func (g *GestureController) OnBeginDrag(p Vec2) {
	if g.state != StateArmed {
		return
	}
	g.last = p
	delta := p.Sub(g.down)
	if delta.Len() < g.cfg.MinDragDistance {
		return
	}
	if g.origin.Kind == FromTower {
		g.startDrag(p)
		return
	}
	switch Classify(delta, g.cfg) {
	case StateScrolling:
		g.state = StateScrolling
		logger.Debug("gesture classified", "as", g.state)
		if g.env.Scroller != nil {
			g.env.Scroller.BeginScroll(p)
		}
	case StateDragging:
		g.startDrag(p)
	}
}

// OnDrag follows the pointer.
func (g *GestureController) OnDrag(p Vec2) {
	switch g.state {
	case StateArmed:
		g.OnBeginDrag(p)
	case StateScrolling:
		g.last = p
		if g.env.Scroller != nil {
			g.env.Scroller.Scroll(p)
		}
	case StateDragging:
		g.last = p
		if !g.proxy.MoveTo(p) {
			logger.Debug("proxy move skipped, point not projectable")
		}
	}
}

// OnEndDrag finishes a scroll or resolves a drag at the screen point.
func (g *GestureController) OnEndDrag(p Vec2) {
	switch g.state {
	case StateScrolling:
		g.endScroll(p)
	case StateDragging:
		g.endDrag(p)
	}
	g.reset()
}

// OnPointerUp ends the session. Releases that never became a drag only
// disarm.
func (g *GestureController) OnPointerUp(p Vec2) {
	if g.state == StateIdle {
		return
	}
	g.OnEndDrag(p)
}

// Poll forces the end of a drag whose release was never delivered, using
// the last known pointer position.
func (g *GestureController) Poll(pressed bool) {
	if pressed || g.state == StateIdle {
		return
	}
	if g.state == StateDragging {
		logger.Debug("forcing drag end, release was not delivered")
	}
	g.OnEndDrag(g.last)
}

// Teardown cancels any session in progress: the source becomes hit
// testable and visible again and a live proxy is discarded.
func (g *GestureController) Teardown() {
	if g.state == StateScrolling {
		g.endScroll(g.last)
	}
	if g.state == StateDragging || g.state == StateArmed {
		g.restoreSource()
	}
	g.reset()
}

func (g *GestureController) startDrag(p Vec2) {
	if err := g.checkEnv(); err != nil {
		logger.Error("cannot start drag", "err", err)
		g.reset()
		return
	}
	offset := g.offset
	if g.origin.Kind == FromTower {
		offset = Vec2{}
	}
	g.proxy = newDragProxy(g.cube.Payload, g.env.DragLayer, offset, g.env.Factory, g.env.Space)
	src := g.cube.Node
	src.Interactable = false
	if g.origin.Kind == FromTower {
		src.Alpha = 0
		g.hidden = true
	}
	g.state = StateDragging
	g.proxy.MoveTo(p)
	logger.Debug("gesture classified", "as", g.state, "origin", g.origin)
}

func (g *GestureController) checkEnv() error {
	if g.env.DragLayer == nil || g.env.DragLayer.IsDisposed() {
		return ErrNoDragLayer
	}
	if g.env.Factory == nil {
		return ErrNoFactory
	}
	if g.env.Space == nil {
		return fmt.Errorf("%w: no coordinate space", ErrInvalidConfig)
	}
	return nil
}

func (g *GestureController) endScroll(p Vec2) {
	if g.env.Scroller != nil {
		g.env.Scroller.EndScroll(p)
	}
}

func (g *GestureController) endDrag(p Vec2) {
	g.cube.Node.Interactable = true
	proxy := g.proxy
	if proxy == nil || !proxy.Alive() || g.env.Dropper == nil {
		g.restoreSource()
		return
	}
	g.LastResult = g.env.Dropper.Resolve(p, proxy, Session{Origin: g.origin, Source: g.cube})
	g.hidden = false
	logger.Debug("drop resolved", "outcome", g.LastResult.Outcome, "origin", g.origin)
}

// restoreSource undoes what startDrag did to the source. It runs on
// disposed sources too, since teardown happens from OnDispose.
func (g *GestureController) restoreSource() {
	src := g.cube.Node
	src.Interactable = true
	if g.hidden {
		src.Alpha = 1
		g.hidden = false
	}
}

// reset returns to idle and releases a proxy nobody claimed.
func (g *GestureController) reset() {
	if g.proxy != nil {
		g.proxy.Dispose()
		g.proxy = nil
	}
	g.state = StateIdle
}
