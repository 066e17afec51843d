package cubetower

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	intoHoleTime  = 0.4
	disappearTime = 0.3
)

// Raycaster returns the topmost hit-testable node under a screen point.
type Raycaster interface {
	RaycastAt(p Vec2) *Node
}

// Outcome is the result of resolving a drop.
type Outcome uint8

const (
	OutcomeRejected Outcome = iota
	OutcomeStacked
	OutcomeReturned
	OutcomeIntoHole
)

var outcomeNames = [...]string{"rejected", "stacked", "returned", "into-hole"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Session is what a gesture hands to the resolver about the drag it ends.
type Session struct {
	Origin Origin
	Source *Cube
}

// DropResult reports what Resolve did. Stacked is the new tower cube for
// OutcomeStacked; Removal is filled when a tower cube was extracted.
type DropResult struct {
	Outcome   Outcome
	Stacked   *Cube
	Removal   Removal
	Extracted bool
}

// DropResolver decides what happens to a released proxy. Checks run in a
// fixed order: the hole ellipse, then the hit-test target, then the tower
// that target belongs to.
type DropResolver struct {
	hole    *HoleZone
	ray     Raycaster
	space   Space
	anim    Animator
	factory Factory
	events  *eventSink
	last    DropResult

	// OnAccept is called with every cube a tower accepted, so the owner
	// can attach a new gesture session to it.
	OnAccept func(c *Cube)
}

// NewDropResolver creates a resolver. hole may be nil.
func NewDropResolver(hole *HoleZone, ray Raycaster, space Space, anim Animator, factory Factory) *DropResolver {
	return &DropResolver{
		hole:    hole,
		ray:     ray,
		space:   space,
		anim:    anim,
		factory: factory,
	}
}

// SetEventStore routes drop outcomes to store.
func (r *DropResolver) SetEventStore(store EventStore) {
	r.events = &eventSink{store: store}
}

// Resolve consumes proxy: on return it is either disposed, animating out
// of existence, or adopted by a tower.
func (r *DropResolver) Resolve(point Vec2, proxy *DragProxy, s Session) DropResult {
	r.last = r.resolve(point, proxy, s)
	return r.last
}

// Last returns the result of the most recent Resolve.
func (r *DropResolver) Last() DropResult {
	return r.last
}

func (r *DropResolver) resolve(point Vec2, proxy *DragProxy, s Session) DropResult {
	if r.hole.PointInEllipse(point, r.space) {
		return r.intoHole(proxy, s)
	}

	target := r.raycast(point)
	tower := towerOf(target)
	if tower == nil {
		return r.refuse(proxy, s)
	}
	if s.Origin.Kind == FromTower {
		r.showSource(s)
		r.disappear(proxy.Detach())
		r.events.emit(Event{Type: EventReturned, Payload: proxy.Payload(), Index: s.Origin.Index, Count: tower.Count()})
		logger.Debug("drop returned to tower", "origin", s.Origin)
		return DropResult{Outcome: OutcomeReturned}
	}

	node := proxy.Node()
	if node == nil {
		return DropResult{Outcome: OutcomeRejected}
	}
	cube := &Cube{Payload: proxy.Payload(), Node: node}
	if !tower.AddCube(cube) {
		r.disappear(proxy.Detach())
		r.events.emit(Event{Type: EventRejected, Payload: proxy.Payload(), Index: -1, Count: tower.Count()})
		logger.Debug("drop rejected, tower full", "count", tower.Count())
		return DropResult{Outcome: OutcomeRejected}
	}
	proxy.SetHitTestable(true)
	proxy.Detach()
	if r.OnAccept != nil {
		r.OnAccept(cube)
	}
	return DropResult{Outcome: OutcomeStacked, Stacked: cube}
}

func (r *DropResolver) raycast(p Vec2) *Node {
	if r.ray == nil {
		return nil
	}
	return r.ray.RaycastAt(p)
}

// intoHole swallows the proxy and, for tower drags, extracts the slot the
// drag started from.
func (r *DropResolver) intoHole(proxy *DragProxy, s Session) DropResult {
	res := DropResult{Outcome: OutcomeIntoHole}
	if s.Origin.Kind == FromTower {
		if rm, ok := r.hole.RequestExtract(s.Origin.Index); ok {
			res.Removal = rm
			res.Extracted = true
			r.animateIntoHole(rm.Cube.Node)
		} else {
			r.showSource(s)
		}
	}
	r.animateIntoHole(proxy.Detach())
	r.events.emit(Event{Type: EventIntoHole, Payload: proxy.Payload(), Index: s.Origin.Index, Count: -1})
	logger.Debug("drop into hole", "origin", s.Origin, "extracted", res.Extracted)
	return res
}

func (r *DropResolver) refuse(proxy *DragProxy, s Session) DropResult {
	r.disappear(proxy.Detach())
	if s.Origin.Kind == FromTower {
		r.showSource(s)
		r.events.emit(Event{Type: EventReturned, Payload: proxy.Payload(), Index: s.Origin.Index, Count: -1})
		logger.Debug("drop missed, returning", "origin", s.Origin)
		return DropResult{Outcome: OutcomeReturned}
	}
	r.events.emit(Event{Type: EventRejected, Payload: proxy.Payload(), Index: -1, Count: -1})
	logger.Debug("drop rejected, no tower under pointer")
	return DropResult{Outcome: OutcomeRejected}
}

func (r *DropResolver) showSource(s Session) {
	if s.Source != nil && s.Source.Node != nil && !s.Source.Node.IsDisposed() {
		s.Source.Node.Alpha = 1
	}
}

func (r *DropResolver) destroy(n *Node) {
	if r.factory != nil {
		r.factory.Destroy(n)
		return
	}
	n.Dispose()
}

// disappear shrinks n to nothing and destroys it.
func (r *DropResolver) disappear(n *Node) {
	if n == nil || n.IsDisposed() {
		return
	}
	n.Interactable = false
	if r.anim == nil {
		r.destroy(n)
		return
	}
	r.anim.Animate(n, func() { r.destroy(n) }, ScaleTo(0, disappearTime, ease.InBack))
}

// animateIntoHole moves n to the hole center while shrinking and spinning
// it, then destroys it. Falls back to disappear when the hole center
// cannot be expressed in n's parent space.
func (r *DropResolver) animateIntoHole(n *Node) {
	if n == nil || n.IsDisposed() {
		return
	}
	if r.anim == nil || n.Parent == nil {
		r.disappear(n)
		return
	}
	c := r.hole.Center()
	to, ok := n.Parent.worldToLocal(c.X, c.Y)
	if !ok {
		r.disappear(n)
		return
	}
	n.Interactable = false
	r.anim.Animate(n, func() { r.destroy(n) }, Join(
		MoveTo(to, intoHoleTime, ease.InQuad),
		ScaleTo(0, intoHoleTime, ease.InBack),
		RotateTo(n.Rotation+2*math.Pi, intoHoleTime, ease.InQuad),
	))
}

// towerOf walks up from n to the first node carrying a TowerStack.
func towerOf(n *Node) *TowerStack {
	for ; n != nil; n = n.Parent {
		if t, ok := n.UserData.(*TowerStack); ok {
			return t
		}
	}
	return nil
}
