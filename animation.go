package cubetower

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property selects the node field a Track animates.
type Property uint8

const (
	PropX        Property = iota // Node.X
	PropY                        // Node.Y
	PropScale                    // Node.ScaleX and Node.ScaleY together
	PropRotation                 // Node.Rotation (radians)
	PropAlpha                    // Node.Alpha
)

// Track animates one property to a target value.
type Track struct {
	Prop Property
	To   float64
	Ease ease.TweenFunc
}

// Motion is a set of tracks played together over Duration seconds.
type Motion struct {
	Duration float32
	Tracks   []Track
}

// MoveTo returns a motion to the given parent-space position.
func MoveTo(to Vec2, duration float32, fn ease.TweenFunc) Motion {
	return Motion{Duration: duration, Tracks: []Track{{PropX, to.X, fn}, {PropY, to.Y, fn}}}
}

// MoveYTo returns a motion of the Y coordinate only.
func MoveYTo(y float64, duration float32, fn ease.TweenFunc) Motion {
	return Motion{Duration: duration, Tracks: []Track{{PropY, y, fn}}}
}

// ScaleTo returns a uniform scale motion.
func ScaleTo(s float64, duration float32, fn ease.TweenFunc) Motion {
	return Motion{Duration: duration, Tracks: []Track{{PropScale, s, fn}}}
}

// RotateTo returns a rotation motion.
func RotateTo(r float64, duration float32, fn ease.TweenFunc) Motion {
	return Motion{Duration: duration, Tracks: []Track{{PropRotation, r, fn}}}
}

// FadeTo returns an alpha motion.
func FadeTo(a float64, duration float32, fn ease.TweenFunc) Motion {
	return Motion{Duration: duration, Tracks: []Track{{PropAlpha, a, fn}}}
}

// Join merges motions into one that plays all their tracks concurrently.
// The joined duration is the longest of the parts.
func Join(parts ...Motion) Motion {
	var m Motion
	for _, p := range parts {
		if p.Duration > m.Duration {
			m.Duration = p.Duration
		}
		m.Tracks = append(m.Tracks, p.Tracks...)
	}
	return m
}

// Animator plays motions on nodes. It is fire-and-forget: onComplete (which
// may be nil) runs exactly once on the update thread after the last step
// finishes, the node is disposed, or the animation is superseded.
type Animator interface {
	Animate(target *Node, onComplete func(), steps ...Motion)
}

// TweenGroup plays a sequence of motions on a node, one step at a time.
// Steps are bound lazily so each one starts from the values the previous
// step left behind. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	target     *Node
	steps      []Motion
	step       int
	tweens     []*gween.Tween
	props      []Property
	onComplete func()
	Done       bool
}

func newTweenGroup(target *Node, steps []Motion, onComplete func()) *TweenGroup {
	g := &TweenGroup{target: target, steps: steps, onComplete: onComplete}
	if target == nil || target.IsDisposed() || len(steps) == 0 {
		g.Done = true
		return g
	}
	g.bind()
	return g
}

// bind creates the gween tweens for the current step.
func (g *TweenGroup) bind() {
	m := g.steps[g.step]
	g.tweens = g.tweens[:0]
	g.props = g.props[:0]
	for _, tr := range m.Tracks {
		fn := tr.Ease
		if fn == nil {
			fn = ease.Linear
		}
		from := readProp(g.target, tr.Prop)
		g.tweens = append(g.tweens, gween.New(float32(from), float32(tr.To), m.Duration, fn))
		g.props = append(g.props, tr.Prop)
	}
}

// Update advances the current step by dt seconds and writes values to the
// target. Leftover time does not carry into the next step.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		writeProp(g.target, g.props[i], float64(val))
		if !finished {
			allDone = false
		}
	}
	if !allDone {
		return
	}
	g.step++
	if g.step >= len(g.steps) {
		g.Done = true
		return
	}
	g.bind()
}

func readProp(n *Node, p Property) float64 {
	switch p {
	case PropX:
		return n.X
	case PropY:
		return n.Y
	case PropScale:
		return n.ScaleX
	case PropRotation:
		return n.Rotation
	case PropAlpha:
		return n.Alpha
	}
	return 0
}

func writeProp(n *Node, p Property, v float64) {
	switch p {
	case PropX:
		n.X = v
	case PropY:
		n.Y = v
	case PropScale:
		n.ScaleX, n.ScaleY = v, v
	case PropRotation:
		n.Rotation = v
	case PropAlpha:
		n.Alpha = v
	}
}

// Tweener is the frame-driven Animator. Call Update(dt) once per frame.
// Starting a new animation on a node supersedes any animation already
// running on it; the superseded completion still fires.
type Tweener struct {
	active []*TweenGroup
}

// NewTweener creates an empty tweener.
func NewTweener() *Tweener {
	return &Tweener{}
}

// Animate implements Animator.
func (t *Tweener) Animate(target *Node, onComplete func(), steps ...Motion) {
	if target == nil || target.IsDisposed() {
		logger.Warn("animation requested on destroyed node, skipping")
	} else {
		for _, g := range t.active {
			if g.target == target && !g.Done {
				g.Done = true
			}
		}
	}
	t.active = append(t.active, newTweenGroup(target, steps, onComplete))
}

// Update advances every running group by dt seconds and fires completions
// of the groups that finished. Completions may start new animations.
func (t *Tweener) Update(dt float32) {
	groups := t.active
	t.active = nil

	kept := groups[:0]
	var finished []*TweenGroup
	for _, g := range groups {
		g.Update(dt)
		if g.Done {
			finished = append(finished, g)
			continue
		}
		kept = append(kept, g)
	}
	t.active = kept

	// Animations started from completions append to t.active.
	for _, g := range finished {
		if fn := g.onComplete; fn != nil {
			g.onComplete = nil
			fn()
		}
	}
}

// Running returns the number of groups not yet completed.
func (t *Tweener) Running() int {
	return len(t.active)
}

// Busy reports whether any animation targets n.
func (t *Tweener) Busy(n *Node) bool {
	for _, g := range t.active {
		if g.target == n && !g.Done {
			return true
		}
	}
	return false
}
