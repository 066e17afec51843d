package cubetower

import (
	"fmt"
	"math"
)

// SourcePanel is the horizontally scrolling strip the cubes are picked
// from. Its zone is the visible window; the cubes live in a content node
// that slides inside it.
type SourcePanel struct {
	zone    *Node
	content *Node
	space   Space
	cubes   []*Cube

	// Gap is the horizontal space between two cubes.
	Gap float64

	scrolling bool
	grabX     float64
	startX    float64
}

// NewSourcePanel creates a panel over zone.
func NewSourcePanel(zone *Node, space Space) *SourcePanel {
	content := NewContainer("panel-content", zone.Width, zone.Height)
	zone.AddChild(content)
	return &SourcePanel{zone: zone, content: content, space: space, Gap: 16}
}

// Zone returns the panel's visible window.
func (p *SourcePanel) Zone() *Node {
	return p.zone
}

// Content returns the node that scrolls.
func (p *SourcePanel) Content() *Node {
	return p.content
}

// Cubes returns the panel cubes in layout order.
func (p *SourcePanel) Cubes() []*Cube {
	out := make([]*Cube, len(p.cubes))
	copy(out, p.cubes)
	return out
}

// Populate replaces the panel contents with count cubes whose colors cycle
// through colors. Each cube gets a gesture session using env, with the
// panel as its scroller.
func (p *SourcePanel) Populate(count int, colors []Color, f Factory, cfg GestureConfig, env DragEnv) ([]*Cube, error) {
	p.Clear()
	if f == nil {
		return nil, ErrNoFactory
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: no cube colors", ErrInvalidConfig)
	}
	count = max(count, 1)
	env.Scroller = p

	x := p.Gap
	for i := range count {
		c := &Cube{Payload: Payload{Color: colors[i%len(colors)]}}
		n := f.Instantiate(p.content, c.Payload)
		n.Name = fmt.Sprintf("source-%d", i)
		n.SetPosition(x+n.Width/2, p.zone.Height/2)
		x += n.Width + p.Gap
		c.Node = n
		AttachGesture(c, cfg, env)
		p.cubes = append(p.cubes, c)
	}
	p.content.Width = math.Max(x, p.zone.Width)
	logger.Debug("panel populated", "count", count, "colors", len(colors))
	return p.Cubes(), nil
}

// Clear disposes every panel cube and rewinds the scroll.
func (p *SourcePanel) Clear() {
	for _, c := range p.cubes {
		c.Node.Dispose()
	}
	p.cubes = nil
	p.content.X = 0
	p.content.Width = p.zone.Width
	p.scrolling = false
}

// ScrollOffset returns the content displacement, 0 or negative.
func (p *SourcePanel) ScrollOffset() float64 {
	return p.content.X
}

// minOffset is the leftmost content position that still fills the window.
func (p *SourcePanel) minOffset() float64 {
	return math.Min(0, p.zone.Width-p.content.Width)
}

func (p *SourcePanel) localX(pt Vec2) (float64, bool) {
	if p.space == nil {
		return pt.X, true
	}
	l, ok := p.space.ScreenToLocal(pt, p.zone)
	return l.X, ok
}

// BeginScroll implements Scroller.
func (p *SourcePanel) BeginScroll(pt Vec2) {
	x, ok := p.localX(pt)
	if !ok {
		return
	}
	p.scrolling = true
	p.grabX = x
	p.startX = p.content.X
}

// Scroll implements Scroller. The content is clamped to the window.
func (p *SourcePanel) Scroll(pt Vec2) {
	if !p.scrolling {
		return
	}
	x, ok := p.localX(pt)
	if !ok {
		return
	}
	off := p.startX + x - p.grabX
	p.content.X = math.Max(p.minOffset(), math.Min(0, off))
}

// EndScroll implements Scroller.
func (p *SourcePanel) EndScroll(pt Vec2) {
	if p.scrolling {
		p.Scroll(pt)
	}
	p.scrolling = false
}
