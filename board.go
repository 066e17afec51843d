package cubetower

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoDragLayer is reported when a drag starts without a layer to put
	// the proxy in.
	ErrNoDragLayer = errors.New("cubetower: drag layer not set")
	// ErrNoFactory is reported when no cube factory is available.
	ErrNoFactory = errors.New("cubetower: cube factory not set")
	// ErrInvalidConfig wraps every configuration problem.
	ErrInvalidConfig = errors.New("cubetower: invalid config")
)

// Board is the playfield: a source panel at the bottom, a tower zone above
// it, a hole next to the tower and a drag layer on top of everything.
type Board struct {
	cfg Config

	scene     *Scene
	tweener   *Tweener
	factory   Factory
	jitter    Jitter
	events    EventStore
	log       *log.Logger
	dragLayer *Node

	panel    *SourcePanel
	tower    *TowerStack
	hole     *HoleZone
	resolver *DropResolver
	env      DragEnv

	background color.RGBA
}

// Option configures a Board.
type Option func(*Board)

// WithEventStore forwards drop and tower events to store.
func WithEventStore(store EventStore) Option {
	return func(b *Board) { b.events = store }
}

// WithLogger installs l as the package logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.log = l }
}

// WithJitter replaces the seeded random source used for tower placement.
func WithJitter(j Jitter) Option {
	return func(b *Board) { b.jitter = j }
}

// WithFactory replaces the default CubeFactory.
func WithFactory(f Factory) Option {
	return func(b *Board) { b.factory = f }
}

// NewBoard builds the scene and wires every collaborator. The panel is
// populated from cfg.
func NewBoard(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	colors, err := cfg.Colors()
	if err != nil {
		return nil, err
	}

	b := &Board{cfg: cfg, background: color.RGBA{0x2b, 0x33, 0x3d, 0xff}}
	for _, opt := range opts {
		opt(b)
	}
	if b.log != nil {
		SetLogger(b.log)
	}
	if b.factory == nil {
		b.factory = NewCubeFactory(cfg.CubeSize)
	}
	if b.jitter == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		b.jitter = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	b.scene = NewScene(w, h)
	b.tweener = NewTweener()
	b.layout(w, h)

	b.resolver = NewDropResolver(b.hole, b.scene, b.scene, b.tweener, b.factory)
	b.resolver.SetEventStore(b.events)
	b.resolver.OnAccept = func(c *Cube) {
		AttachGesture(c, cfg.GestureConfig(), b.env)
	}
	b.tower.SetEventStore(b.events)

	b.env = DragEnv{
		Space:     b.scene,
		Factory:   b.factory,
		DragLayer: b.dragLayer,
		Dropper:   b.resolver,
	}
	if _, err := b.panel.Populate(cfg.BottomCubeCount, colors, b.factory, cfg.GestureConfig(), b.env); err != nil {
		return nil, fmt.Errorf("populate panel: %w", err)
	}
	logger.Info("board ready", "cubes", cfg.BottomCubeCount, "screen", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height))
	return b, nil
}

// layout creates the zones. The panel takes the bottom strip, the tower
// the left part of the rest and the hole sits on the right.
func (b *Board) layout(w, h float64) {
	root := b.scene.Root()
	size := b.cfg.CubeSize
	panelH := size * 2

	towerZone := NewContainer("tower", w*0.5, h-panelH)
	towerZone.SetPosition(w*0.05, 0)
	towerZone.Color = Color{1, 1, 1, 0.05}
	root.AddChild(towerZone)
	b.tower = NewTowerStack(towerZone, b.cfg.TowerConfig(), b.jitter, b.tweener, b.factory)

	holeZone := NewContainer("hole", w*0.3, size*1.5)
	holeZone.SetPosition(w*0.62, (h-panelH)*0.5)
	root.AddChild(holeZone)
	b.hole = NewHoleZone(holeZone, b.tower)

	panelZone := NewContainer("panel", w, panelH)
	panelZone.SetPosition(0, h-panelH)
	panelZone.Color = Color{0, 0, 0, 0.35}
	root.AddChild(panelZone)
	b.panel = NewSourcePanel(panelZone, b.scene)

	b.dragLayer = NewContainer("drag-layer", w, h)
	b.dragLayer.Interactable = false
	root.AddChild(b.dragLayer)
}

// Update advances one frame: input, the forced-end poll for sessions whose
// release was lost, then animations.
func (b *Board) Update(dt float32) {
	b.scene.Update()
	pressed := b.scene.PointerPressed()
	for _, c := range b.panel.cubes {
		if g := c.gesture; g != nil {
			g.Poll(pressed)
		}
	}
	for _, c := range b.tower.Cubes() {
		if g := c.gesture; g != nil {
			g.Poll(pressed)
		}
	}
	b.tweener.Update(dt)
}

// SetScript attaches a scripted run. Board steps in the script (stack,
// extract, settle, expect) act on this board.
func (b *Board) SetScript(r *TestRunner) {
	r.board = b
	b.scene.SetTestRunner(r)
}

// screenPoint maps a world point to the screen through the scene camera.
func (b *Board) screenPoint(world Vec2) Vec2 {
	if cam := b.scene.Camera(); cam != nil {
		x, y := cam.WorldToScreen(world.X, world.Y)
		return Vec2{x, y}
	}
	return world
}

// Config returns the validated configuration.
func (b *Board) Config() Config { return b.cfg }

// Scene returns the board's scene.
func (b *Board) Scene() *Scene { return b.scene }

// Tweener returns the board's animator.
func (b *Board) Tweener() *Tweener { return b.tweener }

// Panel returns the source panel.
func (b *Board) Panel() *SourcePanel { return b.panel }

// Tower returns the tower stack.
func (b *Board) Tower() *TowerStack { return b.tower }

// Hole returns the hole zone.
func (b *Board) Hole() *HoleZone { return b.hole }

// Resolver returns the drop resolver.
func (b *Board) Resolver() *DropResolver { return b.resolver }

// DragLayer returns the node proxies are created under.
func (b *Board) DragLayer() *Node { return b.dragLayer }
