package cubetower

// Scene is the top-level object that owns the node tree, the optional
// camera, and pointer input state.
type Scene struct {
	root   *Node
	camera *Camera

	// Input state
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []injectedPointer
	liveInput    bool
	testRunner   *TestRunner

	commands []RenderCommand

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string

	debug      bool
	debugFrame int
}

// NewScene creates a new scene with a pre-created root container of the
// given size.
func NewScene(width, height float64) *Scene {
	return &Scene{
		root:         NewContainer("root", width, height),
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetCamera sets the camera used for screen ↔ world conversion. nil removes it.
func (s *Scene) SetCamera(cam *Camera) {
	s.camera = cam
}

// Camera returns the scene camera, or nil.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetLiveInput enables polling the real mouse and touch devices through
// ebiten. Headless scenes leave it off and only consume injected events.
func (s *Scene) SetLiveInput(enabled bool) {
	s.liveInput = enabled
}

// Update processes one frame of pointer input. An attached TestRunner
// queues its next step first.
func (s *Scene) Update() {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// ScreenToLocal converts a screen point into ref's local space through the
// scene camera.
func (s *Scene) ScreenToLocal(p Vec2, ref *Node) (Vec2, bool) {
	return ScreenToLocal(p, ref, s.camera)
}

// RaycastAt returns the topmost interactable node under the screen point,
// or nil.
func (s *Scene) RaycastAt(p Vec2) *Node {
	wx, wy, ok := screenToWorld(s.camera, p.X, p.Y)
	if !ok {
		return nil
	}
	return s.hitTest(wx, wy)
}

// PointerPressed reports whether the pointer was held down as of the last
// processed input frame.
func (s *Scene) PointerPressed() bool {
	return s.pointer.down
}
