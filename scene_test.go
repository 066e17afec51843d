package cubetower

import "testing"

func TestNewScene(t *testing.T) {
	s := NewScene(320, 240)
	if s.Root() == nil || s.Root().Name != "root" {
		t.Fatal("scene should own a root container")
	}
	if s.Root().Width != 320 || s.Root().Height != 240 {
		t.Errorf("root size = %vx%v", s.Root().Width, s.Root().Height)
	}
	if s.Camera() != nil {
		t.Error("new scene should have no camera")
	}
	if s.dragDeadZone != defaultDragDeadZone {
		t.Errorf("dead zone = %v", s.dragDeadZone)
	}
}

func TestSceneScreenToLocal(t *testing.T) {
	s := NewScene(400, 400)
	n := NewContainer("n", 100, 100)
	n.SetPosition(50, 60)
	s.Root().AddChild(n)

	p, ok := s.ScreenToLocal(Vec2{60, 80}, n)
	if !ok {
		t.Fatal("conversion failed")
	}
	assertNear(t, "X", p.X, 10)
	assertNear(t, "Y", p.Y, 20)

	cam := NewCamera(Rect{Width: 400, Height: 400})
	cam.Zoom = 0
	s.SetCamera(cam)
	if _, ok := s.ScreenToLocal(Vec2{60, 80}, n); ok {
		t.Error("zero zoom camera cannot project")
	}
	if s.RaycastAt(Vec2{60, 80}) != nil {
		t.Error("raycast through a degenerate camera should miss")
	}
}

func TestSceneUpdateWithoutLiveInput(t *testing.T) {
	s := NewScene(100, 100)
	// No injections and live input off: nothing to process, nothing to panic.
	for range 3 {
		s.Update()
	}
	if s.PointerPressed() {
		t.Error("pointer should stay released")
	}
}

func TestSceneDebugToggle(t *testing.T) {
	s := NewScene(100, 100)
	s.SetDebug(true)
	s.debugLog(debugStats{commandCount: 1})
	s.debugLog(debugStats{commandCount: 1})
	if s.debugFrame != 2 {
		t.Errorf("debugFrame = %d, want 2", s.debugFrame)
	}
	s.SetDebug(false)
	s.debugLog(debugStats{})
	if s.debugFrame != 0 {
		t.Error("disabled debug should not count frames")
	}
	s.SetDebug(true)
	s.Root().AddChild(NewRect("leaf", 1, 1, ColorWhite))
	if len(s.Commands(nil)) != 1 {
		t.Error("debug mode must not change traversal output")
	}
}
