package cubetower

import (
	"errors"
	"testing"
)

var testColors = []Color{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}

// newTestPanel returns a 400x80 panel at the bottom of a 400x380 scene.
func newTestPanel() (*Scene, *SourcePanel) {
	s := NewScene(400, 380)
	zone := NewContainer("panel", 400, 80)
	zone.SetPosition(0, 300)
	s.Root().AddChild(zone)
	return s, NewSourcePanel(zone, s)
}

func TestPanelPopulate(t *testing.T) {
	s, p := newTestPanel()
	env := DragEnv{Space: s, Factory: NewCubeFactory(testCube), DragLayer: s.Root()}

	cubes, err := p.Populate(10, testColors, env.Factory, DefaultGestureConfig(), env)
	if err != nil {
		t.Fatal(err)
	}
	if len(cubes) != 10 || len(p.Cubes()) != 10 {
		t.Fatalf("got %d cubes, want 10", len(cubes))
	}
	for i, c := range cubes {
		if c.Payload.Color != testColors[i%len(testColors)] {
			t.Errorf("cube %d color = %v", i, c.Payload.Color)
		}
		if c.Node.Parent != p.Content() {
			t.Errorf("cube %d not in the content node", i)
		}
		assertNear(t, "X", c.Node.X, 16+float64(i)*56+20)
		assertNear(t, "Y", c.Node.Y, 40)
		if c.Gesture() == nil {
			t.Errorf("cube %d has no gesture", i)
		}
		if c.Tower() != nil {
			t.Errorf("cube %d should not be in a tower", i)
		}
	}
	assertNear(t, "content width", p.Content().Width, 16+10*56)
}

func TestPanelPopulateReplaces(t *testing.T) {
	s, p := newTestPanel()
	f := NewCubeFactory(testCube)
	env := DragEnv{Space: s, Factory: f, DragLayer: s.Root()}
	old, _ := p.Populate(3, testColors, f, DefaultGestureConfig(), env)
	if _, err := p.Populate(2, testColors, f, DefaultGestureConfig(), env); err != nil {
		t.Fatal(err)
	}
	for _, c := range old {
		if !c.Node.IsDisposed() {
			t.Error("old cubes should be disposed")
		}
	}
	if p.Content().NumChildren() != 2 {
		t.Errorf("content has %d children, want 2", p.Content().NumChildren())
	}
}

func TestPanelPopulateErrors(t *testing.T) {
	s, p := newTestPanel()
	f := NewCubeFactory(testCube)
	env := DragEnv{Space: s, Factory: f, DragLayer: s.Root()}

	if _, err := p.Populate(3, testColors, nil, DefaultGestureConfig(), env); !errors.Is(err, ErrNoFactory) {
		t.Errorf("nil factory: err = %v", err)
	}
	if _, err := p.Populate(3, nil, f, DefaultGestureConfig(), env); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("no colors: err = %v", err)
	}
	cubes, err := p.Populate(0, testColors, f, DefaultGestureConfig(), env)
	if err != nil || len(cubes) != 1 {
		t.Errorf("count 0 should still produce one cube, got %d, %v", len(cubes), err)
	}
}

func TestPanelScrollClamp(t *testing.T) {
	s, p := newTestPanel()
	f := NewCubeFactory(testCube)
	env := DragEnv{Space: s, Factory: f, DragLayer: s.Root()}
	p.Populate(10, testColors, f, DefaultGestureConfig(), env)
	// content 576 wide in a 400 window
	minOff := 400.0 - 576

	p.Scroll(Vec2{0, 340})
	if p.ScrollOffset() != 0 {
		t.Fatal("scroll without begin should be ignored")
	}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"left", 200, -100},
		{"past the end", 0, minOff},
		{"past the start", 600, 0},
	}
	p.BeginScroll(Vec2{300, 340})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Scroll(Vec2{tt.x, 340})
			assertNear(t, "offset", p.ScrollOffset(), tt.want)
		})
	}
	p.EndScroll(Vec2{250, 340})
	assertNear(t, "offset", p.ScrollOffset(), -50)

	p.Clear()
	if p.ScrollOffset() != 0 || len(p.Cubes()) != 0 {
		t.Error("Clear should rewind and empty the panel")
	}
}

func TestPanelNarrowContentDoesNotScroll(t *testing.T) {
	s, p := newTestPanel()
	f := NewCubeFactory(testCube)
	env := DragEnv{Space: s, Factory: f, DragLayer: s.Root()}
	p.Populate(2, testColors, f, DefaultGestureConfig(), env)

	p.BeginScroll(Vec2{300, 340})
	p.Scroll(Vec2{100, 340})
	p.EndScroll(Vec2{100, 340})
	if p.ScrollOffset() != 0 {
		t.Errorf("offset = %f, content narrower than the window cannot scroll", p.ScrollOffset())
	}
}

func TestPanelSwipeScrolls(t *testing.T) {
	s, p := newTestPanel()
	f := NewCubeFactory(testCube)
	env := DragEnv{Space: s, Factory: f, DragLayer: s.Root()}
	cubes, _ := p.Populate(10, testColors, f, DefaultGestureConfig(), env)

	// cube 5 is centered at (316, 340) on screen
	s.InjectDrag(316, 340, 216, 340, 6)
	for range 6 {
		s.Update()
	}
	assertNear(t, "offset", p.ScrollOffset(), -80)
	if cubes[5].Gesture().State() != StateIdle {
		t.Error("session should be closed")
	}
	if s.Root().NumChildren() != 1 {
		t.Error("a swipe must not create a proxy")
	}
}
