package cubetower

import (
	"errors"
	"os"
	"testing"
)

const frame = float32(1.0 / 60)

func newTestBoard(t *testing.T, cfg Config, opts ...Option) *Board {
	t.Helper()
	b, err := NewBoard(cfg, opts...)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

// dragAndSettle injects a drag and runs the board until every animation
// has finished.
func dragAndSettle(b *Board, from, to Vec2) {
	b.Scene().InjectDrag(from.X, from.Y, to.X, to.Y, 10)
	for range 10 {
		b.Update(frame)
	}
	for range 120 {
		b.Update(frame)
	}
}

// panelCube returns the screen center of panel cube i for the default
// layout: 48px cubes, 16px gaps, panel strip starting at y=864.
func panelCube(i int) Vec2 {
	return Vec2{X: 16 + 24 + float64(i)*64, Y: 864 + 48}
}

func TestNewBoardLayout(t *testing.T) {
	b := newTestBoard(t, DefaultConfig(), WithJitter(constJitter(0.5)))

	if len(b.Panel().Cubes()) != 20 {
		t.Errorf("panel has %d cubes", len(b.Panel().Cubes()))
	}
	if b.Tower().Count() != 0 {
		t.Error("tower should start empty")
	}
	kids := b.Scene().Root().Children()
	if kids[len(kids)-1] != b.DragLayer() {
		t.Error("drag layer should be the topmost child")
	}
	if b.DragLayer().Interactable {
		t.Error("drag layer must not capture hits")
	}
	if b.Scene().RaycastAt(panelCube(0)) != b.Panel().Cubes()[0].Node {
		t.Error("first panel cube not under its expected position")
	}
	if b.Resolver() == nil || b.Hole() == nil || b.Tweener() == nil {
		t.Error("collaborators not wired")
	}
}

func TestNewBoardInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CubeColors = []string{"not a color"}
	if _, err := NewBoard(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestBoardSourceToTower(t *testing.T) {
	events := &eventRecorder{}
	b := newTestBoard(t, DefaultConfig(), WithJitter(constJitter(0.5)), WithEventStore(events))
	src := b.Panel().Cubes()[0]

	dragAndSettle(b, panelCube(0), Vec2{40, 400})

	if b.Tower().Count() != 1 {
		t.Fatalf("tower count = %d, want 1", b.Tower().Count())
	}
	if len(b.Panel().Cubes()) != 20 || src.Node.IsDisposed() {
		t.Error("panel cubes are never consumed")
	}
	if !src.Node.Interactable || src.Node.Alpha != 1 {
		t.Error("panel source should be restored")
	}
	if b.DragLayer().NumChildren() != 0 {
		t.Error("drag layer should be empty after the drop")
	}
	stacked := b.Tower().At(0)
	if stacked.Gesture() == nil || stacked.Payload != src.Payload {
		t.Error("stacked cube should carry the payload and a gesture")
	}
	if got := events.types(); len(got) != 1 || got[0] != EventStacked {
		t.Errorf("events = %v", got)
	}
}

func TestBoardDropOutsideIsRejected(t *testing.T) {
	b := newTestBoard(t, DefaultConfig(), WithJitter(constJitter(0.5)))
	// straight up into the empty area right of the tower, below the hole
	dragAndSettle(b, panelCube(6), Vec2{424, 700})
	if b.Tower().Count() != 0 {
		t.Error("nothing should be stacked")
	}
	if b.DragLayer().NumChildren() != 0 {
		t.Error("rejected proxy should be gone")
	}
}

func TestBoardTowerCubeIntoHole(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		jitter float64
		want   int
	}{
		{"shift down", 0.3, 0.5, 2},
		{"collapse", 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Tower.HorizontalOffsetFactor = tt.factor
			events := &eventRecorder{}
			b := newTestBoard(t, cfg, WithJitter(constJitter(tt.jitter)), WithEventStore(events))

			for i := range 3 {
				dragAndSettle(b, panelCube(i), Vec2{40, 400})
			}
			if b.Tower().Count() != 3 {
				t.Fatalf("tower count = %d, want 3", b.Tower().Count())
			}

			victim := b.Tower().At(1)
			from := centerOf(victim.Node)
			dragAndSettle(b, from, b.Hole().Center())

			if b.Tower().Count() != tt.want {
				t.Errorf("tower count = %d, want %d", b.Tower().Count(), tt.want)
			}
			if !victim.Node.IsDisposed() {
				t.Error("extracted cube should be destroyed once it fell in")
			}
			if b.Tower().IndexOf(victim) != -1 {
				t.Error("extracted cube still in the tower")
			}
			var into, extracted bool
			for _, e := range events.events {
				into = into || e.Type == EventIntoHole
				extracted = extracted || e.Type == EventExtracted
			}
			if !into || !extracted {
				t.Errorf("events = %v", events.types())
			}
			if b.Tweener().Running() != 0 {
				t.Error("animations should have settled")
			}
		})
	}
}

func TestBoardTowerCubeReturns(t *testing.T) {
	b := newTestBoard(t, DefaultConfig(), WithJitter(constJitter(0.5)))
	dragAndSettle(b, panelCube(0), Vec2{40, 400})
	c := b.Tower().At(0)
	from := centerOf(c.Node)

	// sideways onto the tower zone; tower cubes never scroll
	dragAndSettle(b, from, from.Add(Vec2{150, -100}))
	if b.Tower().Count() != 1 || b.Tower().At(0) != c {
		t.Error("tower should be unchanged")
	}
	if c.Node.Alpha != 1 || !c.Node.Interactable {
		t.Error("returned cube should be visible and interactable")
	}
}

func TestBoardScriptedRun(t *testing.T) {
	data, err := os.ReadFile("demos/cubetower/scripts/stack.json")
	if err != nil {
		t.Fatal(err)
	}
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	b := newTestBoard(t, DefaultConfig(), WithJitter(constJitter(0.5)))
	b.SetScript(runner)

	for i := 0; i < 2000 && !runner.Done(); i++ {
		b.Update(frame)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if err := runner.Err(); err != nil {
		t.Fatalf("script expectations: %v", err)
	}
	if b.Tower().Count() != 2 {
		t.Errorf("tower count = %d, want 2", b.Tower().Count())
	}
	if b.Panel().ScrollOffset() >= 0 {
		t.Errorf("scroll offset = %f, the final swipe should scroll left", b.Panel().ScrollOffset())
	}
}
