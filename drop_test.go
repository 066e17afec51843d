package cubetower

import "testing"

// dropFixture is a 400x400 scene: a tower zone on the left half, a hole
// overlapping the tower's top right corner, and an unrelated node.
//
//	tower  x 0..200   y 0..400
//	hole   x 100..200 y 0..50
//	other  x 225..275 y 275..325
type dropFixture struct {
	scene    *Scene
	tower    *TowerStack
	hole     *HoleZone
	other    *Node
	layer    *Node
	factory  *countingFactory
	resolver *DropResolver
	events   *eventRecorder
	accepted []*Cube
}

func newDropFixture(towerHeight float64, j Jitter, cfg TowerConfig) *dropFixture {
	fx := &dropFixture{
		scene:   NewScene(400, 400),
		factory: &countingFactory{CubeFactory: CubeFactory{Size: testCube}},
		events:  &eventRecorder{},
	}
	root := fx.scene.Root()

	zone := NewContainer("tower", 200, towerHeight)
	root.AddChild(zone)
	fx.tower = NewTowerStack(zone, cfg, j, nil, fx.factory)
	fx.tower.SetEventStore(fx.events)

	holeZone := NewContainer("hole", 100, 50)
	holeZone.SetPosition(100, 0)
	root.AddChild(holeZone)
	fx.hole = NewHoleZone(holeZone, fx.tower)

	fx.other = NewRect("other", 50, 50, ColorWhite)
	fx.other.SetPosition(250, 300)
	root.AddChild(fx.other)

	fx.layer = NewContainer("drag-layer", 400, 400)
	fx.layer.Interactable = false
	root.AddChild(fx.layer)

	fx.resolver = NewDropResolver(fx.hole, fx.scene, fx.scene, nil, fx.factory)
	fx.resolver.SetEventStore(fx.events)
	fx.resolver.OnAccept = func(c *Cube) { fx.accepted = append(fx.accepted, c) }
	return fx
}

func (fx *dropFixture) proxyAt(p Vec2) *DragProxy {
	pr := newDragProxy(Payload{Color: ColorWhite}, fx.layer, Vec2{}, fx.factory, fx.scene)
	pr.MoveTo(p)
	return pr
}

func TestDropPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		point Vec2
		want  Outcome
	}{
		{"hole wins over tower", Vec2{150, 25}, OutcomeIntoHole},
		{"hole bounding box corner falls through to tower", Vec2{102, 2}, OutcomeStacked},
		{"tower", Vec2{50, 300}, OutcomeStacked},
		{"foreign node", Vec2{250, 300}, OutcomeRejected},
		{"nothing", Vec2{350, 100}, OutcomeRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newDropFixture(400, constJitter(0.5), DefaultTowerConfig())
			pr := fx.proxyAt(tt.point)
			node := pr.Node()

			res := fx.resolver.Resolve(tt.point, pr, Session{Origin: SourceOrigin})
			if res.Outcome != tt.want {
				t.Fatalf("Outcome = %v, want %v", res.Outcome, tt.want)
			}
			if pr.Alive() {
				t.Error("resolver must consume the proxy")
			}
			if tt.want == OutcomeStacked {
				if node.IsDisposed() || node.Parent != fx.tower.Zone() {
					t.Error("accepted proxy node should live on in the tower")
				}
				return
			}
			if !node.IsDisposed() {
				t.Error("refused proxy node should be destroyed")
			}
		})
	}
}

func TestDropStacked(t *testing.T) {
	fx := newDropFixture(400, constJitter(0.5), DefaultTowerConfig())
	res := fx.resolver.Resolve(Vec2{80, 300}, fx.proxyAt(Vec2{80, 300}), Session{Origin: SourceOrigin})

	if res.Outcome != OutcomeStacked || res.Stacked == nil {
		t.Fatalf("result = %+v", res)
	}
	if fx.tower.Count() != 1 || fx.tower.At(0) != res.Stacked {
		t.Fatal("stacked cube not in tower")
	}
	if !res.Stacked.Node.Interactable {
		t.Error("stacked cube should be hit testable")
	}
	if len(fx.accepted) != 1 || fx.accepted[0] != res.Stacked {
		t.Error("OnAccept not called with the new cube")
	}
	rest, _ := fx.tower.RestingPosition(0)
	assertNear(t, "rest.X", rest.X, 80)
	if got := fx.events.types(); len(got) != 1 || got[0] != EventStacked {
		t.Errorf("events = %v", got)
	}
}

func TestDropRejectedWhenFull(t *testing.T) {
	// 20 + 2*40 > 100 - 20: one cube fills the tower.
	fx := newDropFixture(100, constJitter(0.5), DefaultTowerConfig())
	fx.resolver.Resolve(Vec2{50, 80}, fx.proxyAt(Vec2{50, 80}), Session{Origin: SourceOrigin})

	pr := fx.proxyAt(Vec2{50, 80})
	node := pr.Node()
	res := fx.resolver.Resolve(Vec2{50, 80}, pr, Session{Origin: SourceOrigin})
	if res.Outcome != OutcomeRejected {
		t.Fatalf("Outcome = %v, want rejected", res.Outcome)
	}
	if fx.tower.Count() != 1 {
		t.Errorf("Count = %d, want 1", fx.tower.Count())
	}
	if !node.IsDisposed() {
		t.Error("rejected proxy should be destroyed")
	}
	last := fx.events.events[len(fx.events.events)-1]
	if last.Type != EventRejected || last.Count != 1 {
		t.Errorf("last event = %+v", last)
	}
}

func TestDropTowerOriginReturns(t *testing.T) {
	tests := []struct {
		name  string
		point Vec2
	}{
		{"onto tower", Vec2{50, 300}},
		{"onto foreign node", Vec2{250, 300}},
		{"into nothing", Vec2{350, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newDropFixture(400, constJitter(0.5), DefaultTowerConfig())
			src := stack(t, fx.tower, 1, 60)[0]
			src.Node.Alpha = 0

			res := fx.resolver.Resolve(tt.point, fx.proxyAt(tt.point), Session{Origin: TowerOrigin(0), Source: src})
			if res.Outcome != OutcomeReturned {
				t.Fatalf("Outcome = %v, want returned", res.Outcome)
			}
			if src.Node.Alpha != 1 {
				t.Error("source should be shown again")
			}
			if fx.tower.Count() != 1 {
				t.Error("tower must be unchanged")
			}
			if len(fx.accepted) != 0 {
				t.Error("nothing should be accepted")
			}
		})
	}
}

func TestDropTowerOriginIntoHole(t *testing.T) {
	fx := newDropFixture(400, constJitter(0.5), DefaultTowerConfig())
	cubes := stack(t, fx.tower, 3, 60)
	cubes[1].Node.Alpha = 0

	res := fx.resolver.Resolve(Vec2{150, 25}, fx.proxyAt(Vec2{150, 25}), Session{Origin: TowerOrigin(1), Source: cubes[1]})
	if res.Outcome != OutcomeIntoHole || !res.Extracted {
		t.Fatalf("result = %+v", res)
	}
	if res.Removal.Cube != cubes[1] {
		t.Error("wrong cube extracted")
	}
	if fx.tower.Count() != 2 || fx.tower.At(1) != cubes[2] {
		t.Error("cube above should shift down")
	}
	if !cubes[1].Node.IsDisposed() {
		t.Error("extracted cube should be gone")
	}
}

func TestDropTowerOriginIntoHoleCollapse(t *testing.T) {
	fx := newDropFixture(400, constJitter(1), TowerConfig{BottomOffset: 20, HorizontalOffsetFactor: 1})
	cubes := stack(t, fx.tower, 3, 20)

	res := fx.resolver.Resolve(Vec2{150, 25}, fx.proxyAt(Vec2{150, 25}), Session{Origin: TowerOrigin(1), Source: cubes[1]})
	if !res.Extracted || len(res.Removal.Collapsed) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if fx.tower.Count() != 1 {
		t.Errorf("Count = %d, want 1", fx.tower.Count())
	}
	want := []EventType{EventStacked, EventStacked, EventStacked, EventExtracted, EventFellAway, EventIntoHole}
	got := fx.events.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDropIntoUnboundHole(t *testing.T) {
	fx := newDropFixture(400, constJitter(0.5), DefaultTowerConfig())
	src := stack(t, fx.tower, 1, 60)[0]
	src.Node.Alpha = 0
	fx.hole.Bind(nil)

	res := fx.resolver.Resolve(Vec2{150, 25}, fx.proxyAt(Vec2{150, 25}), Session{Origin: TowerOrigin(0), Source: src})
	if res.Outcome != OutcomeIntoHole || res.Extracted {
		t.Fatalf("result = %+v", res)
	}
	if fx.tower.Count() != 1 || src.Node.Alpha != 1 {
		t.Error("failed extraction should leave the source in place and visible")
	}
}

func TestDropAnimatedOutcomes(t *testing.T) {
	fx := newDropFixture(400, constJitter(0.5), DefaultTowerConfig())
	tw := NewTweener()
	fx.resolver.anim = tw

	pr := fx.proxyAt(Vec2{150, 25})
	node := pr.Node()
	fx.resolver.Resolve(Vec2{150, 25}, pr, Session{Origin: SourceOrigin})
	if node.IsDisposed() || !tw.Busy(node) {
		t.Fatal("proxy should animate into the hole before it is destroyed")
	}
	for range 60 {
		tw.Update(1.0 / 60)
	}
	if !node.IsDisposed() {
		t.Error("proxy should be destroyed once the animation completes")
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeIntoHole.String() != "into-hole" || Outcome(99).String() != "unknown" {
		t.Error("unexpected outcome names")
	}
}
