// Package cubetower is a drag-and-drop cube stacking toy for [Ebitengine].
//
// Cubes are picked from a horizontally scrolling source panel and dropped
// either onto a tower, where they stack with a little horizontal jitter,
// or into an oval hole. Dropping a tower cube into the hole extracts it;
// cubes above it shift down, and the first one that no longer overlaps its
// new support falls away together with everything above it.
//
// # Quick start
//
//	cfg, err := cubetower.LoadConfig("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	board, err := cubetower.NewBoard(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	cubetower.Run(board, cubetower.RunConfig{Title: "Cube Tower"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Board.Update] and [Board.Draw] directly.
//
// # Scene graph
//
// A minimal retained scene graph backs the board. Every [Node] is a
// rectangle in its own local space; children inherit their parent's
// transform and alpha. Pointer input is hit-tested against interactable
// nodes and dispatched to per-node callbacks (OnPointerDown, OnDragStart,
// OnDrag, OnDragEnd, OnPointerUp).
//
// # Gestures and drops
//
// Every cube carries a [GestureController]. A vertical pull picks the cube
// up as a [DragProxy]; a sideways swipe scrolls the [SourcePanel] instead.
// Tower cubes always drag. On release the [DropResolver] checks the
// [HoleZone] first, then the [TowerStack] under the pointer, and rejects
// everything else.
//
// # Animation
//
// Logical outcomes are applied immediately. Visual settling runs on a
// [Tweener] (backed by [gween]) that is advanced once per frame.
//
// # Testing
//
// Boards run headless: input can be injected with [Scene.InjectDrag] and
// friends, or scripted with [LoadTestScript] and [Board.SetScript], whose
// board steps stack panel cubes, extract tower cubes and check the tower
// between animations. Outcome events can be routed
// into a [Donburi] world with the adapter in cubetower/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package cubetower
