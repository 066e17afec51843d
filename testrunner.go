package cubetower

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// scriptStep is one action of an input script. Coordinates are screen
// pixels.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	// Board steps.
	Cube    int    `json:"cube,omitempty"`    // panel cube for "stack"
	Index   int    `json:"index,omitempty"`   // tower slot for "extract"
	Tower   *int   `json:"tower,omitempty"`   // expected tower count
	Outcome string `json:"outcome,omitempty"` // expected last drop outcome
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

const defaultScriptDragFrames = 20

var (
	pointerActions = []string{"press", "move", "release", "tap", "drag", "wait", "screenshot"}
	boardActions   = []string{"stack", "extract", "settle", "expect"}
)

// TestRunner plays an input script, one step per frame once the previous
// step's injected input has drained. Pointer steps only need a Scene
// (SetTestRunner). Board steps need Board.SetScript:
//
//	stack    drag panel cube "cube" to (x, y)
//	extract  drag tower cube "index" onto the hole center
//	settle   hold until every animation has finished
//	expect   check "tower" (count) and/or "outcome" of the last drop
//
// Failed expectations do not stop the script; they are collected in Err.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	settling  bool
	done      bool
	board     *Board
	failures  []error
}

// LoadTestScript parses and validates a JSON input script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st scriptStep) validate() error {
	if !slices.Contains(pointerActions, st.Action) && !slices.Contains(boardActions, st.Action) {
		return fmt.Errorf("unknown action %q", st.Action)
	}
	switch st.Action {
	case "expect":
		if st.Tower == nil && st.Outcome == "" {
			return errors.New("expect needs tower or outcome")
		}
		if st.Outcome != "" && !slices.Contains(outcomeNames[:], st.Outcome) {
			return fmt.Errorf("unknown outcome %q", st.Outcome)
		}
	case "stack", "extract":
		if st.Cube < 0 || st.Index < 0 {
			return errors.New("negative cube index")
		}
	}
	return nil
}

// SetTestRunner attaches a runner to the scene. It steps from Update
// before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns every failed expectation, or nil.
func (r *TestRunner) Err() error {
	if r == nil {
		return nil
	}
	return errors.Join(r.failures...)
}

func (r *TestRunner) fail(index int, format string, args ...any) {
	err := fmt.Errorf("script step %d: %s", index, fmt.Sprintf(format, args...))
	logger.Warn("script expectation failed", "err", err)
	r.failures = append(r.failures, err)
}

func (r *TestRunner) step(s *Scene) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.settling {
		if r.board.tweener.Running() > 0 {
			return
		}
		r.settling = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		if r.board == nil {
			r.fail(i, "%s needs a board", st.Action)
			break
		}
		r.boardStep(i, st)
	}
	logger.Debug("script step", "index", i, "action", st.Action)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.settling && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) boardStep(i int, st scriptStep) {
	b := r.board
	frames := st.Frames
	if frames == 0 {
		frames = defaultScriptDragFrames
	}
	switch st.Action {
	case "stack":
		cubes := b.panel.Cubes()
		if st.Cube >= len(cubes) {
			r.fail(i, "panel has %d cubes, no cube %d", len(cubes), st.Cube)
			return
		}
		from := b.screenPoint(centerOf(cubes[st.Cube].Node))
		b.scene.InjectDrag(from.X, from.Y, st.X, st.Y, frames)
	case "extract":
		c := b.tower.At(st.Index)
		if c == nil {
			r.fail(i, "tower has %d cubes, no slot %d", b.tower.Count(), st.Index)
			return
		}
		from := b.screenPoint(centerOf(c.Node))
		to := b.screenPoint(b.hole.Center())
		b.scene.InjectDrag(from.X, from.Y, to.X, to.Y, frames)
	case "settle":
		r.settling = b.tweener.Running() > 0
	case "expect":
		if st.Tower != nil && b.tower.Count() != *st.Tower {
			r.fail(i, "tower count = %d, want %d", b.tower.Count(), *st.Tower)
		}
		if got := b.resolver.Last().Outcome.String(); st.Outcome != "" && got != st.Outcome {
			r.fail(i, "last outcome = %s, want %s", got, st.Outcome)
		}
	}
}
