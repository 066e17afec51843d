package cubetower

import "time"

// debugStats holds per-frame timing of Scene.Draw. Only collected when the
// scene is in debug mode.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLogEvery throttles frame stats to one line per second at 60 FPS.
const debugLogEvery = 60

// SetDebug toggles frame timing logs for the scene.
func (s *Scene) SetDebug(enabled bool) {
	s.debug = enabled
	s.debugFrame = 0
}

// debugLog prints timing and command stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.debugFrame++
	if s.debugFrame%debugLogEvery != 1 {
		return
	}
	logger.Debug("frame",
		"traverse", stats.traverseTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.submitTime,
		"commands", stats.commandCount,
	)
}

// debugCheckTreeDepth warns if a node sits deeper than the board ever nests.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree too deep", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}
