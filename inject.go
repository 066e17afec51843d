package cubetower

// injectedPointer is one queued synthetic pointer sample in screen space.
// It goes through the camera like real input.
type injectedPointer struct {
	at      Vec2
	pressed bool
}

// InjectPress queues a pointer press at the screen point (x, y). Queued
// samples are consumed one per Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedPointer{at: Vec2{x, y}, pressed: true})
}

// InjectMove queues a held-down pointer sample at (x, y).
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedPointer{at: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedPointer{at: Vec2{x, y}})
}

// InjectTap queues a press and a release at the same point.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at from, frames-2 evenly spaced moves and a
// release at to, so the gesture spans exactly frames updates. frames is
// raised to 2 when smaller.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	from, to := Vec2{fromX, fromY}, Vec2{toX, toY}
	s.InjectPress(from.X, from.Y)
	moves := frames - 2
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves+1)
		p := from.Add(Vec2{(to.X - from.X) * t, (to.Y - from.Y) * t})
		s.InjectMove(p.X, p.Y)
	}
	s.InjectRelease(to.X, to.Y)
}

// PendingInjections returns the number of queued synthetic samples.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput feeds the oldest queued sample through the pointer
// state machine. It reports whether a sample was consumed, in which case
// real devices are ignored for the frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	s.injectQueue = append(s.injectQueue[:0], s.injectQueue[1:]...)
	s.feedPointer(ev.at.X, ev.at.Y, ev.pressed)
	return true
}
