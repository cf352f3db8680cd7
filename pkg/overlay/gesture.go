package overlay

// session is the ephemeral record captured when a gesture starts. A nil
// session means no gesture is active, so "panning and pinching at once" has no
// representation.
type session interface {
	mode() Mode
}

// panSession remembers the offset between the first contact and the image
// position so every move computes an absolute, drift-free position.
type panSession struct {
	anchor Point
}

func (panSession) mode() Mode { return ModePanning }

// pinchSession scales relative to the distance and scale captured at
// two-finger contact. initialDistance == 0 marks a degenerate start.
type pinchSession struct {
	initialDistance float64
	initialScale    float64
}

func (pinchSession) mode() Mode { return ModePinching }

func (p *pinchSession) degenerate() bool {
	return p.initialDistance <= 0
}

// Interpreter turns multi-contact updates into pan and pinch changes of a
// State. It never touches rotation, mirroring or opacity.
type Interpreter struct {
	state   *State
	session session
	logf    func(format string, args ...any)
}

// NewInterpreter returns an Interpreter writing into state.
func NewInterpreter(state *State, logf func(format string, args ...any)) *Interpreter {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Interpreter{state: state, logf: logf}
}

// Mode reports the active gesture mode.
func (g *Interpreter) Mode() Mode {
	if g.session == nil {
		return ModeNone
	}
	return g.session.mode()
}

// ContactsChanged re-evaluates the mode from the number of contacts. The
// previous session is always discarded and the new one is captured from the
// live placement: one contact pans, two or more pinch using the first two, none
// ends the gesture.
func (g *Interpreter) ContactsChanged(points []Contact) {
	g.session = nil

	switch {
	case len(points) == 0:
		return
	case len(points) == 1:
		g.session = &panSession{anchor: points[0].Point().Sub(g.state.Position())}
	default:
		p := &pinchSession{
			initialDistance: points[0].Point().Distance(points[1].Point()),
			initialScale:    g.state.Scale(),
		}
		if p.degenerate() {
			p.initialDistance = 0
			g.logf("[GESTURE] %v, deferring scale updates", ErrDegenerateGesture)
		}
		g.session = p
	}
	g.logf("[GESTURE] %d contact(s) -> %s", len(points), g.Mode())
}

// ContactsMoved updates the placement for the active mode. A contact count that
// no longer matches the mode is treated as a mode change (dropped or late
// events) and does not move the image on that call.
func (g *Interpreter) ContactsMoved(points []Contact) {
	if g.session == nil {
		return
	}

	switch s := g.session.(type) {
	case *panSession:
		if len(points) != 1 {
			g.ContactsChanged(points)
			return
		}
		g.state.SetPosition(points[0].Point().Sub(s.anchor))

	case *pinchSession:
		if len(points) < 2 {
			g.ContactsChanged(points)
			return
		}
		d := points[0].Point().Distance(points[1].Point())
		if s.degenerate() {
			if d > 0 {
				s.initialDistance = d
				s.initialScale = g.state.Scale()
				g.logf("[GESTURE] pinch armed at distance %.2f", d)
			}
			return
		}
		g.state.SetScale(s.initialScale * d / s.initialDistance)
	}
}

// ContactsEnded discards the active session. The placement is not changed.
func (g *Interpreter) ContactsEnded() {
	if g.session != nil {
		g.logf("[GESTURE] %s ended", g.Mode())
	}
	g.session = nil
}
