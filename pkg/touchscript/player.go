package touchscript

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

// Tolerance is the absolute tolerance of numeric expectations.
const Tolerance = 1e-6

// ExpectationError reports a failed expect statement.
type ExpectationError struct {
	Line int
	What string
	Want string
	Got  string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("line %d: expect %s %s, got %s", e.Line, e.What, e.Want, e.Got)
}

// Player feeds script statements to a controller, tracking the active
// contacts the way a platform touch stream would.
type Player struct {
	ctrl     *overlay.Controller
	contacts []overlay.Contact

	// Step, when set, is called after every executed statement.
	Step func(st *Statement, snap overlay.Snapshot, mode overlay.Mode)
}

// NewPlayer returns a Player driving ctrl.
func NewPlayer(ctrl *overlay.Controller) *Player {
	return &Player{ctrl: ctrl}
}

// Contacts returns a copy of the active contacts in press order.
func (p *Player) Contacts() []overlay.Contact {
	out := make([]overlay.Contact, len(p.contacts))
	copy(out, p.contacts)
	return out
}

// Play executes script until the end or the first failure.
func (p *Player) Play(script *Script) error {
	for _, st := range script.Statements {
		if err := p.exec(st); err != nil {
			return err
		}
		if p.Step != nil {
			p.Step(st, p.ctrl.Snapshot(), p.ctrl.Mode())
		}
	}
	return nil
}

// Play is a convenience wrapper running script on ctrl with a new Player.
func Play(ctrl *overlay.Controller, script *Script) error {
	return NewPlayer(ctrl).Play(script)
}

func (p *Player) exec(st *Statement) error {
	switch {
	case st.Viewport != nil:
		p.ctrl.SetViewport(st.Viewport.Width, st.Viewport.Height)

	case st.Image != nil:
		if err := p.ctrl.ImageLoaded(st.Image.Width, st.Image.Height); err != nil {
			return fmt.Errorf("line %d: %w", st.Pos.Line, err)
		}

	case st.Down != nil:
		p.lift(st.Down.ID)
		p.contacts = append(p.contacts, overlay.Contact{ID: st.Down.ID, X: st.Down.X, Y: st.Down.Y})
		p.ctrl.ContactsChanged(p.Contacts())

	case st.Move != nil:
		idx := p.index(st.Move.ID)
		if idx < 0 {
			// Moves for contacts we never saw go down are dropped.
			return nil
		}
		p.contacts[idx].X = st.Move.X
		p.contacts[idx].Y = st.Move.Y
		p.ctrl.ContactsMoved(p.Contacts())

	case st.Up != nil:
		if !p.lift(st.Up.ID) {
			return nil
		}
		if len(p.contacts) == 0 {
			p.ctrl.ContactsEnded()
		} else {
			p.ctrl.ContactsChanged(p.Contacts())
		}

	case st.Cancel:
		p.contacts = p.contacts[:0]
		p.ctrl.ContactsEnded()

	case st.Reset:
		p.ctrl.Reset()

	case st.Mirror:
		p.ctrl.ToggleMirror()

	case st.Set != nil:
		switch st.Set.Field {
		case "opacity":
			p.ctrl.SetOpacity(st.Set.Value)
		case "scale":
			p.ctrl.SetScale(st.Set.Value)
		case "rotation":
			p.ctrl.SetRotation(st.Set.Value)
		}

	case st.Expect != nil:
		return p.check(st.Pos.Line, st.Expect)
	}
	return nil
}

func (p *Player) check(line int, e *Expectation) error {
	snap := p.ctrl.Snapshot()
	fail := func(what, want, got string) error {
		return &ExpectationError{Line: line, What: what, Want: want, Got: got}
	}
	number := func(what string, want, got float64) error {
		if math.Abs(want-got) > Tolerance {
			return fail(what, fmt.Sprintf("%g", want), fmt.Sprintf("%g", got))
		}
		return nil
	}

	switch {
	case e.Mode != nil:
		if got := p.ctrl.Mode().String(); got != *e.Mode {
			return fail("mode", *e.Mode, got)
		}
	case e.Scale != nil:
		return number("scale", *e.Scale, snap.Scale)
	case e.Opacity != nil:
		return number("opacity", *e.Opacity, snap.Opacity)
	case e.Rotation != nil:
		return number("rotation", *e.Rotation, snap.Rotation)
	case e.Mirrored != nil:
		got := "off"
		if snap.Mirrored {
			got = "on"
		}
		if got != *e.Mirrored {
			return fail("mirrored", *e.Mirrored, got)
		}
	case e.Position != nil:
		if math.Abs(e.Position.X-snap.Position.X) > Tolerance || math.Abs(e.Position.Y-snap.Position.Y) > Tolerance {
			return fail("position",
				fmt.Sprintf("%g %g", e.Position.X, e.Position.Y),
				fmt.Sprintf("%g %g", snap.Position.X, snap.Position.Y))
		}
	}
	return nil
}

func (p *Player) index(id int) int {
	for i, c := range p.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// lift removes contact id and reports whether it was active.
func (p *Player) lift(id int) bool {
	idx := p.index(id)
	if idx < 0 {
		return false
	}
	p.contacts = append(p.contacts[:idx], p.contacts[idx+1:]...)
	return true
}
